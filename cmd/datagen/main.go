package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/campusmarket/recommender/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		users        = flag.Int("users", cfg.NumUsers, "number of users to generate")
		listings     = flag.Int("listings", cfg.NumListings, "number of marketplace listings to generate")
		purchases    = flag.Int("purchases", cfg.NumPurchases, "number of purchases to generate")
		maxFriends   = flag.Int("max-friends", cfg.MaxFriends, "maximum friends per user")
		jitterChance = flag.Float64("id-jitter-chance", cfg.RawIDJitterChance, "probability of recording a purchase item id with altered casing or whitespace")
		seed         = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir    = flag.String("output-dir", "seed-data", "directory to write users.json, listings.json, and purchases.json")
		writeStdout  = flag.Bool("stdout", false, "write combined dataset to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumUsers:          *users,
		NumListings:       *listings,
		NumPurchases:      *purchases,
		MaxFriends:        *maxFriends,
		RawIDJitterChance: clampProbability(*jitterChance),
		Seed:              *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d users, %d listings, and %d purchases into %s\n",
		len(dataset.Users), len(dataset.Listings), len(dataset.Purchases), *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campusmarket/recommender/internal/config"
	"github.com/campusmarket/recommender/internal/domain"
	"github.com/campusmarket/recommender/internal/logging"
	"github.com/campusmarket/recommender/internal/store"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir    = flag.String("dataset-dir", "./seed-data", "Directory containing users.json, listings.json, and purchases.json")
		usersPath     = flag.String("users", "", "Path to users.json (overrides dataset-dir)")
		listingsPath  = flag.String("listings", "", "Path to listings.json (overrides dataset-dir)")
		purchasesPath = flag.String("purchases", "", "Path to purchases.json (overrides dataset-dir)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "seed")

	userFile, listingFile, purchaseFile, err := resolveDatasetPaths(*datasetDir, *usersPath, *listingsPath, *purchasesPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	var users []domain.User
	if err := loadJSON(userFile, &users); err != nil {
		logger.Error("failed to load users", "error", err, "path", userFile)
		os.Exit(1)
	}
	var listings []domain.MarketplaceItem
	if err := loadJSON(listingFile, &listings); err != nil {
		logger.Error("failed to load listings", "error", err, "path", listingFile)
		os.Exit(1)
	}
	var purchases []domain.Purchase
	if err := loadJSON(purchaseFile, &purchases); err != nil {
		logger.Error("failed to load purchases", "error", err, "path", purchaseFile)
		os.Exit(1)
	}
	if len(users) == 0 {
		logger.Error("users dataset empty", "path", userFile)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	storeClient, err := store.NewMongoClient(connectCtx, store.Options{
		URI:            cfg.Store.URI,
		Database:       cfg.Store.Database,
		ConnectTimeout: cfg.Store.ConnectTimeout,
		MaxPoolSize:    cfg.Store.MaxPoolSize,
	})
	connectCancel()
	if err != nil {
		logger.Error("failed to create store client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := storeClient.Close(context.Background()); err != nil {
			logger.Warn("closing store client failed", "error", err)
		}
	}()

	start := time.Now()
	logger.Info("seeding users", "count", len(users))
	if err := storeClient.SeedUsers(ctx, users); err != nil {
		logger.Error("user seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding listings", "count", len(listings))
	if err := storeClient.SeedListings(ctx, listings); err != nil {
		logger.Error("listing seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding purchases", "count", len(purchases))
	if err := storeClient.SeedPurchases(ctx, purchases); err != nil {
		logger.Error("purchase seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding complete",
		"duration", time.Since(start).String(),
		"users", len(users),
		"listings", len(listings),
		"purchases", len(purchases),
	)
}

func resolveDatasetPaths(baseDir, usersPath, listingsPath, purchasesPath string) (string, string, string, error) {
	resolve := func(explicitPath, fallbackFile string) (string, error) {
		if explicitPath != "" {
			if _, err := os.Stat(explicitPath); err != nil {
				return "", fmt.Errorf("stat %s: %w", explicitPath, err)
			}
			return explicitPath, nil
		}
		path := filepath.Join(baseDir, fallbackFile)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", errMissingDataset, path)
		}
		return path, nil
	}

	userFile, err := resolve(usersPath, "users.json")
	if err != nil {
		return "", "", "", err
	}
	listingFile, err := resolve(listingsPath, "listings.json")
	if err != nil {
		return "", "", "", err
	}
	purchaseFile, err := resolve(purchasesPath, "purchases.json")
	if err != nil {
		return "", "", "", err
	}
	return userFile, listingFile, purchaseFile, nil
}

func loadJSON(path string, target any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/campusmarket/recommender/internal/config"
	"github.com/campusmarket/recommender/internal/logging"
	"github.com/campusmarket/recommender/internal/service"
	"github.com/campusmarket/recommender/internal/store"
)

func main() {
	var (
		userID  = flag.String("user", "", "Recompute recommendations for a single user (default: all users)")
		workers = flag.Int("workers", 0, "Number of concurrent workers for batch sink writes (default: ENGINE_WORKERS)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "recommend")

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

	svc := service.NewRecommendationService(storeClient, storeClient, logger, cfg.Engine.TopN)

	start := time.Now()
	if *userID != "" {
		rec, err := svc.RecomputeUser(ctx, *userID)
		if err != nil {
			logger.Error("recomputation failed", "error", err, "userId", *userID)
			os.Exit(1)
		}
		logger.Info("recomputation complete",
			"userId", *userID,
			"userRecommendations", len(rec.ForUser),
			"friendsRecommendations", len(rec.FromFriends),
			"duration", time.Since(start).String(),
		)
		return
	}

	poolSize := *workers
	if poolSize <= 0 {
		poolSize = cfg.Engine.Workers
	}

	result, err := svc.RecomputeAll(ctx, poolSize)
	if err != nil {
		logger.Error("batch recomputation failed", "error", err)
		os.Exit(1)
	}
	logger.Info("batch recomputation complete",
		"runId", result.RunID,
		"processed", result.Processed,
		"failed", len(result.Failed),
		"duration", time.Since(start).String(),
	)
	if err := result.Err(); err != nil {
		logger.Error("some users failed", "error", err)
		os.Exit(1)
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/campusmarket/recommender/internal/domain"
	"github.com/campusmarket/recommender/internal/engine"
)

// SnapshotSource is the source-adapter contract required by the service: it
// reads a full snapshot of the three input relations.
type SnapshotSource interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchPurchases(ctx context.Context) ([]domain.Purchase, error)
	FetchListings(ctx context.Context) ([]domain.MarketplaceItem, error)
}

// RecommendationSink persists one user's recommendation lists, replacing any
// prior value.
type RecommendationSink interface {
	WriteRecommendations(ctx context.Context, rec domain.Recommendations) error
}

// RecommendationService orchestrates the recommendation pipeline: snapshot
// ingestion, index construction, per-user computation, and sink writes.
type RecommendationService struct {
	source SnapshotSource
	sink   RecommendationSink
	logger *slog.Logger
	topN   int
}

// NewRecommendationService constructs a RecommendationService. topN bounds
// the merged list per user; non-positive values fall back to the engine
// default.
func NewRecommendationService(source SnapshotSource, sink RecommendationSink, logger *slog.Logger, topN int) *RecommendationService {
	if topN <= 0 {
		topN = engine.DefaultTopN
	}
	return &RecommendationService{
		source: source,
		sink:   sink,
		logger: logger,
		topN:   topN,
	}
}

// RecomputeUser recomputes and persists recommendations for a single user. A
// user id absent from the user relation is not an error: empty lists are
// written, overwriting anything stale in the sink.
func (s *RecommendationService) RecomputeUser(ctx context.Context, userID string) (domain.Recommendations, error) {
	if userID == "" {
		return domain.Recommendations{}, fmt.Errorf("user ID is required")
	}

	ix, err := s.buildIndex(ctx)
	if err != nil {
		return domain.Recommendations{}, err
	}
	if !ix.HasUser(userID) {
		s.logger.Warn("user not found in user relation, writing empty recommendations", "userId", userID)
	}

	rec := s.computeFor(ix, userID)
	if err := s.sink.WriteRecommendations(ctx, rec); err != nil {
		return domain.Recommendations{}, fmt.Errorf("write recommendations for user %s: %w", userID, err)
	}
	return rec, nil
}

// RecomputeAll recomputes recommendations for every user in the user
// relation. Per-user computation shares the read-only index; sink writes fan
// out over a bounded worker pool. A failure for one user never aborts the
// others; the returned result names every failed user.
func (s *RecommendationService) RecomputeAll(ctx context.Context, workers int) (BatchResult, error) {
	ix, err := s.buildIndex(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	runID := uuid.NewString()
	ids := ix.UserIDs()
	s.logger.Info("starting batch recomputation", "runId", runID, "users", len(ids), "workers", workers)

	result := runBatch(ctx, ids, workers, func(userID string) error {
		rec := s.computeFor(ix, userID)
		return s.sink.WriteRecommendations(ctx, rec)
	})
	result.RunID = runID

	for userID, userErr := range result.Failed {
		s.logger.Error("recomputation failed for user", "runId", runID, "userId", userID, "error", userErr)
	}
	s.logger.Info("batch recomputation finished", "runId", runID, "processed", result.Processed, "failed", len(result.Failed))

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (s *RecommendationService) buildIndex(ctx context.Context) (*engine.Index, error) {
	users, err := s.source.FetchUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	purchases, err := s.source.FetchPurchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch purchases: %w", err)
	}
	listings, err := s.source.FetchListings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}

	ix, conflicts := engine.BuildIndex(domain.Snapshot{
		Users:     users,
		Purchases: purchases,
		Listings:  listings,
	})
	for _, c := range conflicts {
		s.logger.Warn("duplicate listing key, keeping first listing",
			"key", string(c.Key), "keptId", c.KeptID, "droppedId", c.DroppedID)
	}
	return ix, nil
}

func (s *RecommendationService) computeFor(ix *engine.Index, userID string) domain.Recommendations {
	category := ix.RecommendByCategory(userID)
	social := ix.RecommendBySocial(userID)
	return domain.Recommendations{
		UserID:      userID,
		ForUser:     engine.Merge(category, social, s.topN),
		FromFriends: social,
	}
}

package store

import (
	"context"
	"errors"
	"time"

	"github.com/campusmarket/recommender/internal/domain"
)

// Collection names in the document store. The two sink collections hold one
// document per user, replaced wholesale on each recomputation.
const (
	CollectionUsers       = "users"
	CollectionPurchases   = "purchases"
	CollectionMarketplace = "marketplace"

	CollectionFriendsRecommendations = "friendsRecommendations"
	CollectionUserRecommendations    = "userRecommendations"
)

// Client defines the document-store contract consumed by the recommendation
// service: the source side reads relation snapshots, the sink side persists
// computed recommendation lists.
type Client interface {
	FetchUsers(ctx context.Context) ([]domain.User, error)
	FetchPurchases(ctx context.Context) ([]domain.Purchase, error)
	FetchListings(ctx context.Context) ([]domain.MarketplaceItem, error)

	// WriteRecommendations replaces both stored lists for rec.UserID.
	WriteRecommendations(ctx context.Context, rec domain.Recommendations) error
	FetchRecommendations(ctx context.Context, userID string) (domain.Recommendations, error)

	SeedUsers(ctx context.Context, users []domain.User) error
	SeedListings(ctx context.Context, listings []domain.MarketplaceItem) error
	SeedPurchases(ctx context.Context, purchases []domain.Purchase) error

	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options configures a store client implementation.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
}

// ErrMissingURI indicates the store URI is not provided.
var ErrMissingURI = errors.New("store URI is required")

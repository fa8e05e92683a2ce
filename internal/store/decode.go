package store

import (
	"time"

	"github.com/campusmarket/recommender/internal/domain"
)

// Raw document shapes as stored. Numeric and timestamp fields are pointers so
// absence can be told apart from a stored zero; decode applies the documented
// defaults (purchase quantity 1, listing quantity 0, price 0.0, likeCount 0)
// and converts timestamps to RFC 3339 text.

type userDoc struct {
	ID        string   `bson:"_id"`
	FriendIDs []string `bson:"friendIds"`
}

type purchaseDoc struct {
	UserID    string     `bson:"userId"`
	ItemID    string     `bson:"itemId"`
	ItemName  string     `bson:"itemName"`
	ImageURL  string     `bson:"imageUrl"`
	LikeCount *float64   `bson:"likeCount"`
	LikedBy   []string   `bson:"likedBy"`
	Message   string     `bson:"message"`
	Price     *float64   `bson:"price"`
	Quantity  *int       `bson:"quantity"`
	Timestamp *time.Time `bson:"timestamp"`
	UserName  string     `bson:"userName"`
}

type listingDoc struct {
	ID           string     `bson:"_id"`
	Category     string     `bson:"category"`
	Description  string     `bson:"description"`
	Price        *float64   `bson:"price"`
	Quantity     *int       `bson:"quantity"`
	SellerID     string     `bson:"sellerId"`
	SellerName   string     `bson:"sellerName"`
	SellerAvatar string     `bson:"sellerAvatar"`
	ImageURL     string     `bson:"imageUrl"`
	CreatedAt    *time.Time `bson:"createdAt"`
}

type recommendationsDoc struct {
	UserID           string                       `bson:"_id"`
	RecommendedItems []domain.RecommendationEntry `bson:"recommendedItems"`
	UpdatedAt        time.Time                    `bson:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{ID: d.ID, FriendIDs: d.FriendIDs}
}

func (d purchaseDoc) toDomain() domain.Purchase {
	return domain.Purchase{
		UserID:    d.UserID,
		ItemID:    d.ItemID,
		ItemName:  d.ItemName,
		ImageURL:  d.ImageURL,
		LikeCount: floatOrDefault(d.LikeCount, 0),
		LikedBy:   d.LikedBy,
		Message:   d.Message,
		Price:     floatOrDefault(d.Price, 0),
		Quantity:  intOrDefault(d.Quantity, 1),
		Timestamp: formatTimePtr(d.Timestamp),
		UserName:  d.UserName,
	}
}

func (d listingDoc) toDomain() domain.MarketplaceItem {
	return domain.MarketplaceItem{
		ID:           d.ID,
		Category:     d.Category,
		Description:  d.Description,
		Price:        floatOrDefault(d.Price, 0),
		Quantity:     intOrDefault(d.Quantity, 0),
		SellerID:     d.SellerID,
		SellerName:   d.SellerName,
		SellerAvatar: d.SellerAvatar,
		ImageURL:     d.ImageURL,
		CreatedAt:    formatTimePtr(d.CreatedAt),
	}
}

func floatOrDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func intOrDefault(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

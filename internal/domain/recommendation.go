package domain

// Recommendation sources.
const (
	SourceUser   = "user"
	SourceFriend = "friend"
)

// RecommendationEntry is one recommended listing produced by the engine. It
// lives for a single computation pass: written to the sink, never read back
// as engine input.
type RecommendationEntry struct {
	ID            string  `bson:"itemId" json:"itemId"`
	Category      string  `bson:"category" json:"category"`
	Description   string  `bson:"description" json:"description"`
	Price         float64 `bson:"price" json:"price"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	SellerName    string  `bson:"sellerName" json:"sellerName"`
	ImageURL      string  `bson:"imageUrl" json:"imageUrl"`
	PurchaseCount int     `bson:"purchaseCount" json:"purchaseCount"`
	Source        string  `bson:"source" json:"source"`
}

// Recommendations groups the two per-user output lists. ForUser is the merged
// personalized ranking written to the userRecommendations collection;
// FromFriends is the friend-purchase ranking written to the
// friendsRecommendations collection.
type Recommendations struct {
	UserID      string
	ForUser     []RecommendationEntry
	FromFriends []RecommendationEntry
}

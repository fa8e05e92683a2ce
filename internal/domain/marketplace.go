package domain

// Purchase models one purchase row as recorded by the purchaser. ItemID is the
// raw identifier and may differ in case or whitespace from the canonical
// listing id; matching always goes through engine normalization. The
// descriptive fields are carried through unchanged and never participate in
// matching logic.
type Purchase struct {
	UserID    string   `bson:"userId" json:"userId"`
	ItemID    string   `bson:"itemId" json:"itemId"`
	ItemName  string   `bson:"itemName" json:"itemName"`
	ImageURL  string   `bson:"imageUrl" json:"imageUrl"`
	LikeCount float64  `bson:"likeCount" json:"likeCount"`
	LikedBy   []string `bson:"likedBy" json:"likedBy"`
	Message   string   `bson:"message" json:"message"`
	Price     float64  `bson:"price" json:"price"`
	Quantity  int      `bson:"quantity" json:"quantity"`
	Timestamp string   `bson:"timestamp" json:"timestamp"`
	UserName  string   `bson:"userName" json:"userName"`
}

// MarketplaceItem models one marketplace listing. ID is the canonical key
// assigned by the store and is unique within the listing relation.
type MarketplaceItem struct {
	ID           string  `bson:"_id" json:"itemId"`
	Category     string  `bson:"category" json:"category"`
	Description  string  `bson:"description" json:"description"`
	Price        float64 `bson:"price" json:"price"`
	Quantity     int     `bson:"quantity" json:"quantity"`
	SellerID     string  `bson:"sellerId" json:"sellerId"`
	SellerName   string  `bson:"sellerName" json:"sellerName"`
	SellerAvatar string  `bson:"sellerAvatar" json:"sellerAvatar"`
	ImageURL     string  `bson:"imageUrl" json:"imageUrl"`
	CreatedAt    string  `bson:"createdAt" json:"createdAt"`
}

// Snapshot is an immutable view of the three input relations taken at the
// start of one computation pass.
type Snapshot struct {
	Users     []User
	Purchases []Purchase
	Listings  []MarketplaceItem
}

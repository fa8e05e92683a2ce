package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/campusmarket/recommender/internal/domain"
)

// Dataset contains the generated users, listings, and purchases.
type Dataset struct {
	Users     []domain.User            `json:"users"`
	Listings  []domain.MarketplaceItem `json:"listings"`
	Purchases []domain.Purchase        `json:"purchases"`
}

// Generator produces synthetic marketplace data aligned with the
// recommendation engine schema.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

var categories = []string{
	"books", "electronics", "clothing", "furniture", "sports",
	"games", "tools", "kitchen", "music", "outdoors",
}

var firstNames = []string{
	"Alex", "Jordan", "Sam", "Taylor", "Casey", "Morgan", "Riley", "Quinn",
	"Avery", "Dana", "Jamie", "Reese", "Skyler", "Drew", "Harper", "Rowan",
}

var itemNouns = []string{
	"lamp", "backpack", "headphones", "jacket", "desk", "racket", "kettle",
	"guitar", "tent", "monitor", "sneakers", "bookshelf", "blender", "drill",
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = def.NumUsers
	}
	if cfg.NumListings <= 0 {
		cfg.NumListings = def.NumListings
	}
	if cfg.NumPurchases <= 0 {
		cfg.NumPurchases = def.NumPurchases
	}
	if cfg.MaxFriends <= 0 {
		cfg.MaxFriends = def.MaxFriends
	}
	if cfg.RawIDJitterChance <= 0 {
		cfg.RawIDJitterChance = def.RawIDJitterChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises users, listings, and purchases. It respects context
// cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	now := time.Now().UTC()

	users := make([]domain.User, g.cfg.NumUsers)
	for i := 0; i < g.cfg.NumUsers; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		users[i] = domain.User{ID: fmt.Sprintf("USR-%04d", i+1)}
	}
	for i := range users {
		users[i].FriendIDs = g.randomFriends(users, i)
	}

	listings := make([]domain.MarketplaceItem, g.cfg.NumListings)
	for i := 0; i < g.cfg.NumListings; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		seller := users[g.rand.Intn(len(users))]
		noun := itemNouns[g.rand.Intn(len(itemNouns))]
		createdAt := now.Add(-time.Duration(g.rand.Intn(180*24)) * time.Hour)

		listings[i] = domain.MarketplaceItem{
			ID:          fmt.Sprintf("item-%05d", i+1),
			Category:    categories[g.rand.Intn(len(categories))],
			Description: fmt.Sprintf("Second-hand %s in good condition", noun),
			Price:       float64(g.rand.Intn(20000)) / 100,
			Quantity:    g.rand.Intn(5),
			SellerID:    seller.ID,
			SellerName:  g.randomName(),
			ImageURL:    fmt.Sprintf("https://img.campusmarket.test/%s.jpg", noun),
			CreatedAt:   createdAt.Format(time.RFC3339),
		}
	}

	purchases := make([]domain.Purchase, g.cfg.NumPurchases)
	for i := 0; i < g.cfg.NumPurchases; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		buyer := users[g.rand.Intn(len(users))]
		item := listings[g.rand.Intn(len(listings))]
		ts := now.Add(-time.Duration(g.rand.Intn(90*24)) * time.Hour)

		purchases[i] = domain.Purchase{
			UserID:    buyer.ID,
			ItemID:    g.jitterID(item.ID),
			ItemName:  item.Description,
			ImageURL:  item.ImageURL,
			LikeCount: float64(g.rand.Intn(50)),
			Message:   "Thanks, great seller!",
			Price:     item.Price,
			Quantity:  1 + g.rand.Intn(3),
			Timestamp: ts.Format(time.RFC3339),
			UserName:  g.randomName(),
		}
	}

	return Dataset{Users: users, Listings: listings, Purchases: purchases}, nil
}

// jitterID perturbs the canonical listing id the way purchaser-recorded ids
// drift in the wild: casing flips and stray whitespace. Normalization must
// fold every variant back onto the canonical key.
func (g *Generator) jitterID(id string) string {
	if g.rand.Float64() >= g.cfg.RawIDJitterChance {
		return id
	}
	switch g.rand.Intn(3) {
	case 0:
		return strings.ToUpper(id)
	case 1:
		return id + " "
	default:
		return " " + strings.ToUpper(id[:1]) + id[1:]
	}
}

func (g *Generator) randomFriends(users []domain.User, self int) []string {
	count := g.rand.Intn(g.cfg.MaxFriends + 1)
	if count == 0 || len(users) < 2 {
		return nil
	}
	friends := make([]string, 0, count)
	for len(friends) < count {
		idx := g.rand.Intn(len(users))
		if idx == self {
			continue
		}
		friends = append(friends, users[idx].ID)
	}
	return friends
}

func (g *Generator) randomName() string {
	return firstNames[g.rand.Intn(len(firstNames))] + " " + firstNames[g.rand.Intn(len(firstNames))]
}

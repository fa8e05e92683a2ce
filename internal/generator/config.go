package generator

// Config drives the synthetic marketplace data generator.
type Config struct {
	NumUsers     int
	NumListings  int
	NumPurchases int
	MaxFriends   int
	// RawIDJitterChance is the probability that a purchase records its item
	// id with altered casing or surrounding whitespace, the way real
	// purchaser-recorded ids drift from the canonical listing id.
	RawIDJitterChance float64
	Seed              int64
}

// DefaultConfig returns baseline settings producing a dataset small enough to
// inspect by hand but large enough to exercise every recommendation path.
func DefaultConfig() Config {
	return Config{
		NumUsers:          200,
		NumListings:       500,
		NumPurchases:      2000,
		MaxFriends:        8,
		RawIDJitterChance: 0.3,
		Seed:              42,
	}
}

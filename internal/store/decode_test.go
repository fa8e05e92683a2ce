package store

import (
	"testing"
	"time"
)

func TestPurchaseDocDefaults(t *testing.T) {
	got := purchaseDoc{UserID: "u1", ItemID: "A1 "}.toDomain()

	if got.Quantity != 1 {
		t.Errorf("absent quantity = %d, want default 1", got.Quantity)
	}
	if got.Price != 0 || got.LikeCount != 0 {
		t.Errorf("absent price/likeCount = %v/%v, want 0/0", got.Price, got.LikeCount)
	}
	if got.Timestamp != "" {
		t.Errorf("absent timestamp = %q, want empty", got.Timestamp)
	}
	if got.ItemID != "A1 " {
		t.Errorf("raw itemId must be carried through unchanged, got %q", got.ItemID)
	}
}

func TestPurchaseDocExplicitValues(t *testing.T) {
	price := 12.5
	qty := 0
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("PST", -8*3600))

	got := purchaseDoc{UserID: "u1", ItemID: "a1", Price: &price, Quantity: &qty, Timestamp: &ts}.toDomain()

	if got.Quantity != 0 {
		t.Errorf("stored zero quantity must survive, got %d", got.Quantity)
	}
	if got.Price != 12.5 {
		t.Errorf("price = %v, want 12.5", got.Price)
	}
	if got.Timestamp != "2025-03-01T17:30:00Z" {
		t.Errorf("timestamp = %q, want RFC 3339 UTC", got.Timestamp)
	}
}

func TestListingDocDefaults(t *testing.T) {
	got := listingDoc{ID: "a1", Category: "books", SellerID: "s1"}.toDomain()

	if got.Quantity != 0 {
		t.Errorf("absent listing quantity = %d, want default 0", got.Quantity)
	}
	if got.Price != 0 {
		t.Errorf("absent price = %v, want 0", got.Price)
	}
	if got.CreatedAt != "" {
		t.Errorf("absent createdAt = %q, want empty", got.CreatedAt)
	}
}

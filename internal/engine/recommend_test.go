package engine

import (
	"reflect"
	"testing"

	"github.com/campusmarket/recommender/internal/domain"
)

func listing(id, category, sellerID string) domain.MarketplaceItem {
	return domain.MarketplaceItem{ID: id, Category: category, SellerID: sellerID, Description: "desc-" + id}
}

func entryIDs(entries []domain.RecommendationEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestRecommendByCategoryWorkedExample(t *testing.T) {
	// U1 purchased raw "A1 " matching listing a1 (books); b1 (books) and
	// c1 (tools) exist, none sold by U1.
	ix, _ := BuildIndex(domain.Snapshot{
		Users:     []domain.User{{ID: "U1"}},
		Purchases: []domain.Purchase{{UserID: "U1", ItemID: "A1 "}},
		Listings: []domain.MarketplaceItem{
			listing("a1", "books", "seller-1"),
			listing("b1", "books", "seller-2"),
			listing("c1", "tools", "seller-3"),
		},
	})

	got := ix.RecommendByCategory("U1")
	if want := []string{"b1"}; !reflect.DeepEqual(entryIDs(got), want) {
		t.Fatalf("RecommendByCategory(U1) ids = %v, want %v", entryIDs(got), want)
	}
	if got[0].Source != domain.SourceUser || got[0].PurchaseCount != 0 {
		t.Errorf("category entry = %+v, want source=user purchaseCount=0", got[0])
	}
}

func TestRecommendByCategoryNoPurchases(t *testing.T) {
	ix, _ := BuildIndex(domain.Snapshot{
		Users:    []domain.User{{ID: "U1"}},
		Listings: []domain.MarketplaceItem{listing("a1", "books", "s1")},
	})

	if got := ix.RecommendByCategory("U1"); len(got) != 0 {
		t.Errorf("expected empty result for user with no purchases, got %v", entryIDs(got))
	}
}

func TestRecommendByCategoryUnresolvedPurchaseDropped(t *testing.T) {
	// The only purchase references a delisted item, so no category signal
	// exists and the result is empty.
	ix, _ := BuildIndex(domain.Snapshot{
		Users:     []domain.User{{ID: "U1"}},
		Purchases: []domain.Purchase{{UserID: "U1", ItemID: "gone"}},
		Listings:  []domain.MarketplaceItem{listing("a1", "books", "s1")},
	})

	if got := ix.RecommendByCategory("U1"); len(got) != 0 {
		t.Errorf("expected empty result, got %v", entryIDs(got))
	}
}

func TestRecommendByCategoryExcludesOwnListings(t *testing.T) {
	ix, _ := BuildIndex(domain.Snapshot{
		Users:     []domain.User{{ID: "U1"}},
		Purchases: []domain.Purchase{{UserID: "U1", ItemID: "a1"}},
		Listings: []domain.MarketplaceItem{
			listing("a1", "books", "s1"),
			listing("mine", "books", "U1"),
			listing("b1", "books", "s2"),
		},
	})

	if got := entryIDs(ix.RecommendByCategory("U1")); !reflect.DeepEqual(got, []string{"b1"}) {
		t.Errorf("self-sold listing must be excluded, got %v", got)
	}
}

func TestRecommendBySocialWorkedExample(t *testing.T) {
	// U1's friends are U2 and U3; U2 bought "X1" once, U3 bought "x1 " and
	// "y1" once each. Normalization folds the x1 purchases together.
	ix, _ := BuildIndex(domain.Snapshot{
		Users: []domain.User{
			{ID: "U1", FriendIDs: []string{"U2", "U3"}},
			{ID: "U2"},
			{ID: "U3"},
		},
		Purchases: []domain.Purchase{
			{UserID: "U2", ItemID: "X1"},
			{UserID: "U3", ItemID: "x1 "},
			{UserID: "U3", ItemID: "y1"},
		},
		Listings: []domain.MarketplaceItem{
			listing("x1", "games", "s1"),
			listing("y1", "games", "s2"),
		},
	})

	got := ix.RecommendBySocial("U1")
	if want := []string{"x1", "y1"}; !reflect.DeepEqual(entryIDs(got), want) {
		t.Fatalf("RecommendBySocial(U1) ids = %v, want %v", entryIDs(got), want)
	}
	if got[0].PurchaseCount != 2 || got[1].PurchaseCount != 1 {
		t.Errorf("purchase counts = %d,%d, want 2,1", got[0].PurchaseCount, got[1].PurchaseCount)
	}
	for _, e := range got {
		if e.Source != domain.SourceFriend {
			t.Errorf("entry %s source = %q, want friend", e.ID, e.Source)
		}
	}
}

func TestRecommendBySocialNoFriends(t *testing.T) {
	ix, _ := BuildIndex(domain.Snapshot{
		Users:     []domain.User{{ID: "U1"}, {ID: "U2"}},
		Purchases: []domain.Purchase{{UserID: "U2", ItemID: "x1"}},
		Listings:  []domain.MarketplaceItem{listing("x1", "games", "s1")},
	})

	if got := ix.RecommendBySocial("U1"); len(got) != 0 {
		t.Errorf("expected empty result for user with no friends, got %v", entryIDs(got))
	}
}

func TestRecommendBySocialWithoutOwnPurchases(t *testing.T) {
	// A user with no purchase history still gets friend recommendations.
	ix, _ := BuildIndex(domain.Snapshot{
		Users: []domain.User{
			{ID: "U1", FriendIDs: []string{"U2"}},
			{ID: "U2"},
		},
		Purchases: []domain.Purchase{{UserID: "U2", ItemID: "x1"}},
		Listings:  []domain.MarketplaceItem{listing("x1", "games", "s1")},
	})

	if got := entryIDs(ix.RecommendBySocial("U1")); !reflect.DeepEqual(got, []string{"x1"}) {
		t.Errorf("ids = %v, want [x1]", got)
	}
}

func TestRecommendBySocialExclusions(t *testing.T) {
	ix, _ := BuildIndex(domain.Snapshot{
		Users: []domain.User{
			{ID: "U1", FriendIDs: []string{"U2"}},
			{ID: "U2"},
		},
		Purchases: []domain.Purchase{
			{UserID: "U1", ItemID: "OWNED "},
			{UserID: "U2", ItemID: "owned"},
			{UserID: "U2", ItemID: "selfsold"},
			{UserID: "U2", ItemID: "fresh"},
			{UserID: "U2", ItemID: "delisted"},
		},
		Listings: []domain.MarketplaceItem{
			listing("owned", "games", "s1"),
			listing("selfsold", "games", "U1"),
			listing("fresh", "games", "s2"),
		},
	})

	// owned is excluded via the user's normalized purchase set, selfsold via
	// the seller check, delisted has no listing to attach its count to.
	if got := entryIDs(ix.RecommendBySocial("U1")); !reflect.DeepEqual(got, []string{"fresh"}) {
		t.Errorf("ids = %v, want [fresh]", got)
	}
}

func TestRecommendBySocialTieBreakByID(t *testing.T) {
	ix, _ := BuildIndex(domain.Snapshot{
		Users: []domain.User{
			{ID: "U1", FriendIDs: []string{"U2"}},
			{ID: "U2"},
		},
		Purchases: []domain.Purchase{
			{UserID: "U2", ItemID: "b2"},
			{UserID: "U2", ItemID: "a2"},
		},
		Listings: []domain.MarketplaceItem{
			listing("b2", "games", "s1"),
			listing("a2", "games", "s2"),
		},
	})

	if got := entryIDs(ix.RecommendBySocial("U1")); !reflect.DeepEqual(got, []string{"a2", "b2"}) {
		t.Errorf("equal counts must order by ascending id, got %v", got)
	}
}

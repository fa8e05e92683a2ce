package engine

import (
	"sort"

	"github.com/campusmarket/recommender/internal/domain"
)

// Index holds the lookup structures built from one snapshot. It is immutable
// after BuildIndex returns and safe for concurrent reads.
type Index struct {
	purchasesByUser map[string]map[Key]struct{}
	itemsByKey      map[Key]domain.MarketplaceItem
	friendsOf       map[string][]string
	users           map[string]struct{}

	// Original purchase rows, retained for frequency aggregation over
	// friends' purchases.
	purchases []domain.Purchase
}

// KeyConflict reports two listings whose ids normalize to the same key. The
// first-encountered listing is kept; the later one is dropped.
type KeyConflict struct {
	Key       Key
	KeptID    string
	DroppedID string
}

// BuildIndex constructs the lookup structures from the snapshot. Duplicate
// listing keys are a data-integrity violation of the source store: the first
// listing wins and the collision is reported, never fatal.
func BuildIndex(snap domain.Snapshot) (*Index, []KeyConflict) {
	ix := &Index{
		purchasesByUser: make(map[string]map[Key]struct{}),
		itemsByKey:      make(map[Key]domain.MarketplaceItem, len(snap.Listings)),
		friendsOf:       make(map[string][]string, len(snap.Users)),
		users:           make(map[string]struct{}, len(snap.Users)),
		purchases:       snap.Purchases,
	}

	var conflicts []KeyConflict
	for _, item := range snap.Listings {
		key := Normalize(item.ID)
		if key == "" {
			continue
		}
		if kept, exists := ix.itemsByKey[key]; exists {
			conflicts = append(conflicts, KeyConflict{Key: key, KeptID: kept.ID, DroppedID: item.ID})
			continue
		}
		ix.itemsByKey[key] = item
	}

	for _, p := range snap.Purchases {
		key := Normalize(p.ItemID)
		if key == "" {
			continue
		}
		keys, ok := ix.purchasesByUser[p.UserID]
		if !ok {
			keys = make(map[Key]struct{})
			ix.purchasesByUser[p.UserID] = keys
		}
		keys[key] = struct{}{}
	}

	for _, u := range snap.Users {
		ix.users[u.ID] = struct{}{}
		ix.friendsOf[u.ID] = dedupeOrdered(u.FriendIDs)
	}

	return ix, conflicts
}

// HasUser reports whether the user id appears in the user relation.
func (ix *Index) HasUser(userID string) bool {
	_, ok := ix.users[userID]
	return ok
}

// UserIDs returns every user id in the user relation, sorted ascending so
// batch runs traverse users in a reproducible order.
func (ix *Index) UserIDs() []string {
	ids := make([]string, 0, len(ix.users))
	for id := range ix.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func dedupeOrdered(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

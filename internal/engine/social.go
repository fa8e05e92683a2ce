package engine

import (
	"sort"

	"github.com/campusmarket/recommender/internal/domain"
)

// RecommendBySocial recommends listings purchased by the user's friends,
// ranked by how often friends bought them. Every friend purchase row counts,
// so two friends buying the same item under different raw casings aggregate
// onto one key. Keys with no matching listing are counted but dropped once no
// listing exists to attach the count to. The user's own listings and items
// the user already purchased are excluded. Output is ordered by descending
// purchase count, ties broken by ascending listing id.
func (ix *Index) RecommendBySocial(userID string) []domain.RecommendationEntry {
	friends := ix.friendsOf[userID]
	if len(friends) == 0 {
		return nil
	}
	friendSet := make(map[string]struct{}, len(friends))
	for _, id := range friends {
		friendSet[id] = struct{}{}
	}

	owned := ix.purchasesByUser[userID]

	counts := make(map[Key]int)
	for _, p := range ix.purchases {
		if _, isFriend := friendSet[p.UserID]; !isFriend {
			continue
		}
		key := Normalize(p.ItemID)
		if key == "" {
			continue
		}
		counts[key]++
	}

	var entries []domain.RecommendationEntry
	for key, count := range counts {
		item, ok := ix.itemsByKey[key]
		if !ok {
			continue
		}
		if item.SellerID == userID {
			continue
		}
		if _, purchased := owned[key]; purchased {
			continue
		}
		entries = append(entries, newEntry(item, count, domain.SourceFriend))
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].PurchaseCount != entries[j].PurchaseCount {
			return entries[i].PurchaseCount > entries[j].PurchaseCount
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

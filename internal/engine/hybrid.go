package engine

import (
	"sort"

	"github.com/campusmarket/recommender/internal/domain"
)

// DefaultTopN bounds the merged recommendation list.
const DefaultTopN = 10

// Merge combines the category-affinity and social-affinity results for one
// user into a single ranked list. Duplicates are resolved by listing id with
// the friend-sourced entry winning: it carries a purchase count and strictly
// more ranking information than the category entry. The merged list orders
// user-sourced entries first, then descending purchase count, then ascending
// listing id, and is truncated to the top limit entries (DefaultTopN when
// limit is not positive).
func Merge(userSourced, friendSourced []domain.RecommendationEntry, limit int) []domain.RecommendationEntry {
	if limit <= 0 {
		limit = DefaultTopN
	}

	byID := make(map[string]domain.RecommendationEntry, len(userSourced)+len(friendSourced))
	for _, entry := range userSourced {
		byID[entry.ID] = entry
	}
	for _, entry := range friendSourced {
		byID[entry.ID] = entry
	}

	merged := make([]domain.RecommendationEntry, 0, len(byID))
	for _, entry := range byID {
		merged = append(merged, entry)
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if a.Source != b.Source {
			return a.Source == domain.SourceUser
		}
		if a.PurchaseCount != b.PurchaseCount {
			return a.PurchaseCount > b.PurchaseCount
		}
		return a.ID < b.ID
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

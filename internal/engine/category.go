package engine

import (
	"sort"

	"github.com/campusmarket/recommender/internal/domain"
)

// RecommendByCategory recommends listings that share a category with the
// user's past purchases. Purchased keys with no matching listing are dropped
// silently. The user's own listings and already-purchased items are never
// recommended. Output is deduplicated by listing id and ordered ascending by
// id for reproducibility.
func (ix *Index) RecommendByCategory(userID string) []domain.RecommendationEntry {
	owned := ix.purchasesByUser[userID]
	if len(owned) == 0 {
		return nil
	}

	categories := make(map[string]struct{})
	for key := range owned {
		item, ok := ix.itemsByKey[key]
		if !ok {
			continue
		}
		categories[item.Category] = struct{}{}
	}
	if len(categories) == 0 {
		return nil
	}

	var entries []domain.RecommendationEntry
	seen := make(map[string]struct{})
	for key, item := range ix.itemsByKey {
		if item.SellerID == userID {
			continue
		}
		if _, purchased := owned[key]; purchased {
			continue
		}
		if _, match := categories[item.Category]; !match {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		entries = append(entries, newEntry(item, 0, domain.SourceUser))
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

func newEntry(item domain.MarketplaceItem, purchaseCount int, source string) domain.RecommendationEntry {
	return domain.RecommendationEntry{
		ID:            item.ID,
		Category:      item.Category,
		Description:   item.Description,
		Price:         item.Price,
		Quantity:      item.Quantity,
		SellerName:    item.SellerName,
		ImageURL:      item.ImageURL,
		PurchaseCount: purchaseCount,
		Source:        source,
	}
}

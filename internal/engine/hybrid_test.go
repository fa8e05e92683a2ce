package engine

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/campusmarket/recommender/internal/domain"
)

func userEntry(id string) domain.RecommendationEntry {
	return domain.RecommendationEntry{ID: id, Source: domain.SourceUser}
}

func friendEntry(id string, count int) domain.RecommendationEntry {
	return domain.RecommendationEntry{ID: id, Source: domain.SourceFriend, PurchaseCount: count}
}

func TestMergeWorkedExample(t *testing.T) {
	got := Merge(
		[]domain.RecommendationEntry{userEntry("b1")},
		[]domain.RecommendationEntry{friendEntry("x1", 2), friendEntry("y1", 1)},
		DefaultTopN,
	)

	want := []domain.RecommendationEntry{userEntry("b1"), friendEntry("x1", 2), friendEntry("y1", 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeFriendEntryWinsOnDuplicate(t *testing.T) {
	got := Merge(
		[]domain.RecommendationEntry{userEntry("a1"), userEntry("b1")},
		[]domain.RecommendationEntry{friendEntry("a1", 3)},
		DefaultTopN,
	)

	want := []domain.RecommendationEntry{userEntry("b1"), friendEntry("a1", 3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeNeverDuplicatesIDs(t *testing.T) {
	got := Merge(
		[]domain.RecommendationEntry{userEntry("a1"), userEntry("b1")},
		[]domain.RecommendationEntry{friendEntry("a1", 1), friendEntry("b1", 2), friendEntry("c1", 1)},
		DefaultTopN,
	)

	seen := make(map[string]bool)
	for _, e := range got {
		if seen[e.ID] {
			t.Errorf("id %s appears more than once", e.ID)
		}
		seen[e.ID] = true
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestMergeTruncatesToLimit(t *testing.T) {
	var friends []domain.RecommendationEntry
	for i := 0; i < 25; i++ {
		friends = append(friends, friendEntry(fmt.Sprintf("item-%02d", i), i))
	}

	got := Merge(nil, friends, 0)
	if len(got) != DefaultTopN {
		t.Fatalf("len = %d, want %d", len(got), DefaultTopN)
	}
	// Highest counts survive the cut.
	if got[0].ID != "item-24" || got[0].PurchaseCount != 24 {
		t.Errorf("top entry = %+v, want item-24 count=24", got[0])
	}

	if got := Merge(nil, friends[:3], 10); len(got) != 3 {
		t.Errorf("short input must pass through, len = %d", len(got))
	}
}

func TestMergeDeterministic(t *testing.T) {
	user := []domain.RecommendationEntry{userEntry("b1"), userEntry("a1"), userEntry("c1")}
	friend := []domain.RecommendationEntry{friendEntry("d1", 1), friendEntry("e1", 1), friendEntry("a1", 2)}

	first := Merge(user, friend, 4)
	for i := 0; i < 20; i++ {
		if again := Merge(user, friend, 4); !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v != %v", i, again, first)
		}
	}
}

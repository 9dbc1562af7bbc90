package journal

import (
	"testing"
	"time"
)

func TestGroupByMonthDateOrder(t *testing.T) {
	entryA := entryOn("a", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC))
	entryB := entryOn("b", time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	groups := GroupByMonth([]Entry{entryA, entryB}, SortByDate)

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "2024-02" || groups[1].Key != "2024-01" {
		t.Errorf("Expected groups 2024-02 then 2024-01, got %s then %s", groups[0].Key, groups[1].Key)
	}
	if groups[0].Label != "February 2024" {
		t.Errorf("Expected label 'February 2024', got %q", groups[0].Label)
	}
	if len(groups[0].Entries) != 1 || groups[0].Entries[0].ID != "b" {
		t.Errorf("Expected entry b alone in the February group")
	}
	if len(groups[1].Entries) != 1 || groups[1].Entries[0].ID != "a" {
		t.Errorf("Expected entry a alone in the January group")
	}
}

func TestGroupByMonthEveryEntryExactlyOnce(t *testing.T) {
	var entries []Entry
	base := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		entries = append(entries, entryOn(string(rune('a'+i)), base.AddDate(0, i%3, i)))
	}

	groups := GroupByMonth(entries, SortByDate)

	seen := make(map[string]int)
	for _, g := range groups {
		for _, e := range g.Entries {
			seen[e.ID]++
		}
	}
	if len(seen) != len(entries) {
		t.Errorf("Expected %d distinct entries across groups, got %d", len(entries), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("Entry %s appeared %d times", id, n)
		}
	}
}

func TestGroupByMonthFavoriteOrder(t *testing.T) {
	favOld := entryOn("favOld", time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC))
	favOld.Favorite = true
	plainNew := entryOn("plainNew", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC))
	plainMid := entryOn("plainMid", time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC))

	groups := GroupByMonth([]Entry{plainMid, favOld, plainNew}, SortByFavorite)

	// Groups follow first-encounter order of the favorite-sorted sequence:
	// the old favorite's month leads despite being the oldest.
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	wantKeys := []string{"2024-01", "2024-03", "2024-02"}
	for i, want := range wantKeys {
		if groups[i].Key != want {
			t.Errorf("Expected group %s at position %d, got %s", want, i, groups[i].Key)
		}
	}
}

func TestGroupByMonthFavoriteTiesByDate(t *testing.T) {
	fav1 := entryOn("fav1", time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC))
	fav1.Favorite = true
	fav2 := entryOn("fav2", time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC))
	fav2.Favorite = true
	plain := entryOn("plain", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC))

	groups := GroupByMonth([]Entry{fav1, plain, fav2}, SortByFavorite)

	if len(groups) != 1 {
		t.Fatalf("Expected a single March group, got %d groups", len(groups))
	}
	wantOrder := []string{"fav2", "fav1", "plain"}
	for i, want := range wantOrder {
		if groups[0].Entries[i].ID != want {
			t.Errorf("Expected %s at position %d, got %s", want, i, groups[0].Entries[i].ID)
		}
	}
}

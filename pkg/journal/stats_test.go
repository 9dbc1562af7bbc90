package journal

import (
	"testing"
	"time"
)

var statsNow = time.Date(2024, time.March, 15, 14, 0, 0, 0, time.UTC)

func entryOn(id string, date time.Time) Entry {
	return Entry{ID: id, Date: date, Title: "t", Content: "c"}
}

func sortedEntries(entries ...Entry) []Entry {
	sortByDateDesc(entries)
	return entries
}

func TestCurrentStreakEmpty(t *testing.T) {
	if got := CurrentStreak(nil, statsNow); got != 0 {
		t.Errorf("Expected streak 0 for empty collection, got %d", got)
	}
}

func TestCurrentStreakStale(t *testing.T) {
	entries := sortedEntries(entryOn("old", statsNow.AddDate(0, 0, -2)))
	if got := CurrentStreak(entries, statsNow); got != 0 {
		t.Errorf("Expected streak 0 when newest entry is 2 days old, got %d", got)
	}
}

func TestCurrentStreakTodayAndYesterday(t *testing.T) {
	entries := sortedEntries(
		entryOn("today", statsNow),
		entryOn("yesterday", statsNow.AddDate(0, 0, -1)),
		entryOn("older", statsNow.AddDate(0, 0, -3)),
	)

	// today + yesterday are contiguous; the 3-days-ago entry breaks the
	// chain and is not counted.
	if got := CurrentStreak(entries, statsNow); got != 2 {
		t.Errorf("Expected streak 2, got %d", got)
	}
}

func TestCurrentStreakStartsYesterday(t *testing.T) {
	entries := sortedEntries(
		entryOn("yesterday", statsNow.AddDate(0, 0, -1)),
		entryOn("daybefore", statsNow.AddDate(0, 0, -2)),
	)
	if got := CurrentStreak(entries, statsNow); got != 2 {
		t.Errorf("Expected a streak ending yesterday to count, got %d", got)
	}
}

func TestCurrentStreakSameDayCountsOnce(t *testing.T) {
	entries := sortedEntries(
		entryOn("morning", statsNow.Add(-6*time.Hour)),
		entryOn("evening", statsNow.Add(-2*time.Hour)),
		entryOn("yesterday", statsNow.AddDate(0, 0, -1)),
	)
	if got := CurrentStreak(entries, statsNow); got != 2 {
		t.Errorf("Expected same-day duplicate to count once, streak 2, got %d", got)
	}
}

func TestCurrentStreakNormalizesToClockZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, zone)

	// Both instants fall on March 15 in the clock's zone even though they
	// straddle a UTC midnight.
	entries := sortedEntries(
		entryOn("late", time.Date(2024, time.March, 15, 2, 0, 0, 0, time.UTC)),
		entryOn("early", time.Date(2024, time.March, 14, 22, 0, 0, 0, time.UTC)),
	)
	if got := CurrentStreak(entries, now); got != 1 {
		t.Errorf("Expected entries on the same local day to count once, got %d", got)
	}
}

func TestEntriesThisMonthUsesClockZone(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, time.April, 1, 10, 0, 0, 0, zone)

	// 22:00Z on March 31 is already April 1 in the clock's zone.
	entries := sortedEntries(
		entryOn("rolled", time.Date(2024, time.March, 31, 22, 0, 0, 0, time.UTC)),
		entryOn("march", time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)),
	)

	stats := ComputeStats(entries, Stats{}, now)
	if stats.EntriesThisMonth != 1 {
		t.Errorf("Expected 1 entry this month in the clock's zone, got %d", stats.EntriesThisMonth)
	}
}

func TestComputeStatsProjections(t *testing.T) {
	newest := statsNow.Add(-1 * time.Hour)
	entries := sortedEntries(
		entryOn("a", newest),
		entryOn("b", statsNow.AddDate(0, 0, -1)),
		entryOn("c", time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC)),
	)

	stats := ComputeStats(entries, Stats{}, statsNow)

	if stats.TotalEntries != 3 {
		t.Errorf("Expected 3 total entries, got %d", stats.TotalEntries)
	}
	if stats.LastEntryDate == nil || !stats.LastEntryDate.Equal(newest) {
		t.Errorf("Expected lastEntryDate %v, got %v", newest, stats.LastEntryDate)
	}
	if stats.EntriesThisMonth != 2 {
		t.Errorf("Expected 2 entries this month, got %d", stats.EntriesThisMonth)
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("Expected current streak 2, got %d", stats.CurrentStreak)
	}

	empty := ComputeStats(nil, Stats{}, statsNow)
	if empty.LastEntryDate != nil {
		t.Errorf("Expected nil lastEntryDate for empty collection")
	}
}

func TestLongestStreakRatchet(t *testing.T) {
	entries := sortedEntries(
		entryOn("today", statsNow),
		entryOn("yesterday", statsNow.AddDate(0, 0, -1)),
		entryOn("daybefore", statsNow.AddDate(0, 0, -2)),
	)

	first := ComputeStats(entries, Stats{}, statsNow)
	if first.CurrentStreak != 3 || first.LongestStreak != 3 {
		t.Fatalf("Expected streak 3/3, got %d/%d", first.CurrentStreak, first.LongestStreak)
	}

	// Everything deleted: current drops to zero but longest must not move.
	second := ComputeStats(nil, first, statsNow)
	if second.CurrentStreak != 0 {
		t.Errorf("Expected current streak 0 after deletion, got %d", second.CurrentStreak)
	}
	if second.LongestStreak != 3 {
		t.Errorf("Expected longest streak to stay at 3, got %d", second.LongestStreak)
	}

	// Idempotent: same inputs, same output, ratchet included.
	third := ComputeStats(nil, second, statsNow)
	if third.CurrentStreak != second.CurrentStreak || third.LongestStreak != second.LongestStreak {
		t.Errorf("Expected identical stats on repeated computation, got %+v then %+v", second, third)
	}
}

func TestLongestStreakNeverDecreasesThroughStore(t *testing.T) {
	store, _ := setupTestStore(t)
	now := store.Now()

	for i := 0; i < 4; i++ {
		e := entryOn("d", now.AddDate(0, 0, -i))
		e.ID = e.ID + string(rune('0'+i))
		if _, err := store.Upsert(e); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	stats, _ := store.Stats()
	if stats.LongestStreak != 4 {
		t.Fatalf("Expected longest streak 4, got %d", stats.LongestStreak)
	}

	entries, _ := store.LoadAll()
	for _, e := range entries {
		if err := store.Delete(e.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	}

	stats, _ = store.Stats()
	if stats.CurrentStreak != 0 {
		t.Errorf("Expected current streak 0 after deleting everything, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 4 {
		t.Errorf("Expected longest streak to survive deletions, got %d", stats.LongestStreak)
	}
	if stats.TotalEntries != 0 {
		t.Errorf("Expected 0 total entries, got %d", stats.TotalEntries)
	}
}

package journal

import "time"

// ComputeStats derives a fresh stats snapshot from the entry collection,
// which must already be sorted by date descending. previous supplies the
// longest-streak high-water mark; everything else is recomputed from scratch
// against now. Deterministic and idempotent for fixed inputs.
func ComputeStats(entries []Entry, previous Stats, now time.Time) Stats {
	currentStreak := CurrentStreak(entries, now)

	currentMonth := now.Month()
	currentYear := now.Year()
	entriesThisMonth := 0
	for _, entry := range entries {
		// Calendar membership is judged in the clock's zone, not the zone
		// the entry date was recorded with.
		d := entry.Date.In(now.Location())
		if d.Month() == currentMonth && d.Year() == currentYear {
			entriesThisMonth++
		}
	}

	stats := Stats{
		TotalEntries:     len(entries),
		CurrentStreak:    currentStreak,
		LongestStreak:    max(previous.LongestStreak, currentStreak),
		EntriesThisMonth: entriesThisMonth,
	}
	if len(entries) > 0 {
		last := entries[0].Date
		stats.LastEntryDate = &last
	}
	return stats
}

// CurrentStreak counts consecutive calendar days journaled, walking backward
// from the newest entry. entries must be sorted by date descending. Days are
// split in the zone of now, so entries recorded with a different offset land
// on the caller's calendar day. An entry made two or more days before now
// does not start a streak; same-day duplicates count once; any gap wider than
// one day stops the walk.
func CurrentStreak(entries []Entry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	loc := now.Location()
	today := startOfDay(now)
	mostRecentDay := startOfDay(entries[0].Date.In(loc))

	// Streak broken if more than one day has passed since the last entry.
	if daysBetween(today, mostRecentDay) > 1 {
		return 0
	}

	streak := 1
	currentDay := mostRecentDay
	for _, entry := range entries[1:] {
		entryDay := startOfDay(entry.Date.In(loc))
		diffDays := daysBetween(currentDay, entryDay)

		if diffDays == 1 {
			streak++
			currentDay = entryDay
		} else if diffDays == 0 {
			continue
		} else {
			break
		}
	}
	return streak
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// daysBetween truncates the difference of two midnights to whole 24h days,
// matching the floor-division day math the stored data was produced with.
func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}

package journal

import (
	"fmt"
	"sort"
)

// SortMode selects how entries are ordered before grouping.
type SortMode string

const (
	// SortByDate orders entries newest first.
	SortByDate SortMode = "date"
	// SortByFavorite puts favorites first, then non-favorites, each bucket
	// newest first.
	SortByFavorite SortMode = "favorite"
)

// MonthGroup is one calendar month's worth of entries, keyed YYYY-MM.
type MonthGroup struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Entries []Entry `json:"entries"`
}

// GroupByMonth buckets entries by the calendar month of their date. Every
// entry lands in exactly one group. Groups appear in the order they are first
// encountered while scanning the sorted sequence; they are deliberately not
// re-sorted by key afterwards, so under favorite sort a favorite's month can
// lead newer months.
func GroupByMonth(entries []Entry, mode SortMode) []MonthGroup {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)

	if mode == SortByFavorite {
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Favorite != sorted[j].Favorite {
				return sorted[i].Favorite
			}
			return sorted[i].Date.After(sorted[j].Date)
		})
	} else {
		sortByDateDesc(sorted)
	}

	var groups []MonthGroup
	index := make(map[string]int)
	for _, entry := range sorted {
		key := fmt.Sprintf("%04d-%02d", entry.Date.Year(), int(entry.Date.Month()))
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{
				Key:   key,
				Label: entry.Date.Format("January 2006"),
			})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}
	return groups
}

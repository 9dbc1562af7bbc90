package journal

import (
	"time"
)

// DefaultTitle stands in for entries saved without one.
const DefaultTitle = "Untitled Entry"

// MaxImagesPerEntry caps the number of attachments a single entry may carry.
const MaxImagesPerEntry = 5

// Moods lists the recognized mood values. An empty mood means unset.
var Moods = []string{"happy", "sad", "neutral", "excited", "thoughtful", "stressed", "peaceful"}

// ValidMood reports whether mood is one of the recognized values.
func ValidMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// Image is an attachment stored inline with its entry, payload encoded as text.
type Image struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Data       string    `json:"data"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Entry is a single diary record. Date is the diary day the entry is filed
// under and is the field all sorting, grouping, and streak math key on;
// CreatedAt/UpdatedAt only track record lifecycle.
type Entry struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	Images    []Image   `json:"images"`
	Favorite  bool      `json:"favorite"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Stats is derived wholesale from the entry collection on every mutation.
// LongestStreak is the one exception to "fully derivable": it is a high-water
// mark that never decreases, even after deletions.
type Stats struct {
	TotalEntries     int        `json:"totalEntries"`
	LastEntryDate    *time.Time `json:"lastEntryDate"`
	CurrentStreak    int        `json:"currentStreak"`
	LongestStreak    int        `json:"longestStreak"`
	EntriesThisMonth int        `json:"entriesThisMonth"`
}

// normalize repairs an entry at the storage boundary: default title, non-nil
// collections, and case-sensitive tag deduplication preserving insertion
// order. It does not enforce the image cap; Upsert rejects oversized entries
// instead of silently truncating loaded data.
func (e *Entry) normalize() {
	if e.Title == "" {
		e.Title = DefaultTitle
	}
	if e.Images == nil {
		e.Images = []Image{}
	}
	tags := make([]string, 0, len(e.Tags))
	seen := make(map[string]struct{}, len(e.Tags))
	for _, tag := range e.Tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	e.Tags = tags
}

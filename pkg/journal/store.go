package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/Muzzu8421/dear-diary/pkg/storage"
)

const (
	// EntriesKey is the storage record holding the JSON array of entries.
	EntriesKey = "diary_entries"
	// StatsKey is the storage record holding the derived stats object.
	StatsKey = "diary_stats"
)

var (
	ErrEmptyEntryID  = errors.New("entry id must not be empty")
	ErrTooManyImages = fmt.Errorf("entry may carry at most %d images", MaxImagesPerEntry)
)

// EntryStore owns the authoritative entry collection in a key-value store and
// keeps the derived stats record in step with it. All operations are
// synchronous; there is a single logical caller.
type EntryStore struct {
	kv storage.Store

	// Now supplies the wall clock for streak and this-month math. Tests
	// override it; everything else leaves it at time.Now.
	Now func() time.Time
}

// NewEntryStore wraps a storage backend.
func NewEntryStore(kv storage.Store) *EntryStore {
	return &EntryStore{kv: kv, Now: time.Now}
}

// LoadAll returns every entry sorted by date descending. An absent record
// yields an empty collection; a malformed record degrades to empty and is
// logged, never surfaced to the caller.
func (s *EntryStore) LoadAll() ([]Entry, error) {
	entries, err := s.loadEntries()
	if err != nil {
		return nil, err
	}
	sortByDateDesc(entries)
	return entries, nil
}

// Upsert saves an entry: replaces in place when the id already exists,
// appends otherwise, then re-sorts, persists, and recomputes stats over the
// post-write collection. On a quota-exceeded write nothing changes and no
// stats update happens.
func (s *EntryStore) Upsert(entry Entry) (Entry, error) {
	if entry.ID == "" {
		return Entry{}, ErrEmptyEntryID
	}
	if len(entry.Images) > MaxImagesPerEntry {
		return Entry{}, ErrTooManyImages
	}

	entries, err := s.loadEntries()
	if err != nil {
		return Entry{}, err
	}

	now := s.Now()
	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.UpdatedAt = now
	entry.normalize()

	replaced := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			if entry.CreatedAt.IsZero() {
				entry.CreatedAt = entries[i].CreatedAt
			}
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		entries = append(entries, entry)
	}

	sortByDateDesc(entries)

	if err := s.persist(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Delete removes the entry with the given id. Deleting an unknown id is a
// no-op on the collection, but stats are recomputed and persisted either way,
// exactly as Upsert does.
func (s *EntryStore) Delete(id string) error {
	entries, err := s.loadEntries()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}

	sortByDateDesc(kept)
	return s.persist(kept)
}

// FindByID looks an entry up by identity. A miss is not an error.
func (s *EntryStore) FindByID(id string) (Entry, bool, error) {
	entries, err := s.loadEntries()
	if err != nil {
		return Entry{}, false, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return Entry{}, false, nil
}

// Stats returns the persisted stats snapshot, degrading to zeroed stats when
// the record is absent or malformed.
func (s *EntryStore) Stats() (Stats, error) {
	raw, ok, err := s.kv.Get(StatsKey)
	if err != nil {
		return Stats{}, err
	}
	if !ok {
		return Stats{}, nil
	}

	var stats Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		log.Printf("WARN: malformed %s record, falling back to zeroed stats: %v", StatsKey, err)
		return Stats{}, nil
	}
	return stats, nil
}

func (s *EntryStore) loadEntries() ([]Entry, error) {
	raw, ok, err := s.kv.Get(EntriesKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Printf("WARN: malformed %s record, falling back to empty collection: %v", EntriesKey, err)
		return []Entry{}, nil
	}
	for i := range entries {
		entries[i].normalize()
	}
	return entries, nil
}

// persist writes the entries record and the recomputed stats record as a
// unit. A mutation either lands both records or neither: when the stats write
// fails, the previous entries record is put back before the error surfaces.
// The restore always fits because the prior state was within quota.
func (s *EntryStore) persist(entries []Entry) error {
	prevRaw, prevExisted, err := s.kv.Get(EntriesKey)
	if err != nil {
		return err
	}

	if err := s.persistEntries(entries); err != nil {
		return err
	}
	if err := s.updateStats(entries); err != nil {
		var restoreErr error
		if prevExisted {
			restoreErr = s.kv.Set(EntriesKey, prevRaw)
		} else {
			restoreErr = s.kv.Delete(EntriesKey)
		}
		if restoreErr != nil {
			log.Printf("WARN: failed to restore %s record after stats write failure: %v", EntriesKey, restoreErr)
		}
		return err
	}
	return nil
}

func (s *EntryStore) persistEntries(entries []Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := s.kv.Set(EntriesKey, string(payload)); err != nil {
		return fmt.Errorf("failed to persist entries: %w", err)
	}
	return nil
}

// updateStats recomputes the stats snapshot over entries (already sorted date
// descending) and overwrites the stored record wholesale.
func (s *EntryStore) updateStats(entries []Entry) error {
	previous, err := s.Stats()
	if err != nil {
		return err
	}

	stats := ComputeStats(entries, previous, s.Now())

	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := s.kv.Set(StatsKey, string(payload)); err != nil {
		return fmt.Errorf("failed to persist stats: %w", err)
	}
	return nil
}

// sortByDateDesc orders newest first. The sort is stable so same-date entries
// keep their relative order across saves.
func sortByDateDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

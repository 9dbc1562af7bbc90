package storage

import "errors"

// ErrQuotaExceeded is returned by Set when a write would push the store past
// its configured byte budget. The store is left unchanged.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a synchronous key-value port modeled on browser local storage.
// Values are opaque strings; callers layer their own encoding on top.
type Store interface {
	// Get returns the value at key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes value at key, replacing any previous value. Writes that
	// would exceed the store's quota fail with ErrQuotaExceeded and leave
	// the previous value intact.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

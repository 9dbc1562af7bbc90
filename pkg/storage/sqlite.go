package storage

import (
	"database/sql"
	"fmt"
)

const (
	getRecordStatement = `
	SELECT value FROM kv_records WHERE key = ?
	`

	setRecordStatement = `
	INSERT INTO kv_records (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()
	`

	deleteRecordStatement = `
	DELETE FROM kv_records WHERE key = ?
	`

	usedBytesStatement = `
	SELECT COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0) FROM kv_records WHERE key != ?
	`
)

// SQLiteStore is a Store backed by a SQLite kv_records table. The schema must
// have been initialized via UpgradeDB before use.
type SQLiteStore struct {
	db       *sql.DB
	maxBytes int64
}

// NewSQLiteStore wraps an open database connection. A maxBytes of 0 disables
// the quota.
func NewSQLiteStore(db *sql.DB, maxBytes int64) *SQLiteStore {
	return &SQLiteStore{db: db, maxBytes: maxBytes}
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(getRecordStatement, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read record '%s': %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	if s.maxBytes > 0 {
		var used int64
		if err := s.db.QueryRow(usedBytesStatement, key).Scan(&used); err != nil {
			return fmt.Errorf("failed to measure store usage: %w", err)
		}
		if used+int64(len(key)+len(value)) > s.maxBytes {
			return ErrQuotaExceeded
		}
	}

	_, err := s.db.Exec(setRecordStatement, key, value)
	if err != nil {
		return fmt.Errorf("failed to write record '%s': %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec(deleteRecordStatement, key)
	if err != nil {
		return fmt.Errorf("failed to delete record '%s': %w", key, err)
	}
	return nil
}

package storage

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// The kv_records table is the persistent counterpart of browser local
	// storage: one row per logical record, opaque text values.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS diary_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS kv_records (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at REAL DEFAULT (unixepoch())
);
`
)

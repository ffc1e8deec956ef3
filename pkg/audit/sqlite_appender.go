package audit

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

// SQLiteAppender persists entries into a local sqlite database, one row per
// submitted batch. Useful for querying a long engagement afterwards.
type SQLiteAppender struct {
	db     *sql.DB
	insert *sql.Stmt
}

const createAuditTable = `
CREATE TABLE IF NOT EXISTS audit_log (
	id          TEXT PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	operation   TEXT NOT NULL,
	status      TEXT NOT NULL,
	server      TEXT,
	statement   TEXT,
	fingerprint TEXT,
	duration_ns INTEGER,
	rows        INTEGER,
	error       TEXT
)`

// NewSQLiteAppender opens (or creates) the database and the audit table.
func NewSQLiteAppender(path string) (*SQLiteAppender, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if _, err := db.Exec(createAuditTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	insert, err := db.Prepare(`
		INSERT INTO audit_log (id, timestamp, operation, status, server, statement, fingerprint, duration_ns, rows, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare audit insert: %w", err)
	}

	return &SQLiteAppender{db: db, insert: insert}, nil
}

// Append inserts one row.
func (sa *SQLiteAppender) Append(e *Entry) error {
	_, err := sa.insert.Exec(
		e.ID,
		e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		string(e.Operation),
		string(e.Status),
		e.Server,
		e.Statement,
		e.Fingerprint,
		int64(e.Duration),
		e.Rows,
		e.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// Close releases the statement and database.
func (sa *SQLiteAppender) Close() error {
	if sa.insert != nil {
		sa.insert.Close()
	}
	return sa.db.Close()
}

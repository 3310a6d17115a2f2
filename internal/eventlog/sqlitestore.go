package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/flavoricons/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// DefaultPath is the ledger location inside the data directory.
func DefaultPath() string {
	return filepath.Join(paths.DataDir(), paths.LedgerFileName)
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// the table and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS assets (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    flavor    TEXT    NOT NULL DEFAULT '',
    density   TEXT    NOT NULL DEFAULT '',
    source    TEXT    NOT NULL DEFAULT '',
    output    TEXT    NOT NULL DEFAULT '',
    action    TEXT    NOT NULL,
    sha256    TEXT    NOT NULL DEFAULT '',
    error     TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_assets_timestamp ON assets(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_assets_output    ON assets(output);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Record(e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO assets (timestamp, flavor, density, source, output, action, sha256, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Time.Format(time.RFC3339Nano), e.Flavor, e.Density, e.Source, e.Output,
		string(e.Action), e.SHA256, e.Error,
	)
	return err
}

func (s *SQLiteStore) Entries(limit int) ([]Entry, error) {
	query := `SELECT timestamp, flavor, density, source, output, action, sha256, error
		FROM assets ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var ts, action string
		var e Entry
		if err := rows.Scan(&ts, &e.Flavor, &e.Density, &e.Source, &e.Output, &action, &e.SHA256, &e.Error); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			continue
		}
		e.Time = t
		e.Action = Action(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM assets`)
	return err
}

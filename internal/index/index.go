// Package index keeps a SQLite registry of marker files mmr has touched, so
// reminders scattered across directories can be listed from anywhere.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver with database/sql
)

// FileName is the database file kept in the mmr home.
const FileName = "index.db"

const timeLayout = time.RFC3339Nano

// ErrDisabled is returned when an operation needs the index and it is turned off.
var ErrDisabled = errors.New("marker index is disabled")

// Entry is one indexed marker.
type Entry struct {
	Path      string
	FirstSeen time.Time
	LastSeen  time.Time
	LastShown *time.Time
}

// Index wraps a *sql.DB with the path it was opened from.
type Index struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the index at path and initialises the schema.
func Open(path string) (*Index, error) {
	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("index.Open: %w", err)
	}
	ix := &Index{db: sqldb, path: path}
	if err := ix.createSchema(); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("index.Open createSchema: %w", err)
	}
	return ix, nil
}

// Path returns the database file the index was opened from.
func (ix *Index) Path() string { return ix.path }

// Close closes the underlying database connection.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) createSchema() error {
	_, err := ix.db.Exec(`CREATE TABLE IF NOT EXISTS markers (
		path       TEXT PRIMARY KEY,
		first_seen TEXT NOT NULL,
		last_seen  TEXT NOT NULL,
		last_shown TEXT
	)`)
	return err
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Touch records path as seen at at.
func (ix *Index) Touch(path string, at time.Time) error {
	ts := at.UTC().Format(timeLayout)
	_, err := ix.db.Exec(`INSERT INTO markers (path, first_seen, last_seen) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET last_seen = excluded.last_seen`,
		path, ts, ts)
	if err != nil {
		return fmt.Errorf("index.Touch: %w", err)
	}
	return nil
}

// MarkShown records that path was printed at at.
func (ix *Index) MarkShown(path string, at time.Time) error {
	ts := at.UTC().Format(timeLayout)
	_, err := ix.db.Exec(`INSERT INTO markers (path, first_seen, last_seen, last_shown) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET last_seen = excluded.last_seen, last_shown = excluded.last_shown`,
		path, ts, ts, ts)
	if err != nil {
		return fmt.Errorf("index.MarkShown: %w", err)
	}
	return nil
}

// Remove deletes path from the index. Returns false if it was not present.
func (ix *Index) Remove(path string) (bool, error) {
	res, err := ix.db.Exec(`DELETE FROM markers WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("index.Remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Prune removes every entry for which keep returns false and reports how many
// were removed.
func (ix *Index) Prune(keep func(path string) bool) (int, error) {
	entries, err := ix.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if keep(e.Path) {
			continue
		}
		ok, err := ix.Remove(e.Path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

const selectCols = `SELECT path, first_seen, last_seen, last_shown FROM markers`

// List returns all entries, most recently seen first.
func (ix *Index) List() ([]Entry, error) {
	rows, err := ix.db.Query(selectCols + ` ORDER BY last_seen DESC, path ASC`)
	if err != nil {
		return nil, fmt.Errorf("index.List: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("index.List: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry for path. The bool is false when path is not indexed.
func (ix *Index) Get(path string) (Entry, bool, error) {
	e, err := scanEntry(ix.db.QueryRow(selectCols+` WHERE path = ?`, path))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("index.Get: %w", err)
	}
	return e, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                   Entry
		firstSeen, lastSeen string
		lastShown           sql.NullString
	)
	if err := row.Scan(&e.Path, &firstSeen, &lastSeen, &lastShown); err != nil {
		return Entry{}, err
	}
	var err error
	if e.FirstSeen, err = time.Parse(timeLayout, firstSeen); err != nil {
		return Entry{}, fmt.Errorf("first_seen: %w", err)
	}
	if e.LastSeen, err = time.Parse(timeLayout, lastSeen); err != nil {
		return Entry{}, fmt.Errorf("last_seen: %w", err)
	}
	if lastShown.Valid {
		t, err := time.Parse(timeLayout, lastShown.String)
		if err != nil {
			return Entry{}, fmt.Errorf("last_shown: %w", err)
		}
		e.LastShown = &t
	}
	return e, nil
}

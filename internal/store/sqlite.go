package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/amishk599/jobmerge/internal/merge"
	"github.com/amishk599/jobmerge/internal/model"
)

// SQLiteStore writes aggregated listings to a SQLite database. It is an
// output sink only; nothing in the aggregation reads from it.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// listings table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS listings (
		dedup_key    TEXT PRIMARY KEY,
		position     INTEGER NOT NULL,
		company      TEXT NOT NULL,
		title        TEXT NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		link         TEXT NOT NULL,
		date_display TEXT NOT NULL DEFAULT '',
		posted_at    DATETIME,
		salary       TEXT NOT NULL DEFAULT '',
		job_type     TEXT NOT NULL,
		source       TEXT NOT NULL,
		exported_at  DATETIME NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating listings table: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// SaveSnapshot replaces the stored listings with listings in a single
// transaction and returns the number of rows written. position keeps the
// aggregated order.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, listings []model.Listing) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM listings"); err != nil {
		return 0, fmt.Errorf("clearing listings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO listings
		(dedup_key, position, company, title, location, link, date_display, posted_at, salary, job_type, source, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	exportedAt := s.now().UTC()
	written := 0
	for i, l := range listings {
		var postedAt any
		if l.DatePosted.Known() {
			postedAt = l.DatePosted.Instant.UTC()
		}
		res, err := stmt.ExecContext(ctx,
			merge.Key(l), i, l.Company, l.Title, l.Location, l.Link,
			l.DatePosted.Display, postedAt, l.Salary, string(l.JobType), string(l.Source), exportedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting listing %s at %s: %w", l.Title, l.Company, err)
		}
		n, _ := res.RowsAffected()
		written += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing snapshot: %w", err)
	}
	return written, nil
}

// Count returns the number of stored listings.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting listings: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

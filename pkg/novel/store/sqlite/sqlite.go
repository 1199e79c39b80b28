package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/novelstat/pkg/novel/store"
)

// timeLayout keeps a fixed width so fetched_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	// Pragmas in the DSN apply to every pooled connection, not just the
	// one that happens to run a PRAGMA statement.
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS texts (
	id TEXT PRIMARY KEY,
	url TEXT UNIQUE NOT NULL,
	fetched_at TEXT NOT NULL,
	digest TEXT NOT NULL,
	line_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS text_lines (
	text_id TEXT NOT NULL,
	line_no INTEGER NOT NULL,
	content TEXT NOT NULL,
	PRIMARY KEY(text_id, line_no),
	FOREIGN KEY(text_id) REFERENCES texts(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// PutText inserts or replaces a text and all of its lines
func (s *sqliteStore) PutText(ctx context.Context, t store.Text) error {
	if t.URL == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// a URL maps to one text; replacing it drops the old lines via cascade
	if _, err := tx.ExecContext(ctx, `DELETE FROM texts WHERE url=?`, t.URL); err != nil {
		return err
	}

	const stmt = `
INSERT INTO texts (id, url, fetched_at, digest, line_count)
VALUES (?, ?, ?, ?, ?);
`
	_, err = tx.ExecContext(
		ctx,
		stmt,
		t.ID,
		t.URL,
		t.FetchedAt.UTC().Format(timeLayout),
		t.Digest,
		len(t.Lines),
	)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, t.ID, t.Lines); err != nil {
		return err
	}

	return tx.Commit()
}

func insertLines(ctx context.Context, tx *sql.Tx, textID string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO text_lines (text_id, line_no, content) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, line := range lines {
		if _, err := stmt.ExecContext(ctx, textID, i, line); err != nil {
			return err
		}
	}
	return nil
}

// GetText returns a cached text by URL
func (s *sqliteStore) GetText(ctx context.Context, url string) (store.Text, bool, error) {
	var (
		t         store.Text
		fetchedAt string
		lineCount int
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, url, fetched_at, digest, line_count FROM texts WHERE url=?`,
		url,
	).Scan(&t.ID, &t.URL, &fetchedAt, &t.Digest, &lineCount)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Text{}, false, nil
	}
	if err != nil {
		return store.Text{}, false, err
	}

	t.FetchedAt, err = time.Parse(timeLayout, fetchedAt)
	if err != nil {
		return store.Text{}, false, fmt.Errorf("parse fetched_at for %s: %w", url, err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT content FROM text_lines WHERE text_id=? ORDER BY line_no`, t.ID)
	if err != nil {
		return store.Text{}, false, err
	}
	defer rows.Close()

	t.Lines = make([]string, 0, lineCount)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return store.Text{}, false, err
		}
		t.Lines = append(t.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return store.Text{}, false, err
	}

	return t, true, nil
}

// DeleteText removes a cached text by URL
func (s *sqliteStore) DeleteText(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM texts WHERE url=?`, url)
	return err
}

// ListTexts returns metadata for every cached text, oldest first
func (s *sqliteStore) ListTexts(ctx context.Context) ([]store.TextInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, url, fetched_at, digest, line_count FROM texts ORDER BY fetched_at, url`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.TextInfo
	for rows.Next() {
		var (
			info      store.TextInfo
			fetchedAt string
		)
		if err := rows.Scan(&info.ID, &info.URL, &fetchedAt, &info.Digest, &info.LineCount); err != nil {
			return nil, err
		}
		info.FetchedAt, err = time.Parse(timeLayout, fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("parse fetched_at for %s: %w", info.URL, err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

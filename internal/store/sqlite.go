package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLiteSession is the local-file Session backend.
type SQLiteSession struct {
	db     *sql.DB
	table  string
	header []string
}

func OpenSQLite(path string) (*SQLiteSession, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteSession{db: db}, nil
}

func (s *SQLiteSession) GetOrCreateTable(ctx context.Context, name string, header []string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  added_at TEXT NOT NULL,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL,
  languages TEXT NOT NULL,
  link TEXT NOT NULL,
  posted TEXT NOT NULL,
  source TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_%s_link ON %s(link);
`, name, name, name))
	if err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	s.table = name
	s.header = header
	return nil
}

func (s *SQLiteSession) ReadAllRows(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
SELECT added_at, title, company, location, languages, link, posted, source
FROM %s
ORDER BY id;`, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := [][]string{s.header}
	for rows.Next() {
		r := make([]string, len(Header))
		if err := rows.Scan(&r[0], &r[1], &r[2], &r[3], &r[4], &r[5], &r[6], &r[7]); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteSession) AppendRows(ctx context.Context, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt := fmt.Sprintf(`
INSERT INTO %s (added_at, title, company, location, languages, link, posted, source)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`, s.table)

	for _, row := range rows {
		padded := make([]any, len(Header))
		for i := range padded {
			if i < len(row) {
				padded[i] = row[i]
			} else {
				padded[i] = ""
			}
		}
		if _, err := tx.ExecContext(ctx, stmt, padded...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteSession) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

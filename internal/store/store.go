// Package store keeps tracker records and the extraction request log in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "modernc.org/sqlite"
)

// pragmas are set on every pooled connection through the DSN, so
// busy_timeout holds for all of them and not just the first.
var pragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"synchronous(NORMAL)",
	"foreign_keys(1)",
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open connects to the database file at path (or any modernc DSN), creates
// missing tables and seeds the sequence counter.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s, err := initStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func initStore(db *sql.DB) (*Store, error) {
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := migrate(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, seq: seq}, nil
}

func withPragmas(dsn string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}

// DB exposes the handle for ad-hoc queries in tests and tools.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) SnapshotRepo() SnapshotRepo {
	return &snapshotRepo{db: s.db, seq: s.seq}
}

func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// Records is the typed repository for tracker state and settings.
func (s *Store) Records() *RecordRepo {
	return NewRecordRepo(s.SnapshotRepo())
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// DataDir is $XDG_DATA_HOME/pyqtrack, or ~/.local/share/pyqtrack.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "pyqtrack"), nil
}

// DefaultDBPath is $PYQTRACK_DB when set, else pyqtrack.db under DataDir.
// Its parent directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("PYQTRACK_DB")
	if p == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "pyqtrack.db")
	}
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

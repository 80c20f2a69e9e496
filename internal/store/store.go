package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Table names.
const (
	tableKV            = "kv"
	tableSessionEvents = "session_events"
	tableAnswerEvents  = "answer_events"
)

// Store owns the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

// Open connects to the SQLite database at dsn, applies pragmas and
// creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps in-memory databases and transactions simple
	// for a single-user app.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	ctx := context.Background()
	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(ctx, drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, drv)
	if err != nil {
		drv.Close()
		return nil, err
	}

	return &Store{db: db, drv: drv, seq: seq, now: time.Now}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// KVRepo returns a KVRepo backed by this store.
func (s *Store) KVRepo() KVRepo {
	return &kvRepo{drv: s.drv, now: s.now}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{drv: s.drv, seq: s.seq, now: s.now}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, drv dialect.ExecQuerier) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS ` + tableKV + ` (
			name TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tableSessionEvents + ` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			node_id INTEGER NOT NULL,
			language TEXT NOT NULL,
			action TEXT NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			hearts INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			points INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tableAnswerEvents + ` (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sequence INTEGER NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			session_id TEXT NOT NULL,
			node_id INTEGER NOT NULL,
			step INTEGER NOT NULL,
			kind TEXT NOT NULL,
			correct BOOLEAN NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			points INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, q := range tables {
		if err := drv.Exec(ctx, q, []any{}, nil); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS session_events_session ON session_events (session_id)",
		"CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)",
	}
	for _, q := range indexes {
		if err := drv.Exec(ctx, q, []any{}, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RHEO_DB environment variable
// 2. $XDG_DATA_HOME/rheo/rheo.db
// 3. ~/.local/share/rheo/rheo.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RHEO_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "rheo", "rheo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

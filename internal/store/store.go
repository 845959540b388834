// Package store is the persistence bridge: an opaque key-value blob store
// backed by SQLite, plus the codec that round-trips application state
// through it.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// StateKey is the fixed key the application state lives under.
const StateKey = "app-state"

// Store wraps the SQL database connection behind a key-value contract:
// Put(key, blob) and Get(key). Writes are last-write-wins; the writer column
// records which session wrote last, for inspection only.
type Store struct {
	db      *sql.DB
	session string
}

// DefaultDataDir returns the default data directory path.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tikkit"
	}
	return filepath.Join(home, ".local", "share", "tikkit")
}

// DefaultDBPath returns the default database file path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "tikkit.db")
}

// Open opens the database, creating the directory and running migrations as
// needed.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: sqlDB, session: uuid.New().String()}

	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate runs database migrations using embedded SQL files.
func (s *Store) migrate() error {
	// Silence goose logging (it corrupts TUI output).
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Put writes a blob under key, replacing any previous value.
func (s *Store) Put(key string, blob []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, writer, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			writer = excluded.writer,
			updated_at = excluded.updated_at
	`, key, blob, s.session, time.Now())
	return err
}

// Get reads the blob stored under key. The second return is false when the
// key has never been written.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

// Session returns the writer id recorded with this process's writes.
func (s *Store) Session() string {
	return s.session
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

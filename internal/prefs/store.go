// Package prefs persists small reader preferences between runs.
//
// It implements the Store interface using SQLite with WAL mode. The
// SQLStore struct is the primary entry point; the schema is embedded
// and applied on open, so a fresh preferences file needs no setup.
package prefs

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// Well-known settings keys.
const (
	// KeyLocale is the reading locale chosen with the locale toggle.
	KeyLocale = "locale"
	// KeyChapter is the key of the chapter that was open on exit.
	KeyChapter = "chapter"
)

// ReadingEntry is one row of the chapter-open history.
type ReadingEntry struct {
	ChapterKey string
	Locale     string
	OpenedAt   int64
}

// Store defines the preferences persistence contract. The abstraction
// allows a no-op implementation when the preferences file cannot be
// opened, so a broken prefs path degrades to session-only settings.
type Store interface {
	// Get returns the value for key, or "" when the key is unset.
	Get(key string) (string, error)
	// Set writes key to value, replacing any prior value.
	Set(key, value string) error
	// LogReading appends a chapter open to the reading history.
	LogReading(chapterKey, locale string) error
	// RecentReadings returns the newest history entries, newest first.
	RecentReadings(limit int) ([]ReadingEntry, error)
	// Close releases the underlying file.
	Close() error
}

// SQLStore implements Store over a SQLite file. Access is serialized
// with a mutex; the TUI reads at startup and writes on the handful of
// keys a session touches, so contention is not a concern.
type SQLStore struct {
	db *sql.DB
	mu sync.Mutex

	stmtGet *sql.Stmt
	stmtSet *sql.Stmt
	stmtLog *sql.Stmt
}

// Open creates or opens the preferences database at path and applies
// the embedded schema. Use ":memory:" for tests.
func Open(path string) (*SQLStore, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening preferences at %s: %w", path, err)
	}

	// SQLite supports one writer; a single connection avoids lock errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLStore{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing preferences schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

func (s *SQLStore) prepareStatements() error {
	var err error

	s.stmtGet, err = s.db.Prepare(`SELECT value FROM settings WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("preparing Get: %w", err)
	}

	s.stmtSet, err = s.db.Prepare(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing Set: %w", err)
	}

	s.stmtLog, err = s.db.Prepare(`
		INSERT INTO reading_log (chapter_key, locale, opened_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing LogReading: %w", err)
	}
	return nil
}

// Get returns the stored value for key, or "" when unset.
func (s *SQLStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.stmtGet.QueryRow(key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, nil
}

// Set upserts key to value.
func (s *SQLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stmtSet.Exec(key, value, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// LogReading appends one chapter open to the history.
func (s *SQLStore) LogReading(chapterKey, locale string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stmtLog.Exec(chapterKey, locale, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("logging reading of %s: %w", chapterKey, err)
	}
	return nil
}

// RecentReadings returns up to limit history entries, newest first.
func (s *SQLStore) RecentReadings(limit int) ([]ReadingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT chapter_key, locale, opened_at
		FROM reading_log
		ORDER BY opened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reading log: %w", err)
	}
	defer rows.Close()

	var entries []ReadingEntry
	for rows.Next() {
		var e ReadingEntry
		if err := rows.Scan(&e.ChapterKey, &e.Locale, &e.OpenedAt); err != nil {
			return nil, fmt.Errorf("scanning reading log row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the prepared statements and the connection.
func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtGet, s.stmtSet, s.stmtLog} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

// NopStore satisfies Store while persisting nothing. It stands in when
// the preferences file cannot be opened.
type NopStore struct{}

func (NopStore) Get(string) (string, error)              { return "", nil }
func (NopStore) Set(string, string) error                { return nil }
func (NopStore) LogReading(string, string) error         { return nil }
func (NopStore) RecentReadings(int) ([]ReadingEntry, error) { return nil, nil }
func (NopStore) Close() error                            { return nil }

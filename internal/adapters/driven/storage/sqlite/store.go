package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.GraphStore = (*Store)(nil)

// sectionNames lists every snapshot section in storage order. A load
// that finds no sections at all reports domain.ErrNotFound.
var sectionNames = []string{
	"documents", "chunks", "entities", "topics",
	"timeline", "terms", "relations", "concepts",
}

// Store persists graph snapshots in SQLite, one row per snapshot
// section. Saves are transactional: a reader never sees a half-written
// snapshot.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.scholia/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scholia", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveSnapshot writes the full snapshot in a single transaction,
// replacing whatever was stored before.
func (s *Store) SaveSnapshot(ctx context.Context, snap *domain.GraphSnapshot) error {
	if snap == nil {
		return domain.ErrInvalidInput
	}

	sections := map[string]any{
		"documents": snap.Documents,
		"chunks":    snap.Chunks,
		"entities":  snap.Entities,
		"topics":    snap.Topics,
		"timeline":  snap.Timeline,
		"terms":     snap.Terms,
		"relations": snap.Relations,
		"concepts":  snap.Concepts,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_sections (name, data, saved_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			saved_at = excluded.saved_at
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, name := range sectionNames {
		data, err := json.Marshal(sections[name])
		if err != nil {
			return fmt.Errorf("marshalling section %s: %w", name, err)
		}
		if _, err := stmt.ExecContext(ctx, name, string(data)); err != nil {
			return fmt.Errorf("saving section %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LoadSnapshot reads the stored snapshot. Returns domain.ErrNotFound
// when nothing has been saved yet.
func (s *Store) LoadSnapshot(ctx context.Context) (*domain.GraphSnapshot, error) {
	snap := &domain.GraphSnapshot{}
	targets := map[string]any{
		"documents": &snap.Documents,
		"chunks":    &snap.Chunks,
		"entities":  &snap.Entities,
		"topics":    &snap.Topics,
		"timeline":  &snap.Timeline,
		"terms":     &snap.Terms,
		"relations": &snap.Relations,
		"concepts":  &snap.Concepts,
	}

	found := 0
	for _, name := range sectionNames {
		var data string
		err := s.db.QueryRowContext(ctx,
			"SELECT data FROM snapshot_sections WHERE name = ?", name).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading section %s: %w", name, err)
		}

		if err := json.Unmarshal([]byte(data), targets[name]); err != nil {
			return nil, fmt.Errorf("unmarshalling section %s: %w", name, err)
		}
		found++
	}

	if found == 0 {
		return nil, domain.ErrNotFound
	}
	return snap, nil
}

// Reset deletes all persisted state.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM snapshot_sections"); err != nil {
		return fmt.Errorf("resetting store: %w", err)
	}
	return nil
}

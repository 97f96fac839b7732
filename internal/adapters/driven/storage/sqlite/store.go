package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	sqlitedriver "modernc.org/sqlite"

	"github.com/custodia-labs/inscript/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/inscript/internal/core/domain"
	"github.com/custodia-labs/inscript/internal/core/ports/driven"
)

// DBFileName is the database file name inside the data directory.
const DBFileName = "notes.db"

// foldFunc is the SQL function that lowercases text the same way strings.ToLower
// does. SQLite's own lower() only folds ASCII.
const foldFunc = "inscript_fold"

func init() {
	sqlitedriver.MustRegisterDeterministicScalarFunction(foldFunc, 1, fold)
}

func fold(_ *sqlitedriver.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Store is a SQLite-backed note database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.inscript/data/notes.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".inscript", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL lets the CLI write while the TUI is reading.
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

// Dir returns the directory holding the database files.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// NoteStore returns a NoteStore interface backed by this store.
func (s *Store) NoteStore() driven.NoteStore {
	return &noteStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
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
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}
	return tx.Commit()
}

// schemaVersion returns the highest applied migration version.
func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// ==================== Note Store ====================

// noteStore implements driven.NoteStore.
type noteStore struct {
	store *Store
}

var _ driven.NoteStore = (*noteStore)(nil)

// Search returns notes whose title or content contains query, in creation order.
// Matching is case-insensitive.
func (s *noteStore) Search(ctx context.Context, query string) ([]domain.Note, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, content FROM notes
		WHERE ? = ''
		   OR instr(`+foldFunc+`(title), ?) > 0
		   OR instr(`+foldFunc+`(content), ?) > 0
		ORDER BY seq
	`, needle, needle, needle)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var note domain.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return notes, nil
}

// Add inserts a new note with a generated UUID.
func (s *noteStore) Add(ctx context.Context, draft domain.NoteDraft) (domain.Note, error) {
	note := draft.Note(uuid.New().String())

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, content) VALUES (?, ?, ?)
	`, note.ID, note.Title, note.Content)
	if err != nil {
		return domain.Note{}, fmt.Errorf("inserting note: %w", err)
	}

	return note, nil
}

// Update replaces the title and content of an existing note.
func (s *noteStore) Update(ctx context.Context, note domain.Note) (domain.Note, error) {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE notes SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, note.Title, note.Content, note.ID)
	if err != nil {
		return domain.Note{}, fmt.Errorf("updating note: %w", err)
	}

	if err := requireAffected(result); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

// Delete removes a note by ID.
func (s *noteStore) Delete(ctx context.Context, note domain.Note) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", note.ID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return requireAffected(result)
}

// Get retrieves a note by ID.
func (s *noteStore) Get(ctx context.Context, id string) (domain.Note, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, content FROM notes WHERE id = ?
	`, id)

	return scanNote(row)
}

// scanNote scans a single note row.
func scanNote(row *sql.Row) (domain.Note, error) {
	var note domain.Note
	if err := row.Scan(&note.ID, &note.Title, &note.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Note{}, domain.ErrNotFound
		}
		return domain.Note{}, fmt.Errorf("scanning note: %w", err)
	}
	return note, nil
}

// requireAffected maps a statement that touched no rows to ErrNotFound.
func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

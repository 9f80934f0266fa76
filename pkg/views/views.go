// Package views persists named viewer states. Each saved view stores the
// serialized query-parameter form of a state, so loading a view goes
// through the same decode path as opening a shared link.
package views

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// View is one saved viewer state.
type View struct {
	Name      string
	Params    url.Values
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a SQLite-backed saved-view store.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the saved-view database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating views directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open views database: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS views (
			name       TEXT PRIMARY KEY,
			params     TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating views schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Save stores a view under name, replacing any previous view with the
// same name. The original creation time survives replacement.
func (s *Store) Save(name string, params url.Values) error {
	if name == "" {
		return fmt.Errorf("view name must not be empty")
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO views (name, params, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			params = excluded.params,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, name, params.Encode(), now, now); err != nil {
		return fmt.Errorf("saving view %q: %w", name, err)
	}
	return nil
}

// Get retrieves a saved view by name.
func (s *Store) Get(name string) (*View, error) {
	var (
		encoded              string
		createdAt, updatedAt time.Time
	)
	query := `SELECT params, created_at, updated_at FROM views WHERE name = ?`
	err := s.db.QueryRow(query, name).Scan(&encoded, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("view not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading view %q: %w", name, err)
	}

	params, err := url.ParseQuery(encoded)
	if err != nil {
		return nil, fmt.Errorf("view %q holds malformed parameters: %w", name, err)
	}

	return &View{
		Name:      name,
		Params:    params,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// List returns all saved views, most recently updated first. The Params
// of listed views are parsed the same way Get parses them; views with
// malformed parameters are skipped.
func (s *Store) List() ([]View, error) {
	query := `SELECT name, params, created_at, updated_at FROM views ORDER BY updated_at DESC`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing views: %w", err)
	}
	defer rows.Close()

	var views []View
	for rows.Next() {
		var (
			v       View
			encoded string
		)
		if err := rows.Scan(&v.Name, &encoded, &v.CreatedAt, &v.UpdatedAt); err != nil {
			continue
		}
		params, err := url.ParseQuery(encoded)
		if err != nil {
			continue
		}
		v.Params = params
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating views: %w", err)
	}
	return views, nil
}

// Delete removes a saved view. Deleting an unknown name is an error.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM views WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting view %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting view %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("view not found: %s", name)
	}
	return nil
}

// Count returns the number of saved views.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM views`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Package recents keeps the list of recently opened documents in a
// SQLite database under the config directory.
package recents

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/monight/internal/migrations"
)

// Entry is one recently opened document
type Entry struct {
	ID         int64
	Path       string
	Title      string
	Pages      int
	LastPage   int
	OpenCount  int
	LastOpened time.Time
}

// Manager provides access to the recents database
type Manager struct {
	db *sql.DB
}

// NewManager opens (and if needed creates) the recents database
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create recents directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open recents database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to recents database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// RecordOpen records that a document was opened. A path seen before keeps
// its row: the open count goes up and the timestamp moves forward.
func (m *Manager) RecordOpen(path, title string, pages int) error {
	if path == "" {
		return nil
	}

	timestampStr := time.Now().Local().Format("2006-01-02 15:04:05")

	query := `
		INSERT INTO recents (path, title, pages, last_opened)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			pages = excluded.pages,
			open_count = open_count + 1,
			last_opened = excluded.last_opened
	`

	if _, err := m.db.Exec(query, path, title, pages, timestampStr); err != nil {
		return fmt.Errorf("failed to record recent file: %w", err)
	}
	return nil
}

// SetLastPage remembers the page a document was on when its tab closed,
// so reopening can resume there
func (m *Manager) SetLastPage(path string, page int) error {
	if path == "" || page < 1 {
		return nil
	}

	_, err := m.db.Exec("UPDATE recents SET last_page = ? WHERE path = ?", page, path)
	if err != nil {
		return fmt.Errorf("failed to update last page: %w", err)
	}
	return nil
}

// LastPage returns the remembered page for a path, or 1 when the path is
// unknown
func (m *Manager) LastPage(path string) int {
	var page int
	err := m.db.QueryRow("SELECT last_page FROM recents WHERE path = ?", path).Scan(&page)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// List returns the most recently opened documents, newest first. A limit
// of 0 or less means no limit.
func (m *Manager) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, path, title, pages, last_page, open_count, last_opened
		FROM recents
		ORDER BY last_opened DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := m.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent files: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry

	for rows.Next() {
		var e Entry
		var timestamp string

		if err := rows.Scan(&e.ID, &e.Path, &e.Title, &e.Pages, &e.LastPage, &e.OpenCount, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan recents entry: %w", err)
		}

		parsed, err := time.ParseInLocation("2006-01-02 15:04:05", timestamp, time.Local)
		if err != nil {
			parsed, err = time.Parse(time.RFC3339, timestamp)
			if err != nil {
				parsed = time.Now()
			}
		}
		e.LastOpened = parsed

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Filter narrows a recents list to entries fuzzy-matching the query on
// title or path. An empty query returns the list unchanged.
func Filter(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}

	haystack := make([]string, len(entries))
	for i, e := range entries {
		haystack[i] = e.Title + " " + e.Path
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]Entry, 0, len(matches))
	for _, match := range matches {
		out = append(out, entries[match.Index])
	}
	return out
}

// Remove drops one path from the list, typically when a recorded file no
// longer exists on disk
func (m *Manager) Remove(path string) error {
	if _, err := m.db.Exec("DELETE FROM recents WHERE path = ?", path); err != nil {
		return fmt.Errorf("failed to remove recents entry: %w", err)
	}
	return nil
}

// Clear drops the whole list
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM recents"); err != nil {
		return fmt.Errorf("failed to clear recents: %w", err)
	}
	return nil
}

// Count returns the number of recorded documents
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM recents").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recents: %w", err)
	}
	return count, nil
}

// Close closes the database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

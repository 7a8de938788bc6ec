package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// DBFileName is the SQLite database inside the history directory.
const DBFileName = "history.db"

// SQLiteStore persists history in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewSQLiteStore creates (or opens) dir/history.db.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	path := filepath.Join(dir, DBFileName)
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path, now: time.Now}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		timestamp TEXT,
		model TEXT,
		prompt TEXT,
		response TEXT,
		files_json TEXT,
		search_json TEXT
	);`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Add inserts a new entry.
func (s *SQLiteStore) Add(n domain.NewHistoryEntry) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return domain.HistoryEntry{}, err
	}
	var lookupErr error
	entry := materialize(n, s.now(), count, func(id string) bool {
		var exists int
		err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE id = ?", id).Scan(&exists)
		if err != nil {
			lookupErr = err
			return false
		}
		return exists > 0
	})
	if lookupErr != nil {
		return domain.HistoryEntry{}, lookupErr
	}

	files, err := json.Marshal(entry.Files)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	results, err := json.Marshal(entry.WebSearchResults)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	_, err = s.db.Exec(`INSERT INTO entries
		(id, timestamp, model, prompt, response, files_json, search_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Model, entry.Prompt, entry.Response, string(files), string(results),
	)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// Get looks an entry up by ID.
func (s *SQLiteStore) Get(id string) (domain.HistoryEntry, bool, error) {
	entries, err := s.query("WHERE id = ?", id)
	if err != nil || len(entries) == 0 {
		return domain.HistoryEntry{}, false, err
	}
	return entries[0], true, nil
}

// All returns every entry in insertion order.
func (s *SQLiteStore) All() ([]domain.HistoryEntry, error) {
	return s.query("")
}

// Search matches prompt or response case-insensitively.
func (s *SQLiteStore) Search(query string) ([]domain.HistoryEntry, error) {
	entries, err := s.All()
	if err != nil {
		return nil, err
	}
	return searchEntries(entries, query), nil
}

// FilterByModel returns entries produced by model.
func (s *SQLiteStore) FilterByModel(model string) ([]domain.HistoryEntry, error) {
	return s.query("WHERE model = ?", model)
}

// FilterByDate returns entries whose timestamp falls in [start, end].
func (s *SQLiteStore) FilterByDate(start, end string) ([]domain.HistoryEntry, error) {
	entries, err := s.All()
	if err != nil {
		return nil, err
	}
	return filterByDate(entries, start, end), nil
}

// Delete removes the entry with id.
func (s *SQLiteStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM entries")
	return err
}

// Stats summarizes the log.
func (s *SQLiteStore) Stats() (domain.HistoryStats, error) {
	entries, err := s.All()
	if err != nil {
		return domain.HistoryStats{}, err
	}
	return computeStats(entries), nil
}

func (s *SQLiteStore) query(where string, args ...interface{}) ([]domain.HistoryEntry, error) {
	rows, err := s.db.Query("SELECT id, timestamp, model, prompt, response, files_json, search_json FROM entries "+where+" ORDER BY seq", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var entry domain.HistoryEntry
		var files, results string
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Model, &entry.Prompt, &entry.Response, &files, &results); err != nil {
			return nil, err
		}
		entry.Files = []string{}
		entry.WebSearchResults = []domain.SearchResult{}
		if err := json.Unmarshal([]byte(files), &entry.Files); err != nil {
			return nil, fmt.Errorf("decode history row %s files: %w", entry.ID, err)
		}
		if err := json.Unmarshal([]byte(results), &entry.WebSearchResults); err != nil {
			return nil, fmt.Errorf("decode history row %s search results: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)

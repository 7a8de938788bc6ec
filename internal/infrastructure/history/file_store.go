// Package history persists completed research exchanges.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/filesystem"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// FileName is the JSON history file inside the history directory.
const FileName = "history.json"

// FileStore keeps history as one indented JSON array. The file is re-read on
// every call so edits made by other processes are visible.
type FileStore struct {
	path   string
	mu     sync.Mutex
	now    func() time.Time
	logger ports.Logger
}

// NewFileStore creates a store at dir/history.json.
func NewFileStore(dir string, logger ports.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, FileName),
		now:    time.Now,
		logger: logger,
	}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Add appends a new entry and returns it with its assigned ID.
func (f *FileStore) Add(n domain.NewHistoryEntry) (domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.reload()
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry := materialize(n, f.now(), len(entries), func(id string) bool {
		return indexOf(entries, id) >= 0
	})
	entries = append(entries, entry)
	if err := f.save(entries); err != nil {
		return domain.HistoryEntry{}, err
	}
	return entry, nil
}

// Get looks an entry up by ID.
func (f *FileStore) Get(id string) (domain.HistoryEntry, bool, error) {
	entries, err := f.snapshot()
	if err != nil {
		return domain.HistoryEntry{}, false, err
	}
	if i := indexOf(entries, id); i >= 0 {
		return entries[i], true, nil
	}
	return domain.HistoryEntry{}, false, nil
}

// All returns every entry in insertion order.
func (f *FileStore) All() ([]domain.HistoryEntry, error) {
	return f.snapshot()
}

// Search matches prompt or response case-insensitively.
func (f *FileStore) Search(query string) ([]domain.HistoryEntry, error) {
	entries, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	return searchEntries(entries, query), nil
}

// FilterByModel returns entries produced by model.
func (f *FileStore) FilterByModel(model string) ([]domain.HistoryEntry, error) {
	entries, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	return filterByModel(entries, model), nil
}

// FilterByDate returns entries whose timestamp falls in [start, end].
func (f *FileStore) FilterByDate(start, end string) ([]domain.HistoryEntry, error) {
	entries, err := f.snapshot()
	if err != nil {
		return nil, err
	}
	return filterByDate(entries, start, end), nil
}

// Delete removes the entry with id. It reports false without touching the
// file when no entry matches.
func (f *FileStore) Delete(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.reload()
	if err != nil {
		return false, err
	}
	i := indexOf(entries, id)
	if i < 0 {
		return false, nil
	}
	entries = append(entries[:i], entries[i+1:]...)
	if err := f.save(entries); err != nil {
		return false, err
	}
	return true, nil
}

// Clear empties the log.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save([]domain.HistoryEntry{})
}

// Stats summarizes the log.
func (f *FileStore) Stats() (domain.HistoryStats, error) {
	entries, err := f.snapshot()
	if err != nil {
		return domain.HistoryStats{}, err
	}
	return computeStats(entries), nil
}

func (f *FileStore) snapshot() ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reload()
}

// reload reads the file. A corrupt file is logged and treated as empty.
func (f *FileStore) reload() ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		if f.logger != nil {
			f.logger.Warn("history file is corrupt; starting empty", map[string]interface{}{
				"path":  f.path,
				"error": err.Error(),
			})
		}
		return []domain.HistoryEntry{}, nil
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return entries, nil
}

func (f *FileStore) save(entries []domain.HistoryEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := filesystem.AtomicWrite(f.path, data, domain.PublicFilePermissions); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func indexOf(entries []domain.HistoryEntry, id string) int {
	for i, entry := range entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

var _ ports.HistoryRepository = (*FileStore)(nil)

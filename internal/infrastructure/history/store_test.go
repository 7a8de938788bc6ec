package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/logger"
	"github.com/tinlera/tinlera-go/internal/ports"
)

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2024, 3, 5, 14, 30, 15, 123456000, time.Local)

type backend struct {
	name string
	open func(t *testing.T) ports.HistoryRepository
}

func backends() []backend {
	return []backend{
		{
			name: "json",
			open: func(t *testing.T) ports.HistoryRepository {
				store := NewFileStore(t.TempDir(), logger.NewNop())
				store.now = fixedClock(testNow)
				return store
			},
		},
		{
			name: "sqlite",
			open: func(t *testing.T) ports.HistoryRepository {
				store, err := NewSQLiteStore(t.TempDir())
				if err != nil {
					t.Fatalf("NewSQLiteStore: %v", err)
				}
				t.Cleanup(func() { store.Close() })
				store.now = fixedClock(testNow)
				return store
			},
		},
	}
}

func sampleEntry(model, prompt, response string, files ...string) domain.NewHistoryEntry {
	return domain.NewHistoryEntry{
		Model:    model,
		Prompt:   prompt,
		Response: response,
		Files:    files,
		WebSearchResults: []domain.SearchResult{
			{Title: "T", URL: "https://t.example", Snippet: "S"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			if _, err := store.Add(sampleEntry("m1", "first", "r1")); err != nil {
				t.Fatalf("Add: %v", err)
			}
			written, err := store.Add(sampleEntry("m2", "second", "r2", "/tmp/a.txt"))
			if err != nil {
				t.Fatalf("Add: %v", err)
			}

			all, err := store.All()
			if err != nil {
				t.Fatalf("All: %v", err)
			}
			if len(all) != 2 {
				t.Fatalf("len = %d, want 2", len(all))
			}
			if diff := cmp.Diff(written, all[len(all)-1]); diff != "" {
				t.Errorf("last entry mismatch (-want +got):\n%s", diff)
			}

			if written.ID != "20240305143015_1" {
				t.Errorf("ID = %q, want 20240305143015_1", written.ID)
			}
			if written.Timestamp != "2024-03-05T14:30:15.123456" {
				t.Errorf("Timestamp = %q", written.Timestamp)
			}

			got, ok, err := store.Get(written.ID)
			if err != nil || !ok {
				t.Fatalf("Get = %v, %v", ok, err)
			}
			if diff := cmp.Diff(written, got); diff != "" {
				t.Errorf("Get mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNilSlicesStoredEmpty(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			entry, err := store.Add(domain.NewHistoryEntry{Model: "m", Prompt: "p", Response: "r"})
			if err != nil {
				t.Fatal(err)
			}
			got, _, _ := store.Get(entry.ID)
			if got.Files == nil || got.WebSearchResults == nil {
				t.Errorf("expected empty slices, got %+v", got)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			a, _ := store.Add(sampleEntry("m", "a", "ra"))
			c, _ := store.Add(sampleEntry("m", "c", "rc"))

			removed, err := store.Delete("does-not-exist")
			if err != nil || removed {
				t.Fatalf("Delete(absent) = %v, %v", removed, err)
			}
			all, _ := store.All()
			if len(all) != 2 {
				t.Fatalf("absent delete mutated log: %d entries", len(all))
			}

			removed, err = store.Delete(a.ID)
			if err != nil || !removed {
				t.Fatalf("Delete(%s) = %v, %v", a.ID, removed, err)
			}
			all, _ = store.All()
			if len(all) != 1 || all[0].ID != c.ID {
				t.Errorf("after delete: %+v", all)
			}
		})
	}
}

func TestIDsStayUniqueAfterDelete(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			first, _ := store.Add(sampleEntry("m", "1", "r"))
			second, _ := store.Add(sampleEntry("m", "2", "r"))
			if _, err := store.Delete(first.ID); err != nil {
				t.Fatal(err)
			}
			// Length is back to 1, which second already carries as its ordinal.
			third, err := store.Add(sampleEntry("m", "3", "r"))
			if err != nil {
				t.Fatal(err)
			}
			if third.ID == second.ID {
				t.Fatalf("duplicate ID %s", third.ID)
			}
			if third.ID != "20240305143015_2" {
				t.Errorf("ID = %q, want bumped ordinal _2", third.ID)
			}
		})
	}
}

func TestQueries(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.open(t)
			_, _ = store.Add(sampleEntry("llama", "Explain Go channels", "They synchronize goroutines", "a.go"))
			_, _ = store.Add(sampleEntry("gemma", "Weather today", "Sunny with CHANNEL islands breeze", "b.txt", "c.pdf"))
			_, _ = store.Add(sampleEntry("llama", "Recipe", "Bake it"))

			hits, err := store.Search("channel")
			if err != nil {
				t.Fatal(err)
			}
			if len(hits) != 2 {
				t.Errorf("Search hits = %d, want 2", len(hits))
			}

			byModel, _ := store.FilterByModel("llama")
			if len(byModel) != 2 {
				t.Errorf("FilterByModel = %d, want 2", len(byModel))
			}
			if none, _ := store.FilterByModel("LLAMA"); len(none) != 0 {
				t.Errorf("FilterByModel must be exact, got %d", len(none))
			}

			stats, err := store.Stats()
			if err != nil {
				t.Fatal(err)
			}
			want := domain.HistoryStats{TotalEntries: 3, ModelsUsed: []string{"gemma", "llama"}, TotalFiles: 3}
			if diff := cmp.Diff(want, stats); diff != "" {
				t.Errorf("Stats mismatch (-want +got):\n%s", diff)
			}

			if err := store.Clear(); err != nil {
				t.Fatal(err)
			}
			all, _ := store.All()
			if len(all) != 0 {
				t.Errorf("Clear left %d entries", len(all))
			}
			stats, _ = store.Stats()
			if stats.TotalEntries != 0 || len(stats.ModelsUsed) != 0 {
				t.Errorf("empty stats = %+v", stats)
			}
		})
	}
}

func TestFilterByDate(t *testing.T) {
	entries := []domain.HistoryEntry{
		{ID: "a", Timestamp: "2024-01-01T10:00:00.000000"},
		{ID: "b", Timestamp: "2024-02-01T10:00:00.000000"},
		{ID: "c", Timestamp: ""},
		{ID: "d", Timestamp: "2024-03-01T10:00:00.000000"},
	}
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{name: "open", want: []string{"a", "b", "d"}},
		{name: "start only", start: "2024-02-01", want: []string{"b", "d"}},
		{name: "end only", end: "2024-02-01T10:00:00.000000", want: []string{"a", "b"}},
		{name: "inclusive both", start: "2024-01-01T10:00:00.000000", end: "2024-02-01T10:00:00.000000", want: []string{"a", "b"}},
		{name: "empty range", start: "2025", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, e := range filterByDate(entries, tt.start, tt.end) {
				got = append(got, e.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(dir, logger.NewNop())
	all, err := store.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("len = %d, want 0", len(all))
	}
	if _, err := store.Add(sampleEntry("m", "p", "r")); err != nil {
		t.Fatalf("Add after corrupt: %v", err)
	}
}

func TestSQLiteStoreCorruptRowIsAnError(t *testing.T) {
	tests := []struct {
		name   string
		column string
	}{
		{name: "files", column: "files_json"},
		{name: "search results", column: "search_json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewSQLiteStore(t.TempDir())
			if err != nil {
				t.Fatalf("NewSQLiteStore: %v", err)
			}
			defer store.Close()
			entry, err := store.Add(sampleEntry("m", "p", "r", "a.txt"))
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if _, err := store.db.Exec("UPDATE entries SET "+tt.column+" = '{broken' WHERE id = ?", entry.ID); err != nil {
				t.Fatal(err)
			}

			got, ok, err := store.Get(entry.ID)
			if err == nil {
				t.Fatalf("Get = %+v, %v; want decode error", got, ok)
			}
			if !strings.Contains(err.Error(), entry.ID) {
				t.Errorf("error %q does not name row %s", err, entry.ID)
			}
			if _, err := store.All(); err == nil {
				t.Error("All: want decode error")
			}
		})
	}
}

func TestFileStoreSeesExternalEdits(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, logger.NewNop())
	external := `[{"id":"x_0","timestamp":"2024-01-01T00:00:00.000000","model":"m","prompt":"p","response":"r","files":[],"web_search_results":[]}]`
	if err := os.WriteFile(store.Path(), []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}
	got, ok, err := store.Get("x_0")
	if err != nil || !ok || got.Prompt != "p" {
		t.Errorf("Get = %+v, %v, %v", got, ok, err)
	}

	data, _ := os.ReadFile(store.Path())
	if !strings.HasPrefix(string(data), "[") {
		t.Errorf("history file is not a JSON array: %q", data)
	}
}

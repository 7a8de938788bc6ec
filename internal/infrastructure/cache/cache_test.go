package cache

import (
	"context"
	"testing"
	"time"

	"github.com/tinlera/tinlera-go/internal/domain"
	"github.com/tinlera/tinlera-go/internal/pkg/logger"
)

func TestFileCacheTTL(t *testing.T) {
	c := NewFileCache(t.TempDir(), domain.CacheSettings{TTL: "1h", MaxEntries: 10})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	entry := domain.CacheEntry{Key: "k", Query: "llama", Models: []domain.ModelDescriptor{{ID: "org/m"}}}
	if err := c.Set(entry); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if len(got.Models) != 1 || got.Models[0].ID != "org/m" {
		t.Errorf("models = %+v", got.Models)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := c.Get("k"); ok {
		t.Error("expired entry returned")
	}
}

func TestFileCacheEviction(t *testing.T) {
	c := NewFileCache(t.TempDir(), domain.CacheSettings{TTL: "1h", MaxEntries: 2})
	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(domain.CacheEntry{Key: key}); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %d, want 2", len(entries))
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if entries, _ := c.Entries(); len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
}

type countingHub struct {
	calls  int
	models []domain.ModelDescriptor
}

func (h *countingHub) SearchModels(context.Context, string, string) ([]domain.ModelDescriptor, error) {
	h.calls++
	return h.models, nil
}

func (h *countingHub) GetModelInfo(context.Context, string) (*domain.ModelDescriptor, error) {
	return nil, nil
}

func TestCachedHub(t *testing.T) {
	inner := &countingHub{models: []domain.ModelDescriptor{{ID: "org/a"}}}
	hub := NewCachedHub(inner, NewFileCache(t.TempDir(), domain.CacheSettings{}), logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		models, err := hub.SearchModels(ctx, "llama", "text-generation")
		if err != nil || len(models) != 1 {
			t.Fatalf("SearchModels = %v, %v", models, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	if _, err := hub.SearchModels(ctx, "llama", ""); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("different task should miss; calls = %d", inner.calls)
	}
}

func TestCachedHubSkipsEmptyResults(t *testing.T) {
	inner := &countingHub{}
	hub := NewCachedHub(inner, NewFileCache(t.TempDir(), domain.CacheSettings{}), nil)
	for i := 0; i < 2; i++ {
		_, _ = hub.SearchModels(context.Background(), "nothing", "")
	}
	if inner.calls != 2 {
		t.Errorf("empty results were cached; calls = %d", inner.calls)
	}
}

func TestKeyDistinguishesQueryAndTask(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("keys collide across the query/task boundary")
	}
	if Key(" llama ", "") != Key("llama", "") {
		t.Error("keys should ignore surrounding whitespace")
	}
}

package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestAtomicWriteCreatesDirAndContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "file.json")

	if err := AtomicWrite(path, []byte(`{"a":1}`), 0o600); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("content mismatch: got %q", string(data))
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("mode = %o, want 600", info.Mode().Perm())
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temp file left behind: %d entries", len(entries))
	}
}

func TestAtomicWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := AtomicWrite(path, []byte("one"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := AtomicWrite(path, []byte("two"), 0o644); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Errorf("got %q, want %q", string(data), "two")
	}
}

func TestResolveUnder(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "relative", base: "/base", path: "data/history", want: "/base/data/history"},
		{name: "absolute", base: "/base", path: "/abs/x", want: "/abs/x"},
		{name: "empty", base: "/base", path: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveUnder(tt.base, tt.path); got != filepath.FromSlash(tt.want) {
				t.Errorf("ResolveUnder(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}

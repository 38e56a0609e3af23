package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/husham35/AirBnB-clone/internal/storage/jsonfile"
)

func TestBackend_StoreThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	b := jsonfile.New(path)
	ctx := context.Background()

	in := map[string]map[string]any{
		"User.1": {"__class__": "User", "id": "1", "my_number": 98},
	}
	if err := b.Store(ctx, in); err != nil {
		t.Fatalf("store: %v", err)
	}
	out, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	n, ok := out["User.1"]["my_number"].(json.Number)
	if !ok || n.String() != "98" {
		t.Fatalf("numbers should decode as json.Number, got %#v", out["User.1"]["my_number"])
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestBackend_EmptyStoreWritesObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.json")
	if err := jsonfile.New(path).Store(context.Background(), nil); err != nil {
		t.Fatalf("store: %v", err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "{}" {
		t.Fatalf("expected {}, got %s", b)
	}
}

func TestBackend_LoadEmptyAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	empty := filepath.Join(dir, "empty.json")
	_ = os.WriteFile(empty, nil, 0o644)
	if out, err := jsonfile.New(empty).Load(ctx); err != nil || len(out) != 0 {
		t.Fatalf("empty file: %v %v", out, err)
	}

	bad := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(bad, []byte("{not json"), 0o644)
	if _, err := jsonfile.New(bad).Load(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestNew_DefaultPath(t *testing.T) {
	if got := jsonfile.New("").Path(); got != jsonfile.DefaultPath {
		t.Fatalf("default path: %q", got)
	}
}

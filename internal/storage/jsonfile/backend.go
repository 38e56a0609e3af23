// Package jsonfile keeps the object set in a single JSON document.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is where the object set lives unless configured otherwise.
const DefaultPath = "file.json"

type Backend struct{ path string }

func New(path string) *Backend {
	if path == "" {
		path = DefaultPath
	}
	return &Backend{path: path}
}

func (b *Backend) Name() string { return "file" }
func (b *Backend) Path() string { return b.path }
func (b *Backend) Close() error { return nil }

// Load reads the document. A missing or empty file is an empty set.
func (b *Backend) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	var out map[string]map[string]any
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]map[string]any{}, nil
		}
		return nil, fmt.Errorf("decode %s: %w", b.path, err)
	}
	if out == nil {
		out = map[string]map[string]any{}
	}
	return out, nil
}

// Store replaces the document atomically: write a sibling temp file, then rename.
func (b *Backend) Store(ctx context.Context, objects map[string]map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if objects == nil {
		objects = map[string]map[string]any{}
	}
	data, err := json.Marshal(objects)
	if err != nil {
		return fmt.Errorf("encode objects: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), "."+filepath.Base(b.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.path)
}

package domain

import (
	"context"
	"sync"
)

// Storage is what a model needs to persist itself.
type Storage interface {
	New(m Model)
	// Refresh moves UpdatedAt of m forward and registers it, atomically with
	// respect to readers of the store.
	Refresh(m Model)
	Save(ctx context.Context) error
}

// ObjectStore is the full registry used by the app layer. Stored models are
// shared, so they are only read or written inside View, Scan and Update.
type ObjectStore interface {
	Storage
	View(key string, fn func(Model)) bool
	Scan(class string, fn func(Model))
	Delete(key string) bool
	Update(key string, fn func(Model) error) (map[string]any, error)
	Count(class string) int
	Reload(ctx context.Context) error
}

// RemoteSource lists serialized objects of one class from another HBnB instance.
type RemoteSource interface {
	ListObjects(ctx context.Context, class string) ([]map[string]any, error)
}

var (
	bindMu  sync.RWMutex
	current Storage
)

// Bind sets the process-wide storage used by constructors and Save.
// Passing nil unbinds it.
func Bind(s Storage) {
	bindMu.Lock()
	defer bindMu.Unlock()
	current = s
}

// Bound returns the process-wide storage, or nil.
func Bound() Storage {
	bindMu.RLock()
	defer bindMu.RUnlock()
	return current
}

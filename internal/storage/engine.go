// Package storage holds the process-wide object registry and mirrors it to a
// pluggable backend.
package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/husham35/AirBnB-clone/internal/adapters/observability"
	"github.com/husham35/AirBnB-clone/internal/domain"
)

// Backend persists the serialized object set as a whole.
type Backend interface {
	Name() string
	Load(ctx context.Context) (map[string]map[string]any, error)
	Store(ctx context.Context, objects map[string]map[string]any) error
	Close() error
}

// Engine is the in-memory registry keyed by "<Class>.<id>".
type Engine struct {
	mu      sync.RWMutex
	objects map[string]domain.Model
	backend Backend

	// saveMu orders snapshots with backend writes.
	saveMu sync.Mutex
}

var _ domain.ObjectStore = (*Engine)(nil)

func NewEngine(b Backend) *Engine {
	return &Engine{objects: map[string]domain.Model{}, backend: b}
}

// BackendName names the backend, for logs and metrics.
func (e *Engine) BackendName() string { return e.backend.Name() }

func (e *Engine) New(m domain.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.objects[domain.KeyOf(m)] = m
}

// Refresh moves UpdatedAt of m forward and registers it, under the write lock.
func (e *Engine) Refresh(m domain.Model) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m.Base().Touch()
	e.objects[domain.KeyOf(m)] = m
}

// Get returns the stored model. The model is shared with the engine: outside
// single-goroutine use, read it through View or Scan instead.
func (e *Engine) Get(key string) (domain.Model, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.objects[key]
	return m, ok
}

// View runs fn on the object under the read lock.
func (e *Engine) View(key string, fn func(domain.Model)) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.objects[key]
	if ok {
		fn(m)
	}
	return ok
}

// Scan runs fn on every object of class, in key order, under the read lock.
// An empty class scans everything.
func (e *Engine) Scan(class string, fn func(domain.Model)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := lo.Keys(e.objects)
	if class != "" {
		prefix := class + "."
		keys = lo.Filter(keys, func(k string, _ int) bool { return strings.HasPrefix(k, prefix) })
	}
	slices.Sort(keys)
	for _, k := range keys {
		fn(e.objects[k])
	}
}

func (e *Engine) Delete(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.objects[key]; !ok {
		return false
	}
	delete(e.objects, key)
	return true
}

// Update runs fn on the object under the write lock and returns its
// serialized form taken under the same lock. A failing fn leaves UpdatedAt
// untouched; otherwise it is refreshed.
func (e *Engine) Update(key string, fn func(domain.Model) error) (map[string]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	m, ok := e.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	m.Base().Touch()
	return m.ToMap(), nil
}

// Count counts objects of class; an empty class counts everything.
func (e *Engine) Count(class string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if class == "" {
		return len(e.objects)
	}
	prefix := class + "."
	return lo.CountBy(lo.Keys(e.objects), func(k string) bool { return strings.HasPrefix(k, prefix) })
}

// Save writes every object to the backend.
func (e *Engine) Save(ctx context.Context) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	start := time.Now()
	e.mu.RLock()
	snapshot := make(map[string]map[string]any, len(e.objects))
	for k, m := range e.objects {
		snapshot[k] = m.ToMap()
	}
	e.mu.RUnlock()

	err := e.backend.Store(ctx, snapshot)
	observability.ObserveStorage(e.backend.Name(), "save", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s store: %w", e.backend.Name(), err)
	}
	observability.SetStoredObjects(e.backend.Name(), len(snapshot))
	log.Debug().Str("backend", e.backend.Name()).Int("objects", len(snapshot)).Dur("took", time.Since(start)).Msg("storage_saved")
	return nil
}

// Reload replaces the registry with the backend contents. Entries that do not
// decode are skipped and logged.
func (e *Engine) Reload(ctx context.Context) error {
	start := time.Now()
	raw, err := e.backend.Load(ctx)
	observability.ObserveStorage(e.backend.Name(), "reload", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("%s load: %w", e.backend.Name(), err)
	}

	loaded := make(map[string]domain.Model, len(raw))
	for key, attrs := range raw {
		m, err := domain.Decode(attrs)
		if err != nil {
			log.Warn().Str("key", key).Err(err).Msg("skipping undecodable object")
			continue
		}
		if k := domain.KeyOf(m); k != key {
			log.Warn().Str("key", key).Str("decoded", k).Msg("object key does not match its class and id")
			key = k
		}
		loaded[key] = m
	}

	e.mu.Lock()
	e.objects = loaded
	e.mu.Unlock()
	observability.SetStoredObjects(e.backend.Name(), len(loaded))
	log.Debug().Str("backend", e.backend.Name()).Int("objects", len(loaded)).Msg("storage_reloaded")
	return nil
}

func (e *Engine) Close() error { return e.backend.Close() }

package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/husham35/AirBnB-clone/internal/domain"
)

// ObjectService is the CRUD surface shared by the console, the HTTP API and
// the importer. Every mutation is persisted before it returns. Objects leave
// the service as serialized maps or descriptions taken under the store lock,
// never as shared models.
type ObjectService struct {
	store domain.ObjectStore
}

func NewObjectService(s domain.ObjectStore) *ObjectService {
	return &ObjectService{store: s}
}

func (s *ObjectService) Create(ctx context.Context, class string, attrs map[string]any) (map[string]any, error) {
	if err := checkClass(class); err != nil {
		return nil, err
	}
	clean, err := prepareAttrs(class, attrs)
	if err != nil {
		return nil, err
	}
	m, err := domain.DecodeAs(class, clean)
	if err != nil {
		return nil, err
	}
	// serialize before the model becomes visible to other goroutines
	out := m.ToMap()
	key := domain.KeyOf(m)
	s.store.New(m)
	if err := s.store.Save(ctx); err != nil {
		s.store.Delete(key)
		return nil, err
	}
	log.Debug().Str("key", key).Msg("object_created")
	return out, nil
}

// Get returns the serialized object.
func (s *ObjectService) Get(ctx context.Context, class, id string) (map[string]any, error) {
	var out map[string]any
	err := s.view(class, id, func(m domain.Model) { out = m.ToMap() })
	return out, err
}

// Describe returns the "[Class] (id) attrs" form of the object.
func (s *ObjectService) Describe(ctx context.Context, class, id string) (string, error) {
	var out string
	err := s.view(class, id, func(m domain.Model) { out = m.String() })
	return out, err
}

func (s *ObjectService) view(class, id string, fn func(domain.Model)) error {
	if err := checkClass(class); err != nil {
		return err
	}
	if !s.store.View(domain.Key(class, id), fn) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, domain.Key(class, id))
	}
	return nil
}

// List returns serialized objects of class sorted by key; an empty class
// lists all.
func (s *ObjectService) List(ctx context.Context, class string) ([]map[string]any, error) {
	out := []map[string]any{}
	err := s.scan(class, func(m domain.Model) { out = append(out, m.ToMap()) })
	return out, err
}

// DescribeAll is List in the "[Class] (id) attrs" form.
func (s *ObjectService) DescribeAll(ctx context.Context, class string) ([]string, error) {
	out := []string{}
	err := s.scan(class, func(m domain.Model) { out = append(out, m.String()) })
	return out, err
}

func (s *ObjectService) scan(class string, fn func(domain.Model)) error {
	if class != "" {
		if err := checkClass(class); err != nil {
			return err
		}
	}
	s.store.Scan(class, fn)
	return nil
}

// Update assigns attrs onto an existing object and returns its new
// serialized form. Identity and lifecycle keys in attrs are ignored.
func (s *ObjectService) Update(ctx context.Context, class, id string, attrs map[string]any) (map[string]any, error) {
	if err := checkClass(class); err != nil {
		return nil, err
	}
	clean, err := prepareAttrs(class, attrs)
	if err != nil {
		return nil, err
	}
	out, err := s.store.Update(domain.Key(class, id), func(m domain.Model) error {
		return assignAll(m, clean)
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ObjectService) Delete(ctx context.Context, class, id string) error {
	if err := checkClass(class); err != nil {
		return err
	}
	key := domain.Key(class, id)
	if !s.store.Delete(key) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, key)
	}
	return s.store.Save(ctx)
}

// Count counts objects of class; an empty class counts everything.
func (s *ObjectService) Count(ctx context.Context, class string) (int, error) {
	if class != "" {
		if err := checkClass(class); err != nil {
			return 0, err
		}
	}
	return s.store.Count(class), nil
}

// Stats counts objects per registered class.
func (s *ObjectService) Stats(ctx context.Context) map[string]int {
	out := make(map[string]int, len(domain.Classes()))
	for _, c := range domain.Classes() {
		out[c] = s.store.Count(c)
	}
	return out
}

// Import registers serialized objects as they are, keeping ids and
// timestamps, then saves once. Objects that fail to decode are skipped.
func (s *ObjectService) Import(ctx context.Context, objects []map[string]any) (int, error) {
	n := 0
	for _, attrs := range objects {
		m, err := domain.Decode(attrs)
		if err != nil {
			log.Warn().Err(err).Interface("id", attrs["id"]).Msg("import skipped object")
			continue
		}
		s.store.New(m)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.store.Save(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

// Reload discards in-memory state and reads the backend again.
func (s *ObjectService) Reload(ctx context.Context) error { return s.store.Reload(ctx) }

package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Model is implemented by every persisted entity.
type Model interface {
	ClassName() string
	Base() *BaseModel
	ToMap() map[string]any
	Save(ctx context.Context) error
	fmt.Stringer
}

// BaseModel carries the identity and lifecycle fields shared by all models,
// plus the instance attribute values. Declared attributes that were never set
// fall back to their zero value and are not serialized.
type BaseModel struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	attrs map[string]any
}

func newBase() BaseModel {
	t := now()
	return BaseModel{
		ID:        uuid.NewString(),
		CreatedAt: t,
		UpdatedAt: t,
		attrs:     map[string]any{},
	}
}

func (b *BaseModel) Base() *BaseModel { return b }

// Touch moves UpdatedAt forward; it never stays put or goes back.
func (b *BaseModel) Touch() {
	t := now()
	if !t.After(b.UpdatedAt) {
		t = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = t
}

// Attr returns the instance value of key.
func (b *BaseModel) Attr(key string) (any, bool) {
	v, ok := b.attrs[key]
	return v, ok
}

// Attrs returns a copy of the instance attributes, without id or timestamps.
func (b *BaseModel) Attrs() map[string]any {
	out := make(map[string]any, len(b.attrs))
	for k, v := range b.attrs {
		out[k] = clone(v)
	}
	return out
}

func (b *BaseModel) set(key string, v any) {
	if b.attrs == nil {
		b.attrs = map[string]any{}
	}
	b.attrs[key] = v
}

func (b *BaseModel) str(key string) string {
	s, _ := b.attrs[key].(string)
	return s
}

func (b *BaseModel) integer(key string) int {
	n, _ := b.attrs[key].(int)
	return n
}

func (b *BaseModel) float(key string) float64 {
	f, _ := b.attrs[key].(float64)
	return f
}

func (b *BaseModel) strs(key string) []string {
	s, _ := b.attrs[key].([]string)
	return append([]string(nil), s...)
}

func (b *BaseModel) toMap(class string) map[string]any {
	out := make(map[string]any, len(b.attrs)+4)
	for k, v := range b.attrs {
		out[k] = clone(v)
	}
	out["id"] = b.ID
	out["created_at"] = FormatTime(b.CreatedAt)
	out["updated_at"] = FormatTime(b.UpdatedAt)
	out["__class__"] = class
	return out
}

func (b *BaseModel) describe(class string) string {
	inst := make(map[string]any, len(b.attrs)+3)
	for k, v := range b.attrs {
		inst[k] = v
	}
	inst["id"] = b.ID
	inst["created_at"] = b.CreatedAt
	inst["updated_at"] = b.UpdatedAt
	return fmt.Sprintf("[%s] (%s) %v", class, b.ID, inst)
}

func clone(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...)
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = clone(it)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, it := range t {
			out[k] = clone(it)
		}
		return out
	case time.Time:
		return FormatTime(t)
	}
	return v
}

// register adds a freshly constructed model to the bound storage, if any.
func register(m Model) Model {
	if s := Bound(); s != nil {
		s.New(m)
	}
	return m
}

func save(ctx context.Context, m Model) error {
	s := Bound()
	if s == nil {
		return ErrNoStorage
	}
	s.Refresh(m)
	if err := s.Save(ctx); err != nil {
		return fmt.Errorf("save %s: %w", KeyOf(m), err)
	}
	return nil
}

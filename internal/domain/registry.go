package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

type classInfo struct {
	fields Schema
	wrap   func(BaseModel) Model
}

var classes = map[string]classInfo{
	UserClass: {
		fields: Schema{"email": KindString, "password": KindString, "first_name": KindString, "last_name": KindString},
		wrap:   func(b BaseModel) Model { return &User{BaseModel: b} },
	},
	StateClass: {
		fields: Schema{"name": KindString},
		wrap:   func(b BaseModel) Model { return &State{BaseModel: b} },
	},
	CityClass: {
		fields: Schema{"state_id": KindString, "name": KindString},
		wrap:   func(b BaseModel) Model { return &City{BaseModel: b} },
	},
	AmenityClass: {
		fields: Schema{"name": KindString},
		wrap:   func(b BaseModel) Model { return &Amenity{BaseModel: b} },
	},
	PlaceClass: {
		fields: Schema{
			"city_id": KindString, "user_id": KindString, "name": KindString, "description": KindString,
			"number_rooms": KindInt, "number_bathrooms": KindInt, "max_guest": KindInt, "price_by_night": KindInt,
			"latitude": KindFloat, "longitude": KindFloat,
			"amenity_ids": KindStrings,
		},
		wrap: func(b BaseModel) Model { return &Place{BaseModel: b} },
	},
	ReviewClass: {
		fields: Schema{"place_id": KindString, "user_id": KindString, "text": KindString},
		wrap:   func(b BaseModel) Model { return &Review{BaseModel: b} },
	},
}

// Classes lists registered class names, sorted.
func Classes() []string {
	names := lo.Keys(classes)
	slices.Sort(names)
	return names
}

// IsClass reports whether name is a registered class.
func IsClass(name string) bool {
	_, ok := classes[name]
	return ok
}

// Fields returns a copy of the declared attributes of class.
func Fields(class string) (Schema, error) {
	info, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	out := make(Schema, len(info.fields))
	for k, v := range info.fields {
		out[k] = v
	}
	return out, nil
}

// New builds an empty instance of class and registers it like the typed
// constructors do.
func New(class string) (Model, error) {
	info, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	return register(info.wrap(newBase())), nil
}

// Decode builds a model from its serialized map; "__class__" picks the type.
func Decode(attrs map[string]any) (Model, error) {
	raw, ok := attrs["__class__"]
	if !ok {
		return nil, invalid("__class__", "missing")
	}
	class, ok := raw.(string)
	if !ok {
		return nil, invalid("__class__", "expected string, got %T", raw)
	}
	return DecodeAs(class, attrs)
}

// DecodeAs builds a class instance from keyword attributes. Timestamps may be
// ISO-8601 strings or time.Time values; missing id and timestamps are
// generated. The result is not registered with the bound storage.
func DecodeAs(class string, attrs map[string]any) (Model, error) {
	info, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	if c, ok := attrs["__class__"]; ok && c != class {
		return nil, invalid("__class__", "%v does not match %s", c, class)
	}

	b := newBase()
	var hasCreated, hasUpdated bool
	keys := lo.Keys(attrs)
	slices.Sort(keys)
	for _, k := range keys {
		v := attrs[k]
		switch k {
		case "__class__":
		case "id":
			id, err := parseID(v)
			if err != nil {
				return nil, err
			}
			b.ID = id
		case "created_at":
			t, err := parseTimeValue(k, v)
			if err != nil {
				return nil, err
			}
			b.CreatedAt, hasCreated = t, true
		case "updated_at":
			t, err := parseTimeValue(k, v)
			if err != nil {
				return nil, err
			}
			b.UpdatedAt, hasUpdated = t, true
		default:
			val, err := info.value(k, v)
			if err != nil {
				return nil, err
			}
			b.attrs[k] = val
		}
	}
	switch {
	case hasCreated && !hasUpdated:
		b.UpdatedAt = b.CreatedAt
	case hasUpdated && !hasCreated:
		b.CreatedAt = b.UpdatedAt
	}
	if b.UpdatedAt.Before(b.CreatedAt) {
		return nil, invalid("updated_at", "precedes created_at")
	}
	return info.wrap(b), nil
}

// Assign sets one attribute on m after validating it against the class schema.
// Identity and lifecycle fields cannot be assigned.
func Assign(m Model, key string, v any) error {
	if IsProtected(key) {
		return invalid(key, "is read-only")
	}
	if strings.TrimSpace(key) == "" {
		return invalid("attribute", "name is empty")
	}
	info, ok := classes[m.ClassName()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, m.ClassName())
	}
	val, err := info.value(key, v)
	if err != nil {
		return err
	}
	m.Base().set(key, val)
	return nil
}

// Check validates attrs against the class schema without applying them.
func Check(class string, attrs map[string]any) error {
	info, ok := classes[class]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	keys := lo.Keys(attrs)
	slices.Sort(keys)
	for _, k := range keys {
		if IsProtected(k) {
			return invalid(k, "is read-only")
		}
		if strings.TrimSpace(k) == "" {
			return invalid("attribute", "name is empty")
		}
		if _, err := info.value(k, attrs[k]); err != nil {
			return err
		}
	}
	return nil
}

// Cast converts raw console text into the value stored for key on class.
// Declared attributes use their kind; others become int, float or string.
func Cast(class, key, raw string) (any, error) {
	info, ok := classes[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	}
	kind, declared := info.fields[key]
	if !declared {
		return inferValue(raw), nil
	}
	v, ok := kind.cast(raw)
	if !ok {
		return nil, invalid(key, "cannot read %q as %s", raw, kind)
	}
	return v, nil
}

// IsProtected reports keys managed by the model itself.
func IsProtected(key string) bool {
	switch key {
	case "id", "created_at", "updated_at", "__class__":
		return true
	}
	return false
}

// Key is the storage key "<Class>.<id>".
func Key(class, id string) string { return class + "." + id }

// KeyOf is Key for an existing model.
func KeyOf(m Model) string { return Key(m.ClassName(), m.Base().ID) }

// SplitKey is the inverse of Key.
func SplitKey(key string) (class, id string, ok bool) {
	return strings.Cut(key, ".")
}

func (c classInfo) value(key string, v any) (any, error) {
	if kind, ok := c.fields[key]; ok {
		return kind.coerce(key, v)
	}
	return normalize(v), nil
}

func parseID(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", invalid("id", "must not be null")
	case string:
		if strings.TrimSpace(t) == "" {
			return "", invalid("id", "must not be empty")
		}
		return t, nil
	}
	return "", invalid("id", "expected string, got %T", v)
}

package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the declared type of a model attribute.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindStrings
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStrings:
		return "list of strings"
	}
	return "unknown"
}

// Schema maps attribute names to their declared kind.
type Schema map[string]Kind

// coerce converts v to the Go type backing k.
func (k Kind) coerce(field string, v any) (any, error) {
	if v == nil {
		return nil, invalid(field, "must not be null")
	}
	switch k {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case KindInt:
		if n, ok := toInt(v); ok {
			return n, nil
		}
	case KindFloat:
		if f, ok := toFloat(v); ok {
			return f, nil
		}
	case KindStrings:
		switch t := v.(type) {
		case []string:
			return append([]string{}, t...), nil
		case []any:
			out := make([]string, 0, len(t))
			for _, it := range t {
				s, ok := it.(string)
				if !ok {
					return nil, invalid(field, "expected %s, found element %T", k, it)
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return nil, invalid(field, "expected %s, got %T", k, v)
}

// cast parses console input for an attribute of kind k.
func (k Kind) cast(raw string) (any, bool) {
	switch k {
	case KindString:
		return raw, true
	case KindInt:
		if n, err := strconv.Atoi(raw); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return floatToInt(f)
		}
	case KindFloat:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f, true
		}
	case KindStrings:
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return out, true
		}
		parts := strings.Split(raw, ",")
		out = make([]string, 0, len(parts))
		for _, p := range parts {
			if t := strings.TrimSpace(p); t != "" {
				out = append(out, t)
			}
		}
		return out, true
	}
	return nil, false
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
	}
	return 0, false
}

// floatToInt accepts only whole values that fit in an int.
// float64(math.MaxInt) rounds up to 2^63, hence the strict upper bound.
func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) || f < float64(math.MinInt) || f >= float64(math.MaxInt) {
		return 0, false
	}
	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// normalize turns decoder output for undeclared attributes into plain Go values.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case []any:
		out := make([]any, len(t))
		for i, it := range t {
			out[i] = normalize(it)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, it := range t {
			out[k] = normalize(it)
		}
		return out
	case []string:
		return append([]string{}, t...)
	}
	return v
}

// inferValue guesses a type for console input on undeclared attributes.
func inferValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

package domain

import (
	"fmt"
	"time"
)

// TimeFormat is the ISO-8601 layout used in serialized models.
const TimeFormat = "2006-01-02T15:04:05.000000"

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999",
	time.RFC3339Nano,
}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// FormatTime renders t in TimeFormat (UTC).
func FormatTime(t time.Time) string { return t.UTC().Format(TimeFormat) }

// ParseTime accepts TimeFormat with or without the fraction, or RFC 3339.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseTimeValue(field string, v any) (time.Time, error) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, invalid(field, "must not be null")
	case time.Time:
		return t.UTC().Truncate(time.Microsecond), nil
	case string:
		ts, err := ParseTime(t)
		if err != nil {
			return time.Time{}, invalid(field, "%v", err)
		}
		return ts, nil
	default:
		return time.Time{}, invalid(field, "expected ISO-8601 string, got %T", v)
	}
}

package domain

import (
	"testing"
	"time"
)

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func TestTouch_StrictlyForwardOnFrozenClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	freezeNow(t, at)

	b := newBase()
	b.Touch()
	if want := at.Add(time.Microsecond); !b.UpdatedAt.Equal(want) {
		t.Fatalf("got %v, want %v", b.UpdatedAt, want)
	}
	b.Touch()
	if want := at.Add(2 * time.Microsecond); !b.UpdatedAt.Equal(want) {
		t.Fatalf("got %v, want %v", b.UpdatedAt, want)
	}
	if !b.CreatedAt.Equal(at) {
		t.Fatalf("created_at moved: %v", b.CreatedAt)
	}
}

func TestTouch_FollowsClock(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	freezeNow(t, at)
	b := newBase()

	later := at.Add(time.Hour)
	now = func() time.Time { return later }
	b.Touch()
	if !b.UpdatedAt.Equal(later) {
		t.Fatalf("got %v, want %v", b.UpdatedAt, later)
	}
}

func TestToMapClonesNestedValues(t *testing.T) {
	b := newBase()
	b.set("tags", []any{"a", map[string]any{"k": "v"}})

	m := b.toMap("Thing")
	m["tags"].([]any)[1].(map[string]any)["k"] = "changed"

	orig := b.attrs["tags"].([]any)[1].(map[string]any)["k"]
	if orig != "v" {
		t.Fatalf("internal attrs leaked through toMap: %v", orig)
	}
}

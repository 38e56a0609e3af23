package mysql

import (
	"testing"
	"time"
)

func TestRowArgs(t *testing.T) {
	args, err := rowArgs("Place.42", map[string]any{
		"__class__":  "Place",
		"id":         "42",
		"updated_at": "2024-05-06T07:08:09.123456",
	})
	if err != nil {
		t.Fatalf("rowArgs: %v", err)
	}
	if args[0] != "Place.42" || args[1] != "Place" || args[2] != "42" {
		t.Fatalf("unexpected key columns: %v", args[:3])
	}
	want := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)
	if got := args[4].(time.Time); !got.Equal(want) {
		t.Fatalf("updated_at: got %s want %s", got, want)
	}
}

func TestRowArgs_MalformedKey(t *testing.T) {
	if _, err := rowArgs("nodot", map[string]any{}); err == nil {
		t.Fatalf("expected error for key without class separator")
	}
}

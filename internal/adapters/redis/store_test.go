package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "github.com/husham35/AirBnB-clone/internal/adapters/redis"
	"github.com/husham35/AirBnB-clone/internal/domain"
	"github.com/husham35/AirBnB-clone/internal/storage"
)

func newStore(t *testing.T) (*redisad.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStore_ReplacesWholeSet(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	if err := s.Store(ctx, map[string]map[string]any{
		"User.1": {"__class__": "User", "id": "1"},
		"User.2": {"__class__": "User", "id": "2"},
	}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Store(ctx, map[string]map[string]any{
		"User.2": {"__class__": "User", "id": "2", "email": "b@x.io"},
	}); err != nil {
		t.Fatalf("store: %v", err)
	}

	keys, err := mr.HKeys(redisad.DefaultKey)
	if err != nil {
		t.Fatalf("hkeys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "User.2" {
		t.Fatalf("stale fields survived: %v", keys)
	}
	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out["User.2"]["email"] != "b@x.io" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestStore_LoadSkipsUndecodableFields(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	mr.HSet(redisad.DefaultKey, "User.1", `{"__class__":"User","id":"1"}`)
	mr.HSet(redisad.DefaultKey, "User.bad", "{not json")
	mr.HSet(redisad.DefaultKey, "User.null", "null")

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out["User.1"]["id"] != "1" {
		t.Fatalf("expected only the valid field, got %+v", out)
	}
}

func TestStore_EmptySetClearsHash(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()
	_ = s.Store(ctx, map[string]map[string]any{"State.1": {"__class__": "State", "id": "1"}})
	if err := s.Store(ctx, map[string]map[string]any{}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if mr.Exists(redisad.DefaultKey) {
		t.Fatalf("hash should be gone")
	}
}

func TestStore_BacksEngine(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	eng := storage.NewEngine(s)
	r, _ := domain.DecodeAs(domain.ReviewClass, map[string]any{"text": "cozy", "place_id": "p1"})
	eng.New(r)
	if err := eng.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	again := storage.NewEngine(s)
	if err := again.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := again.Get(domain.KeyOf(r))
	if !ok {
		t.Fatalf("missing %s after reload", domain.KeyOf(r))
	}
	if rv := got.(*domain.Review); rv.Text() != "cozy" || rv.PlaceID() != "p1" {
		t.Fatalf("unexpected review: %s", rv)
	}
}

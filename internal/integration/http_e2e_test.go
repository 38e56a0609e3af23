//go:build integration || !unit

package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	server "github.com/husham35/AirBnB-clone/internal/adapters/http_server"
	redisad "github.com/husham35/AirBnB-clone/internal/adapters/redis"
	"github.com/husham35/AirBnB-clone/internal/adapters/remote"
	"github.com/husham35/AirBnB-clone/internal/app"
	"github.com/husham35/AirBnB-clone/internal/domain"
	"github.com/husham35/AirBnB-clone/internal/storage"
	"github.com/husham35/AirBnB-clone/internal/storage/jsonfile"
)

// An API backed by a JSON file serves objects; the importer copies them into
// a Redis-backed engine, and a fresh engine reloads them from Redis.
func TestHTTP_EndToEnd_ImportIntoRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// source side
	src := storage.NewEngine(jsonfile.New(filepath.Join(t.TempDir(), "file.json")))
	srcSvc := app.NewObjectService(src)
	state, err := srcSvc.Create(ctx, "State", map[string]any{"name": "California"})
	if err != nil {
		t.Fatalf("create state: %v", err)
	}
	city, err := srcSvc.Create(ctx, "City", map[string]any{"name": "San Francisco", "state_id": state["id"]})
	if err != nil {
		t.Fatalf("create city: %v", err)
	}
	place, err := srcSvc.Create(ctx, "Place", map[string]any{"name": "Loft", "city_id": city["id"], "number_rooms": 2, "latitude": 37.77})
	if err != nil {
		t.Fatalf("create place: %v", err)
	}

	api := server.New(5 * time.Second)
	api.MountHandlers(&server.Handlers{Objects: srcSvc})
	ts := httptest.NewServer(api.Mux())
	defer ts.Close()

	// destination side
	mr := miniredis.RunT(t)
	dst := storage.NewEngine(redisad.New(mr.Addr(), "", 0, ""))
	defer dst.Close()

	client, err := remote.New(ts.URL, "", 50)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	imp := app.NewImportService(client, app.NewObjectService(dst))
	total := 0
	for _, class := range domain.Classes() {
		n, err := imp.ImportClass(ctx, class)
		if err != nil {
			t.Fatalf("import %s: %v", class, err)
		}
		total += n
	}
	if total != 3 {
		t.Fatalf("expected 3 imported objects, got %d", total)
	}

	// reload from redis into a fresh engine
	again := storage.NewEngine(redisad.New(mr.Addr(), "", 0, ""))
	defer again.Close()
	if err := again.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	key := domain.Key("Place", place["id"].(string))
	got, ok := again.Get(key)
	if !ok {
		t.Fatalf("place %s missing after reload", key)
	}
	p := got.(*domain.Place)
	if p.Name() != "Loft" || p.NumberRooms() != 2 || p.Latitude() != 37.77 || p.CityID() != city["id"] {
		t.Fatalf("unexpected place: %s", p)
	}
	if domain.FormatTime(p.CreatedAt) != place["created_at"] || domain.FormatTime(p.UpdatedAt) != place["updated_at"] {
		t.Fatalf("timestamps must survive the import: %v/%v vs %v/%v",
			p.CreatedAt, p.UpdatedAt, place["created_at"], place["updated_at"])
	}
}

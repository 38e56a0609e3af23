package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unsetenv clears k for the test and restores it afterwards.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetenv(t, "APP_ENV", "STORAGE_BACKEND", "HBNB_FILE_PATH", "IMPORT_CLASSES", "IMPORT_WORKERS", "REDIS_DB", "HTTP_TIMEOUT_SECONDS")

	c := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	if c.Backend != BackendFile || c.FilePath != "file.json" || c.AppEnv != "prod" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.HTTPTimeout != 15*time.Second || c.Workers != 4 || c.Classes != nil {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoad_EnvAndDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	dotenv := "STORAGE_BACKEND=redis\nREDIS_DB=3\nIMPORT_CLASSES=User, Place,,Review\n"
	if err := os.WriteFile(path, []byte(dotenv), 0o644); err != nil {
		t.Fatal(err)
	}
	unsetenv(t, "STORAGE_BACKEND", "IMPORT_CLASSES")
	t.Setenv("IMPORT_WORKERS", "0")
	t.Setenv("REDIS_DB", "7") // wins over .env

	c := LoadFile(path)
	if c.Backend != BackendRedis {
		t.Fatalf("backend %q", c.Backend)
	}
	if c.RedisDB != 7 {
		t.Fatalf("redis db %d", c.RedisDB)
	}
	if c.Workers != 1 {
		t.Fatalf("workers must be at least 1, got %d", c.Workers)
	}
	if len(c.Classes) != 3 || c.Classes[1] != "Place" {
		t.Fatalf("classes %v", c.Classes)
	}
}

func TestLoad_UnknownBackendFallsBack(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassandra")
	if c := LoadFile(filepath.Join(t.TempDir(), "missing.env")); c.Backend != BackendFile {
		t.Fatalf("backend %q", c.Backend)
	}
}

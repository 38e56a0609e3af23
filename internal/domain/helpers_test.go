package domain_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/husham35/AirBnB-clone/internal/domain"
	"github.com/husham35/AirBnB-clone/internal/storage"
	"github.com/husham35/AirBnB-clone/internal/storage/jsonfile"
)

// bindFileStorage binds a JSON file engine in a temp dir for the test.
func bindFileStorage(t *testing.T) (*storage.Engine, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.json")
	eng := storage.NewEngine(jsonfile.New(path))
	domain.Bind(eng)
	t.Cleanup(func() { domain.Bind(nil) })
	return eng, path
}

func readFile(t *testing.T, path string) map[string]map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

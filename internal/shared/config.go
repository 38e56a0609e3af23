package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/husham35/AirBnB-clone/internal/storage/jsonfile"
)

// Storage backends selectable with STORAGE_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	HTTPTimeout time.Duration

	Backend   string
	FilePath  string
	RedisAddr string
	RedisPass string
	RedisDB   int
	RedisKey  string
	MySQLDSN  string

	RemoteBase string
	RemoteKey  string
	RemoteRPS  int
	Workers    int
	Classes    []string
}

// Load reads the environment, after merging an optional .env file from the
// working directory.
func Load() Config { return LoadFile(".env") }

// LoadFile is Load with an explicit env file. Variables already set in the
// process win over the file.
func LoadFile(dotenv string) Config {
	loadDotEnv(dotenv)

	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		HTTPTimeout: time.Duration(atoi("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		Backend:     strings.ToLower(env("STORAGE_BACKEND", BackendFile)),
		FilePath:    env("HBNB_FILE_PATH", jsonfile.DefaultPath),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisKey:    env("REDIS_KEY", "hbnb:objects"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hbnb?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RemoteBase:  env("REMOTE_BASE_URL", ""),
		RemoteKey:   env("REMOTE_API_KEY", ""),
		RemoteRPS:   atoi("REMOTE_RPS", 5),
		Workers:     atoi("IMPORT_WORKERS", 4),
		Classes:     list("IMPORT_CLASSES"),
	}
	switch c.Backend {
	case BackendFile, BackendRedis, BackendMySQL:
	default:
		log.Warn().Str("backend", c.Backend).Msg("unknown STORAGE_BACKEND, using file")
		c.Backend = BackendFile
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Str("path", path).Msg("ignoring unreadable env file")
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

// list splits a comma-separated variable, dropping blanks.
func list(k string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(k), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package shared

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	redisad "github.com/husham35/AirBnB-clone/internal/adapters/redis"
	"github.com/husham35/AirBnB-clone/internal/storage"
	"github.com/husham35/AirBnB-clone/internal/storage/jsonfile"
	mysqlrepo "github.com/husham35/AirBnB-clone/internal/storage/mysql"
)

// OpenBackend connects the backend named by cfg.Backend.
func OpenBackend(ctx context.Context, cfg Config) (storage.Backend, error) {
	switch cfg.Backend {
	case BackendRedis:
		s := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisKey)
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Str("key", cfg.RedisKey).Msg("redis connection ok")
		return s, nil

	case BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		b := mysqlrepo.New(db)
		if err := b.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Msg("database connection ok")
		return b, nil
	}
	b := jsonfile.New(cfg.FilePath)
	log.Info().Str("path", b.Path()).Msg("using file storage")
	return b, nil
}

// OpenEngine opens the configured backend and loads every stored object.
func OpenEngine(ctx context.Context, cfg Config) (*storage.Engine, error) {
	b, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	eng := storage.NewEngine(b)
	if err := eng.Reload(ctx); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// DefaultKey is the hash holding the object set.
const DefaultKey = "hbnb:objects"

// Store keeps every object as one field of a Redis hash.
type Store struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *Store {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key)
}

func NewWithClient(c *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{c: c, key: key}
}

func (s *Store) Name() string { return "redis" }

func (s *Store) Ping(ctx context.Context) error { return s.c.Ping(ctx).Err() }

func (s *Store) Load(ctx context.Context) (map[string]map[string]any, error) {
	fields, err := s.c.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]any, len(fields))
	for field, raw := range fields {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		var attrs map[string]any
		if err := dec.Decode(&attrs); err != nil || attrs == nil {
			log.Warn().Str("key", field).Err(err).Msg("skipping undecodable object")
			continue
		}
		out[field] = attrs
	}
	return out, nil
}

// Store replaces the hash in one MULTI/EXEC.
func (s *Store) Store(ctx context.Context, objects map[string]map[string]any) error {
	values := make([]any, 0, len(objects)*2)
	for key, attrs := range objects {
		b, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		values = append(values, key, b)
	}
	pipe := s.c.TxPipeline()
	pipe.Del(ctx, s.key)
	if len(values) > 0 {
		pipe.HSet(ctx, s.key, values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Close() error { return s.c.Close() }

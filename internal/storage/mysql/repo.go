package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/husham35/AirBnB-clone/internal/domain"
)

// rows per statement; keeps placeholders well under the server limit
const batchSize = 500

// Backend stores one row per object.
type Backend struct{ db *sql.DB }

func New(db *sql.DB) *Backend { return &Backend{db: db} }

func (b *Backend) Name() string { return "mysql" }

func (b *Backend) Close() error { return b.db.Close() }

// Migrate creates the objects table if needed.
func (b *Backend) Migrate(ctx context.Context) error {
	_, err := b.db.ExecContext(ctx, createObjectsSQL)
	return err
}

func (b *Backend) Load(ctx context.Context) (map[string]map[string]any, error) {
	rows, err := b.db.QueryContext(ctx, selectObjectsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]map[string]any{}
	for rows.Next() {
		var key string
		var payload []byte
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, err
		}
		dec := json.NewDecoder(strings.NewReader(string(payload)))
		dec.UseNumber()
		var attrs map[string]any
		if err := dec.Decode(&attrs); err != nil || attrs == nil {
			log.Warn().Str("key", key).Err(err).Msg("skipping undecodable object")
			continue
		}
		out[key] = attrs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Store upserts every object and deletes rows no longer present, in one
// transaction.
func (b *Backend) Store(ctx context.Context, objects map[string]map[string]any) (err error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	existing, err := existingKeys(ctx, tx)
	if err != nil {
		return err
	}
	stale := lo.Filter(existing, func(k string, _ int) bool {
		_, keep := objects[k]
		return !keep
	})
	for _, chunk := range lo.Chunk(stale, batchSize) {
		args := lo.Map(chunk, func(k string, _ int) any { return k })
		q := deleteObjectsPrefix + "(" + strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",") + ")"
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("delete stale rows: %w", err)
		}
	}

	keys := lo.Keys(objects)
	for _, chunk := range lo.Chunk(keys, batchSize) {
		values := make([]string, 0, len(chunk))
		args := make([]any, 0, len(chunk)*5) // 5 params per row
		for _, key := range chunk {
			row, rerr := rowArgs(key, objects[key])
			if rerr != nil {
				return rerr
			}
			values = append(values, "(?,?,?,?,?)")
			args = append(args, row...)
		}
		q := upsertObjectsPrefix + strings.Join(values, ",") + upsertObjectsOnDup
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("upsert objects: %w", err)
		}
	}
	return tx.Commit()
}

func existingKeys(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, selectKeysSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// rowArgs returns (obj_key, class, id, payload, updated_at).
func rowArgs(key string, attrs map[string]any) ([]any, error) {
	class, id, ok := domain.SplitKey(key)
	if !ok {
		return nil, fmt.Errorf("malformed key %q", key)
	}
	payload, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	updated := time.Now().UTC()
	if s, ok := attrs["updated_at"].(string); ok {
		if t, err := domain.ParseTime(s); err == nil {
			updated = t
		}
	}
	return []any{key, class, id, string(payload), updated}, nil
}

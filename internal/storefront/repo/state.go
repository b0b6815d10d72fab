package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
	logx "github.com/vancy-storefront/server/pkg/logger"
)

// RedisStateRepository keeps each entry as a JSON string under
// "<prefix>:<entry>". Session entries expire after sessionTTL when it is set.
type RedisStateRepository struct {
	rdb        redis.Cmdable
	prefix     string
	sessionTTL time.Duration
}

func NewRedisStateRepository(rdb redis.Cmdable, prefix string, sessionTTL time.Duration) *RedisStateRepository {
	if prefix == "" {
		prefix = "vancy"
	}
	return &RedisStateRepository{rdb: rdb, prefix: prefix, sessionTTL: sessionTTL}
}

func (r *RedisStateRepository) key(entry model.Entry) string {
	return fmt.Sprintf("%s:%s", r.prefix, entry)
}

func (r *RedisStateRepository) ttl(entry model.Entry) time.Duration {
	if entry.IsSession() {
		return r.sessionTTL
	}
	return 0
}

func (r *RedisStateRepository) Load(ctx context.Context, entry model.Entry, dst any) (bool, error) {
	key := r.key(entry)

	b, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load state entry from redis")
		return false, errx.WrapRedis(err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to unmarshal state entry")
		return false, fmt.Errorf("unmarshal %s: %w", entry, err)
	}
	return true, nil
}

func (r *RedisStateRepository) Save(ctx context.Context, entry model.Entry, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		logx.Error().Err(err).Str("entry", string(entry)).Msg("failed to marshal state entry")
		return fmt.Errorf("marshal %s: %w", entry, err)
	}
	key := r.key(entry)
	if err := r.rdb.Set(ctx, key, b, r.ttl(entry)).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to save state entry to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// SaveAll writes every entry inside MULTI/EXEC.
func (r *RedisStateRepository) SaveAll(ctx context.Context, values map[model.Entry]any) error {
	payloads := make(map[model.Entry][]byte, len(values))
	for entry, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			logx.Error().Err(err).Str("entry", string(entry)).Msg("failed to marshal state entry")
			return fmt.Errorf("marshal %s: %w", entry, err)
		}
		payloads[entry] = b
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for entry, b := range payloads {
			pipe.Set(ctx, r.key(entry), b, r.ttl(entry))
		}
		return nil
	})
	if err != nil {
		logx.Error().Err(err).Int("entries", len(values)).Msg("failed to save state entries to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisStateRepository) Clear(ctx context.Context) error {
	keys := make([]string, 0, len(model.AllEntries))
	for _, e := range model.AllEntries {
		keys = append(keys, r.key(e))
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		logx.Error().Err(err).Str("prefix", r.prefix).Msg("failed to clear state from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.StateRepository = (*RedisStateRepository)(nil)

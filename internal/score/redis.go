package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizgolf/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the leaderboard JSON array.
const DefaultRedisKey = "scores:entries"

// RedisProvider stores the leaderboard as one JSON value.
type RedisProvider struct {
	rdb *redis.Client
	key string
}

func NewRedisProvider(rdb *redis.Client, key string) *RedisProvider {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisProvider{rdb: rdb, key: key}
}

func (p *RedisProvider) Load(ctx context.Context) ([]models.ScoreEntry, error) {
	raw, err := p.rdb.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", p.key, ErrNotFound)
		}
		return nil, fmt.Errorf("redis get %s: %w", p.key, err)
	}

	var entries []models.ScoreEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: redis key %s: %v", ErrCorrupt, p.key, err)
	}
	return entries, nil
}

func (p *RedisProvider) Save(ctx context.Context, entries []models.ScoreEntry) error {
	if entries == nil {
		entries = []models.ScoreEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, p.key, b, 0).Err()
}

package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizgolf/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey holds the quiz document in the remote store.
const DefaultRedisKey = "quiz"

// RedisProvider reads the quiz as a single JSON document from Redis.
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

func (p *RedisProvider) LoadQuiz(ctx context.Context) (models.QuizSet, error) {
	raw, err := p.rdb.Get(ctx, p.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.QuizSet{}, fmt.Errorf("redis key %s: %w", p.key, ErrNotFound)
		}
		return models.QuizSet{}, fmt.Errorf("redis get %s: %w", p.key, err)
	}
	return DecodeJSON(raw)
}

// Store writes the quiz document, replacing whatever was there.
func (p *RedisProvider) Store(ctx context.Context, set models.QuizSet) error {
	b, err := json.Marshal(set)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, p.key, b, 0).Err()
}

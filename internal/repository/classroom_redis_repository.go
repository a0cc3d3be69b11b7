package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-seating-api/internal/models"
)

// RedisKV is the subset of the redis client the classroom store needs.
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisClassroomRepository keeps the classroom array under a single redis key with no TTL.
type RedisClassroomRepository struct {
	client RedisKV
	key    string
	logger *zap.Logger
}

// NewRedisClassroomRepository constructs the repository.
func NewRedisClassroomRepository(client RedisKV, key string, logger *zap.Logger) *RedisClassroomRepository {
	if key == "" {
		key = DefaultClassroomKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisClassroomRepository{client: client, key: key, logger: logger}
}

// Load returns every saved classroom. A missing key means none.
func (r *RedisClassroomRepository) Load(ctx context.Context) ([]models.SavedClassroom, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.SavedClassroom{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	classrooms, err := decodeClassrooms(raw)
	if err != nil {
		r.logger.Warn("stored classrooms are unreadable", zap.String("key", r.key), zap.Error(err))
		return nil, err
	}
	return classrooms, nil
}

// Replace overwrites the whole array.
func (r *RedisClassroomRepository) Replace(ctx context.Context, classrooms []models.SavedClassroom) error {
	payload, err := encodeClassrooms(classrooms)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

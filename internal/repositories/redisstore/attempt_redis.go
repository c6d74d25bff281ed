package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eduviet/exam-service/internal/repositories"
)

type attemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository stores attempt timers in redis. The TTL handed to
// PutStart doubles as a sweep: an abandoned timer disappears on its own
// once it is past the stale horizon, so no background expiry job is needed.
func NewAttemptRepository(client *redis.Client) repositories.AttemptRepository {
	return &attemptRepository{client: client}
}

func key(k repositories.AttemptKey) string {
	return fmt.Sprintf("exam:attempt:%s:%s:%s", k.StudentID, k.Grade, k.ExamID)
}

func (r *attemptRepository) GetStart(ctx context.Context, k repositories.AttemptKey) (string, error) {
	value, err := r.client.Get(ctx, key(k)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repositories.ErrNotFound
		}
		return "", fmt.Errorf("failed to read attempt timer: %w", err)
	}
	return value, nil
}

func (r *attemptRepository) PutStart(ctx context.Context, k repositories.AttemptKey, start time.Time, ttl time.Duration) error {
	if err := r.client.Set(ctx, key(k), start.Format(time.RFC3339Nano), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store attempt timer: %w", err)
	}
	return nil
}

func (r *attemptRepository) Delete(ctx context.Context, k repositories.AttemptKey) error {
	if err := r.client.Del(ctx, key(k)).Err(); err != nil {
		return fmt.Errorf("failed to delete attempt timer: %w", err)
	}
	return nil
}

package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/eduviet/exam-service/internal/repositories"
)

type entry struct {
	value     string
	expiresAt time.Time
}

type attemptRepository struct {
	mu      sync.Mutex
	entries map[repositories.AttemptKey]entry
}

// NewAttemptRepository keeps attempt timers in process memory. It backs
// tests and single-instance deployments without redis; timers do not
// survive a restart, which the tracker already treats as "start over".
func NewAttemptRepository() repositories.AttemptRepository {
	return &attemptRepository{entries: make(map[repositories.AttemptKey]entry)}
}

func (r *attemptRepository) GetStart(ctx context.Context, k repositories.AttemptKey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[k]
	if !ok {
		return "", repositories.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(r.entries, k)
		return "", repositories.ErrNotFound
	}
	return e.value, nil
}

func (r *attemptRepository) PutStart(ctx context.Context, k repositories.AttemptKey, start time.Time, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := entry{value: start.Format(time.RFC3339Nano)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	r.entries[k] = e
	return nil
}

func (r *attemptRepository) Delete(ctx context.Context, k repositories.AttemptKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, k)
	return nil
}

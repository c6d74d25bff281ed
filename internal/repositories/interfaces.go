package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/eduviet/exam-service/internal/models"
)

// ErrNotFound is returned by repositories when a lookup misses. Services
// translate it into their own sentinel errors.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err represents a repository miss.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ExamCatalogRepository is the read-only accessor over the per-grade exam
// collections. The exam service never writes definitions through it; the
// importer appends through its own path.
type ExamCatalogRepository interface {
	GetExam(ctx context.Context, grade, examID string) (*models.ExamDefinition, error)
	ListExams(ctx context.Context, grade string) ([]models.ExamDefinition, error)
}

// ResultRepository owns the append-only result log.
type ResultRepository interface {
	// Append adds a record to the end of the collection. Safe for
	// concurrent use; no append may clobber another.
	Append(ctx context.Context, record *models.ResultRecord) error
	// ListByUser returns the user's records, most recent first.
	ListByUser(ctx context.Context, userID string) ([]models.ResultRecord, error)
	// ListByUserExam returns the user's records for one exam in insertion
	// order; the last entry is the latest attempt.
	ListByUserExam(ctx context.Context, userID, grade, examID string) ([]models.ResultRecord, error)
	// DeleteAllForExam removes every record of a retired exam and reports
	// how many were removed. Administrative only.
	DeleteAllForExam(ctx context.Context, grade, examID string) (int, error)
}

// AttemptRepository stores the per-(student, grade, exam) attempt timers.
// Entries carry a TTL as a backstop; the tracker still validates recorded
// starts on every read.
type AttemptRepository interface {
	// GetStart returns the raw recorded start for the key. A malformed
	// value is returned as-is so the tracker can apply its restart policy.
	GetStart(ctx context.Context, key AttemptKey) (string, error)
	// PutStart records a new start, superseding any prior timer.
	PutStart(ctx context.Context, key AttemptKey, start time.Time, ttl time.Duration) error
	// Delete removes the timer. Deleting an absent timer is a no-op.
	Delete(ctx context.Context, key AttemptKey) error
}

// AttemptKey identifies one student's timer for one exam.
type AttemptKey struct {
	StudentID string
	Grade     string
	ExamID    string
}

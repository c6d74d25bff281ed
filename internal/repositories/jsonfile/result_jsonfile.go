package jsonfile

import (
	"context"
	"fmt"
	"sort"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/storage"
)

// ResultsCollection is the durable collection holding every result record.
const ResultsCollection = "exam_results"

type resultRepository struct {
	store storage.Store
}

func NewResultRepository(store storage.Store) repositories.ResultRepository {
	return &resultRepository{store: store}
}

func (r *resultRepository) load() ([]models.ResultRecord, error) {
	var records []models.ResultRecord
	if _, err := r.store.Load(ResultsCollection, &records); err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return records, nil
}

// Append holds the collection lock across the read-modify-write so two
// concurrent submissions both land in the log.
func (r *resultRepository) Append(ctx context.Context, record *models.ResultRecord) error {
	lock := r.store.Lock(ResultsCollection)
	lock.Lock()
	defer lock.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}
	records = append(records, *record)
	if err := r.store.Save(ResultsCollection, records); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	return nil
}

func (r *resultRepository) ListByUser(ctx context.Context, userID string) ([]models.ResultRecord, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}
	var matched []models.ResultRecord
	for _, rec := range records {
		if rec.UserID == userID {
			matched = append(matched, rec)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})
	return matched, nil
}

func (r *resultRepository) ListByUserExam(ctx context.Context, userID, grade, examID string) ([]models.ResultRecord, error) {
	records, err := r.load()
	if err != nil {
		return nil, err
	}
	var matched []models.ResultRecord
	for _, rec := range records {
		if rec.UserID == userID && rec.Grade == grade && rec.ExamID == examID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *resultRepository) DeleteAllForExam(ctx context.Context, grade, examID string) (int, error) {
	lock := r.store.Lock(ResultsCollection)
	lock.Lock()
	defer lock.Unlock()

	records, err := r.load()
	if err != nil {
		return 0, err
	}
	kept := records[:0]
	removed := 0
	for _, rec := range records {
		if rec.Grade == grade && rec.ExamID == examID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := r.store.Save(ResultsCollection, kept); err != nil {
		return 0, fmt.Errorf("failed to save results: %w", err)
	}
	return removed, nil
}

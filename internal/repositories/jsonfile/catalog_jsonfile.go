package jsonfile

import (
	"context"
	"fmt"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/storage"
)

// CollectionForGrade names the catalog collection holding a grade's exams.
func CollectionForGrade(grade string) string {
	return "lop" + grade
}

type catalogRepository struct {
	store storage.Store
}

func NewCatalogRepository(store storage.Store) repositories.ExamCatalogRepository {
	return &catalogRepository{store: store}
}

func (r *catalogRepository) ListExams(ctx context.Context, grade string) ([]models.ExamDefinition, error) {
	var collection models.ExamCollection
	ok, err := r.store.Load(CollectionForGrade(grade), &collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for grade %s: %w", grade, err)
	}
	if !ok {
		return nil, nil
	}
	return collection.Exams, nil
}

func (r *catalogRepository) GetExam(ctx context.Context, grade, examID string) (*models.ExamDefinition, error) {
	exams, err := r.ListExams(ctx, grade)
	if err != nil {
		return nil, err
	}
	for i := range exams {
		if exams[i].ID == examID {
			exam := exams[i]
			if exam.Grade == "" {
				exam.Grade = grade
			}
			return &exam, nil
		}
	}
	return nil, repositories.ErrNotFound
}

package services

import (
	"context"
	"fmt"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/utils"
)

type catalogService struct {
	catalog repositories.ExamCatalogRepository
	logger  utils.Logger
}

func NewCatalogService(catalog repositories.ExamCatalogRepository, logger utils.Logger) CatalogService {
	return &catalogService{catalog: catalog, logger: logger}
}

func (s *catalogService) ListExams(ctx context.Context, grade string) ([]models.ExamSummary, error) {
	if !config.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}
	exams, err := s.catalog.ListExams(ctx, grade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	summaries := make([]models.ExamSummary, 0, len(exams))
	for i := range exams {
		summary := exams[i].Summary()
		if summary.Grade == "" {
			summary.Grade = grade
		}
		if summary.TimeLimitMinutes <= 0 {
			summary.TimeLimitMinutes = 15
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

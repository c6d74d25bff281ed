package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/utils"
)

type resultService struct {
	results  repositories.ResultRepository
	catalog  repositories.ExamCatalogRepository
	analysis AnalysisService
	logger   utils.Logger
}

func NewResultService(
	results repositories.ResultRepository,
	catalog repositories.ExamCatalogRepository,
	analysis AnalysisService,
	logger utils.Logger,
) ResultService {
	return &resultService{
		results:  results,
		catalog:  catalog,
		analysis: analysis,
		logger:   logger,
	}
}

func (s *resultService) GetLatest(ctx context.Context, studentID, grade, examID string) (*models.ResultRecord, error) {
	if !config.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}
	records, err := s.results.ListByUserExam(ctx, studentID, grade, examID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(records) == 0 {
		return nil, ErrResultNotFound
	}
	// Retakes append; the last record is the attempt that counts.
	latest := records[len(records)-1]
	return &latest, nil
}

func (s *resultService) GetResultView(ctx context.Context, studentID, grade, examID string) (*ResultView, error) {
	record, err := s.GetLatest(ctx, studentID, grade, examID)
	if err != nil {
		return nil, err
	}

	view := &ResultView{
		Result:       *record,
		WrongAnswers: s.buildWrongAnswers(ctx, record),
	}
	if s.analysis != nil {
		view.Analysis = s.analysis.Analyze(ctx, record)
	}
	return view, nil
}

// buildWrongAnswers joins incorrect details back to the catalog questions
// for review. The join is best effort: a missing exam or question degrades
// to a shorter review, never an error.
func (s *resultService) buildWrongAnswers(ctx context.Context, record *models.ResultRecord) []models.WrongAnswer {
	exam, err := s.catalog.GetExam(ctx, record.Grade, record.ExamID)
	if err != nil {
		s.logger.Warn("Could not load exam for wrong-answer review",
			"exam_id", record.ExamID, "error", err)
		return nil
	}

	questions := make(map[string]models.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		questions[strconv.Itoa(q.ID)] = q
	}

	var wrong []models.WrongAnswer
	for _, detail := range record.Details {
		if detail.IsCorrect {
			continue
		}
		q, ok := questions[detail.QuestionID]
		if !ok {
			continue
		}
		number := q.Number
		if number == 0 {
			number = q.ID
		}
		wrong = append(wrong, models.WrongAnswer{
			QuestionNumber: number,
			QuestionText:   q.Text,
			UserAnswer:     detail.UserAnswer.Display(),
			CorrectAnswer:  detail.CorrectAnswer.Display(),
			Explanation:    q.Explanation,
		})
	}
	return wrong
}

func (s *resultService) ListHistory(ctx context.Context, studentID string) ([]models.ResultRecord, error) {
	records, err := s.results.ListByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return records, nil
}

func (s *resultService) DeleteAllForExam(ctx context.Context, grade, examID string) (int, error) {
	if !config.IsValidGrade(grade) {
		return 0, ErrInvalidGrade
	}
	removed, err := s.results.DeleteAllForExam(ctx, grade, examID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.logger.Info("Purged results for retired exam",
		"grade", grade,
		"exam_id", examID,
		"removed", removed)
	return removed, nil
}

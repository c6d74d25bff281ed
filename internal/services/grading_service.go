package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/events"
	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/scoring"
	"github.com/eduviet/exam-service/internal/utils"
)

type gradingService struct {
	catalog   repositories.ExamCatalogRepository
	results   repositories.ResultRepository
	attempts  repositories.AttemptRepository
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator
}

func NewGradingService(
	catalog repositories.ExamCatalogRepository,
	results repositories.ResultRepository,
	attempts repositories.AttemptRepository,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
) GradingService {
	return &gradingService{
		catalog:   catalog,
		results:   results,
		attempts:  attempts,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *gradingService) Submit(ctx context.Context, req *SubmitAttemptRequest) (*models.ResultRecord, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	s.logger.Info("Submitting attempt",
		"student_id", req.StudentID,
		"grade", req.Grade,
		"exam_id", req.ExamID,
		"answers_count", len(req.Answers))

	if !config.IsValidGrade(req.Grade) {
		return nil, ErrInvalidGrade
	}

	exam, err := s.catalog.GetExam(ctx, req.Grade, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	graded := scoring.Grade(exam, req.Answers)

	record := &models.ResultRecord{
		ID:             newResultID(req.StudentID, req.ExamID),
		UserID:         req.StudentID,
		Username:       req.Username,
		Grade:          req.Grade,
		ExamID:         req.ExamID,
		ExamTitle:      exam.Title,
		Answers:        req.Answers,
		Score:          graded.Score,
		CorrectCount:   graded.CorrectCount,
		TotalQuestions: graded.TotalQuestions,
		Details:        graded.Details,
		SubmittedAt:    time.Now(),
	}

	if err := s.results.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// The result is durable; losing the timer now only means a second tab
	// sees a fresh clock, so a cleanup failure is logged, not returned.
	key := repositories.AttemptKey{StudentID: req.StudentID, Grade: req.Grade, ExamID: req.ExamID}
	if err := s.attempts.Delete(ctx, key); err != nil {
		s.logger.Error("Failed to clear attempt timer after submission",
			"exam_id", req.ExamID, "error", err)
	}

	s.publishSubmitted(ctx, record)

	s.logger.Info("Attempt graded and saved",
		"result_id", record.ID,
		"student_id", req.StudentID,
		"exam_id", req.ExamID,
		"score", record.Score)

	return record, nil
}

func (s *gradingService) publishSubmitted(ctx context.Context, record *models.ResultRecord) {
	if s.publisher == nil {
		return
	}
	event := events.NewAttemptEvent(events.AttemptSubmitted, record.UserID, record.Grade, record.ExamID)
	event.ResultID = record.ID
	event.Score = record.Score
	event.CorrectCount = record.CorrectCount
	event.TotalQuestions = record.TotalQuestions
	if err := s.publisher.PublishAttemptEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish submission event",
			"result_id", record.ID, "error", err)
	}
}

// newResultID combines user, exam and a random suffix so ids stay unique
// even under concurrent submissions.
func newResultID(userID, examID string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("result_%s_%s_%s", userID, examID, suffix)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/events"
	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/utils"
)

type attemptService struct {
	catalog   repositories.ExamCatalogRepository
	attempts  repositories.AttemptRepository
	publisher events.EventPublisher
	logger    utils.Logger
	validator *utils.Validator

	defaultLimitMinutes int
}

func NewAttemptService(
	catalog repositories.ExamCatalogRepository,
	attempts repositories.AttemptRepository,
	publisher events.EventPublisher,
	logger utils.Logger,
	validator *utils.Validator,
	defaultLimitMinutes int,
) AttemptService {
	if defaultLimitMinutes <= 0 {
		defaultLimitMinutes = 15
	}
	return &attemptService{
		catalog:             catalog,
		attempts:            attempts,
		publisher:           publisher,
		logger:              logger,
		validator:           validator,
		defaultLimitMinutes: defaultLimitMinutes,
	}
}

// effectiveTimeLimit applies the defaulting rule: a missing or non-positive
// configured limit falls back to the service default.
func (s *attemptService) effectiveTimeLimit(exam *models.ExamDefinition) int {
	if exam.TimeLimitMinutes <= 0 {
		s.logger.Warn("Invalid time limit in exam, using default",
			"exam_id", exam.ID,
			"time_limit", exam.TimeLimitMinutes,
			"default_minutes", s.defaultLimitMinutes)
		return s.defaultLimitMinutes
	}
	return exam.TimeLimitMinutes
}

func (s *attemptService) getExam(ctx context.Context, grade, examID string) (*models.ExamDefinition, error) {
	if !config.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}
	exam, err := s.catalog.GetExam(ctx, grade, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

func (s *attemptService) StartOrResume(ctx context.Context, req *StartAttemptRequest) (*AttemptResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	s.logger.Info("Starting or resuming attempt",
		"student_id", req.StudentID,
		"grade", req.Grade,
		"exam_id", req.ExamID,
		"force_reset", req.ForceReset)

	exam, err := s.getExam(ctx, req.Grade, req.ExamID)
	if err != nil {
		return nil, err
	}

	limitMinutes := s.effectiveTimeLimit(exam)
	remaining, err := s.startOrResumeTimer(ctx, req, limitMinutes)
	if err != nil {
		return nil, err
	}

	return &AttemptResponse{
		Exam:             exam.View(),
		RemainingSeconds: remaining,
	}, nil
}

// startOrResumeTimer applies the tracker state machine for one key and
// returns the remaining seconds of the (possibly fresh) timer.
func (s *attemptService) startOrResumeTimer(ctx context.Context, req *StartAttemptRequest, limitMinutes int) (int, error) {
	key := repositories.AttemptKey{StudentID: req.StudentID, Grade: req.Grade, ExamID: req.ExamID}
	budget := limitMinutes * 60

	startFresh := req.ForceReset
	if !startFresh {
		raw, err := s.attempts.GetStart(ctx, key)
		switch {
		case repositories.IsNotFoundError(err):
			startFresh = true
		case err != nil:
			return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
		default:
			start, parseErr := time.Parse(time.RFC3339Nano, raw)
			elapsed := time.Since(start).Seconds()
			switch {
			case parseErr != nil:
				// A corrupted timer must never grant unlimited time, but
				// must never lock the student out either. Restart the clock.
				s.logger.Warn("Malformed attempt start, restarting timer",
					"exam_id", req.ExamID, "raw", raw)
				startFresh = true
			case elapsed < 0:
				s.logger.Warn("Negative elapsed time, restarting timer",
					"exam_id", req.ExamID, "elapsed", elapsed)
				startFresh = true
			case elapsed > float64(2*budget):
				s.logger.Warn("Stale attempt session, restarting timer",
					"exam_id", req.ExamID, "elapsed", elapsed)
				startFresh = true
			default:
				remaining := budget - int(elapsed)
				if remaining <= 0 {
					if err := s.attempts.Delete(ctx, key); err != nil {
						s.logger.Error("Failed to delete expired timer", "exam_id", req.ExamID, "error", err)
					}
					s.publishEvent(ctx, events.NewAttemptEvent(events.AttemptExpired, req.StudentID, req.Grade, req.ExamID))
					return 0, ErrAttemptExpired
				}
				// Never report zero while active, never more than the budget.
				return clamp(remaining, 1, budget), nil
			}
		}
	}

	now := time.Now()
	// TTL doubles the budget to match the stale-session horizon; the
	// validation above still governs resumes inside that window.
	if err := s.attempts.PutStart(ctx, key, now, time.Duration(2*budget)*time.Second); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Info("Created attempt timer",
		"student_id", req.StudentID,
		"exam_id", req.ExamID,
		"budget_seconds", budget)
	s.publishEvent(ctx, events.NewAttemptEvent(events.AttemptStarted, req.StudentID, req.Grade, req.ExamID))

	return budget, nil
}

func (s *attemptService) CheckRemaining(ctx context.Context, studentID, grade, examID string) (*TimeRemaining, error) {
	exam, err := s.getExam(ctx, grade, examID)
	if err != nil {
		return nil, err
	}
	budget := s.effectiveTimeLimit(exam) * 60

	key := repositories.AttemptKey{StudentID: studentID, Grade: grade, ExamID: examID}
	raw, err := s.attempts.GetStart(ctx, key)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// A poll implies an attempt should already be underway, so a
			// missing timer reads as expired rather than never-started.
			return &TimeRemaining{RemainingSeconds: 0, IsExpired: true}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	start, parseErr := time.Parse(time.RFC3339Nano, raw)
	remaining := budget - int(time.Since(start).Seconds())
	if parseErr != nil || remaining <= 0 {
		if err := s.attempts.Delete(ctx, key); err != nil {
			s.logger.Error("Failed to delete expired timer", "exam_id", examID, "error", err)
		}
		s.publishEvent(ctx, events.NewAttemptEvent(events.AttemptExpired, studentID, grade, examID))
		return &TimeRemaining{RemainingSeconds: 0, IsExpired: true}, nil
	}

	return &TimeRemaining{RemainingSeconds: clamp(remaining, 1, budget), IsExpired: false}, nil
}

func (s *attemptService) Reset(ctx context.Context, studentID, grade, examID string) error {
	key := repositories.AttemptKey{StudentID: studentID, Grade: grade, ExamID: examID}
	if err := s.attempts.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	s.logger.Info("Attempt timer reset",
		"student_id", studentID,
		"grade", grade,
		"exam_id", examID)
	return nil
}

func (s *attemptService) publishEvent(ctx context.Context, event *events.AttemptEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAttemptEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish attempt event",
			"event_type", event.Type,
			"exam_id", event.ExamID,
			"error", err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package services

import (
	"context"

	"github.com/eduviet/exam-service/internal/models"
)

// AttemptService manages the time-boxed attempt lifecycle per student and
// exam: start, resume, poll, expire, reset.
type AttemptService interface {
	// StartOrResume establishes or resumes the caller's timer and returns
	// the exam view with the remaining budget. Returns ErrAttemptExpired
	// when the running timer has elapsed; the client must restart.
	StartOrResume(ctx context.Context, req *StartAttemptRequest) (*AttemptResponse, error)
	// CheckRemaining is the read-only polling variant. A missing timer
	// reports expired with zero remaining.
	CheckRemaining(ctx context.Context, studentID, grade, examID string) (*TimeRemaining, error)
	// Reset clears the timer so the next StartOrResume grants the full
	// budget. Idempotent.
	Reset(ctx context.Context, studentID, grade, examID string) error
}

type StartAttemptRequest struct {
	StudentID  string `validate:"required"`
	Grade      string `validate:"required,grade"`
	ExamID     string `validate:"required"`
	ForceReset bool
}

type AttemptResponse struct {
	Exam             models.ExamView `json:"exam"`
	RemainingSeconds int             `json:"remaining_time"`
}

type TimeRemaining struct {
	RemainingSeconds int  `json:"remaining_time"`
	IsExpired        bool `json:"is_expired"`
}

// GradingService grades submissions and persists the outcome.
type GradingService interface {
	// Submit grades the answer set against the catalog definition, appends
	// an immutable result record, clears the attempt timer and publishes
	// the submission event. Fails with ErrExamNotFound when the catalog
	// lookup misses; nothing is persisted in that case.
	Submit(ctx context.Context, req *SubmitAttemptRequest) (*models.ResultRecord, error)
}

type SubmitAttemptRequest struct {
	StudentID string           `validate:"required"`
	Username  string           ``
	Grade     string           `validate:"required,grade"`
	ExamID    string           `validate:"required"`
	Answers   models.AnswerSet ``
}

// ResultService reads the append-only result log.
type ResultService interface {
	// GetLatest returns the caller's latest attempt for one exam.
	GetLatest(ctx context.Context, studentID, grade, examID string) (*models.ResultRecord, error)
	// GetResultView returns the latest attempt with its wrong-answer
	// review and study-feedback analysis attached.
	GetResultView(ctx context.Context, studentID, grade, examID string) (*ResultView, error)
	// ListHistory returns the caller's results, most recent first.
	ListHistory(ctx context.Context, studentID string) ([]models.ResultRecord, error)
	// DeleteAllForExam purges every record of a retired exam and reports
	// the number removed. Administrative only.
	DeleteAllForExam(ctx context.Context, grade, examID string) (int, error)
}

type ResultView struct {
	Result       models.ResultRecord    `json:"result"`
	WrongAnswers []models.WrongAnswer   `json:"wrong_answers"`
	Analysis     *models.ResultAnalysis `json:"ai_analysis,omitempty"`
}

// CatalogService exposes the read-only exam catalog.
type CatalogService interface {
	ListExams(ctx context.Context, grade string) ([]models.ExamSummary, error)
}

// AnalysisService builds the study-feedback block for a result. It never
// fails: when the completer is unavailable or returns garbage, the
// deterministic fallback summary is substituted.
type AnalysisService interface {
	Analyze(ctx context.Context, result *models.ResultRecord) *models.ResultAnalysis
}

// ServiceManager bundles the service set for handler wiring.
type ServiceManager interface {
	Attempt() AttemptService
	Grading() GradingService
	Result() ResultService
	Catalog() CatalogService
}

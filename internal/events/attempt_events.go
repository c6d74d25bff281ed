package events

import (
	"time"

	"github.com/google/uuid"
)

// AttemptEventType names the lifecycle transitions other services subscribe
// to (progress tracking, notifications).
type AttemptEventType string

const (
	AttemptStarted   AttemptEventType = "attempt.started"
	AttemptExpired   AttemptEventType = "attempt.expired"
	AttemptSubmitted AttemptEventType = "attempt.submitted"
)

// AttemptEvent is the envelope published for every attempt transition.
type AttemptEvent struct {
	ID        string           `json:"id"`
	Type      AttemptEventType `json:"type"`
	Source    string           `json:"source"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`

	StudentID string `json:"student_id"`
	Grade     string `json:"grade"`
	ExamID    string `json:"exam_id"`

	// Submission-only fields.
	ResultID       string  `json:"result_id,omitempty"`
	Score          float64 `json:"score,omitempty"`
	CorrectCount   int     `json:"correct_count,omitempty"`
	TotalQuestions int     `json:"total_questions,omitempty"`
}

// NewAttemptEvent fills the envelope for one transition.
func NewAttemptEvent(eventType AttemptEventType, studentID, grade, examID string) *AttemptEvent {
	return &AttemptEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    "exam-service",
		Version:   "1.0",
		Timestamp: time.Now(),
		StudentID: studentID,
		Grade:     grade,
		ExamID:    examID,
	}
}

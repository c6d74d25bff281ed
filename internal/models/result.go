package models

import "time"

// GradeDetail is the per-question outcome inside a result record.
type GradeDetail struct {
	QuestionID    string       `json:"question_id"`
	UserAnswer    Answer       `json:"user_answer"`
	CorrectAnswer Answer       `json:"correct_answer"`
	IsCorrect     bool         `json:"is_correct"`
	Score         float64      `json:"score"`
	Type          QuestionType `json:"type"`
}

// ResultRecord is one graded attempt. Records are append-only: once written
// they are never mutated, and only the administrative purge that retires an
// exam removes them.
type ResultRecord struct {
	ID             string        `json:"id"`
	UserID         string        `json:"user_id"`
	Username       string        `json:"username,omitempty"`
	Grade          string        `json:"grade"`
	ExamID         string        `json:"exam_id"`
	ExamTitle      string        `json:"exam_title"`
	Answers        AnswerSet     `json:"answers"`
	Score          float64       `json:"score"`
	CorrectCount   int           `json:"correct_count"`
	TotalQuestions int           `json:"total_questions"`
	Details        []GradeDetail `json:"details"`
	SubmittedAt    time.Time     `json:"submitted_at"`
}

// ResultSummary is the submission response payload.
type ResultSummary struct {
	ResultID       string  `json:"result_id"`
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
}

func (r *ResultRecord) Summary() ResultSummary {
	return ResultSummary{
		ResultID:       r.ID,
		Score:          r.Score,
		CorrectCount:   r.CorrectCount,
		TotalQuestions: r.TotalQuestions,
	}
}

// WrongAnswer is one entry of the review shown with a result: an incorrect
// question joined back to its catalog definition.
type WrongAnswer struct {
	QuestionNumber int    `json:"question_number"`
	QuestionText   string `json:"question_text"`
	UserAnswer     string `json:"user_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	Explanation    string `json:"explanation,omitempty"`
}

// ResultAnalysis is the study-feedback block attached to a result view.
// It comes from the AI completer when available and from the deterministic
// fallback otherwise.
type ResultAnalysis struct {
	OverallAssessment string `json:"overall_assessment"`
	Strengths         string `json:"strengths"`
	Weaknesses        string `json:"weaknesses"`
	StudyPlan         string `json:"study_plan"`
	Encouragement     string `json:"encouragement"`
}

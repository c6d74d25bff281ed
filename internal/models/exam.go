package models

// QuestionType distinguishes how a question is answered and graded.
type QuestionType string

const (
	// SingleChoice is a one-token multiple-choice question ("tl1").
	SingleChoice QuestionType = "tl1"
	// MultiTrueFalse is a four-part true/false question graded with
	// partial credit on the mistake count ("tl2").
	MultiTrueFalse QuestionType = "tl2"
	// Essay answers are free text and are not auto-graded.
	Essay QuestionType = "essay"
)

// ExamDefinition is one entry of a grade's catalog collection. The exam
// service only reads these; authoring happens in a separate workflow.
type ExamDefinition struct {
	ID               string     `json:"id"`
	Grade            string     `json:"grade"`
	Title            string     `json:"title"`
	TimeLimitMinutes int        `json:"time_limit"`
	Questions        []Question `json:"questions"`
}

type Question struct {
	ID          int               `json:"id"`
	Number      int               `json:"number,omitempty"`
	Text        string            `json:"question"`
	Type        QuestionType      `json:"type"`
	Options     map[string]string `json:"options,omitempty"`
	// CorrectAnswer is a single token for tl1 (legacy exams sometimes store
	// a one-element list), a token set for tl2, and empty for essays.
	CorrectAnswer Answer `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

// EffectiveType defaults untyped legacy questions to single choice.
func (q Question) EffectiveType() QuestionType {
	if q.Type == "" {
		return SingleChoice
	}
	return q.Type
}

// ExamCollection is the on-disk shape of a per-grade catalog collection.
type ExamCollection struct {
	Exams []ExamDefinition `json:"exams"`
}

// ===== CLIENT-FACING VIEWS =====

// ExamSummary is the catalog listing entry.
type ExamSummary struct {
	ID               string `json:"id"`
	Grade            string `json:"grade"`
	Title            string `json:"title"`
	TimeLimitMinutes int    `json:"time_limit"`
	QuestionCount    int    `json:"question_count"`
}

// QuestionView is a question as shown to a student taking the exam, with
// the answer key and explanation stripped.
type QuestionView struct {
	ID      int               `json:"id"`
	Number  int               `json:"number,omitempty"`
	Text    string            `json:"question"`
	Type    QuestionType      `json:"type"`
	Options map[string]string `json:"options,omitempty"`
}

// ExamView is an exam as handed to a student at attempt start.
type ExamView struct {
	ID               string         `json:"id"`
	Grade            string         `json:"grade"`
	Title            string         `json:"title"`
	TimeLimitMinutes int            `json:"time_limit"`
	Questions        []QuestionView `json:"questions"`
}

func (e *ExamDefinition) Summary() ExamSummary {
	return ExamSummary{
		ID:               e.ID,
		Grade:            e.Grade,
		Title:            e.Title,
		TimeLimitMinutes: e.TimeLimitMinutes,
		QuestionCount:    len(e.Questions),
	}
}

func (e *ExamDefinition) View() ExamView {
	view := ExamView{
		ID:               e.ID,
		Grade:            e.Grade,
		Title:            e.Title,
		TimeLimitMinutes: e.TimeLimitMinutes,
		Questions:        make([]QuestionView, len(e.Questions)),
	}
	for i, q := range e.Questions {
		view.Questions[i] = QuestionView{
			ID:      q.ID,
			Number:  q.Number,
			Text:    q.Text,
			Type:    q.EffectiveType(),
			Options: q.Options,
		}
	}
	return view
}

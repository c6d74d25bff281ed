package models

import (
	"encoding/json"
	"strings"
)

// AnswerKind tags the shape an answer was submitted (or stored) in.
type AnswerKind int

const (
	AnswerNone AnswerKind = iota
	AnswerSingle
	AnswerMultiple
)

// Answer is a tagged union over the shapes answers appear in: a single
// token, a list of tokens, or nothing. Legacy exam files store tl1 keys
// either way, so the union is canonicalized here at the JSON boundary
// instead of branching on raw types at scoring time. Essay text rides in
// the Single form.
type Answer struct {
	Kind   AnswerKind
	Single string
	Tokens []string
}

func SingleAnswer(token string) Answer {
	return Answer{Kind: AnswerSingle, Single: token}
}

func MultipleAnswer(tokens ...string) Answer {
	return Answer{Kind: AnswerMultiple, Tokens: tokens}
}

func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerSingle:
		return strings.TrimSpace(a.Single) == ""
	case AnswerMultiple:
		return len(a.Tokens) == 0
	default:
		return true
	}
}

// Values returns the raw submitted values regardless of shape.
func (a Answer) Values() []string {
	switch a.Kind {
	case AnswerSingle:
		if strings.TrimSpace(a.Single) == "" {
			return nil
		}
		return []string{a.Single}
	case AnswerMultiple:
		return a.Tokens
	default:
		return nil
	}
}

// Display renders an answer for result views: list answers are joined with
// commas, absent answers render as "--".
func (a Answer) Display() string {
	values := a.Values()
	if len(values) == 0 {
		return "--"
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	if len(trimmed) == 0 {
		return "--"
	}
	return strings.Join(trimmed, ", ")
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerSingle:
		return json.Marshal(a.Single)
	case AnswerMultiple:
		return json.Marshal(a.Tokens)
	default:
		return []byte("null"), nil
	}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*a = Answer{Kind: AnswerNone}
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = Answer{Kind: AnswerSingle, Single: single}
		return nil
	}

	var tokens []string
	if err := json.Unmarshal(data, &tokens); err == nil {
		*a = Answer{Kind: AnswerMultiple, Tokens: tokens}
		return nil
	}

	// Anything else (numbers, objects) degrades to an unanswered question
	// rather than failing the whole submission.
	*a = Answer{Kind: AnswerNone}
	return nil
}

// AnswerSet maps question ids (as strings) to the student's answers for one
// submission.
type AnswerSet map[string]Answer

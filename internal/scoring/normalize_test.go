package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduviet/exam-service/internal/models"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain token", raw: "B", want: "B"},
		{name: "lowercase", raw: "b", want: "B"},
		{name: "trailing period", raw: "b.", want: "B"},
		{name: "numbered option text", raw: "B. Hanoi", want: "B"},
		{name: "surrounding whitespace", raw: "  c  ", want: "C"},
		{name: "whitespace before period", raw: " a . foo", want: "A"},
		{name: "empty", raw: "", want: ""},
		{name: "only whitespace", raw: "   ", want: ""},
		{name: "only period", raw: ".", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeToken(tc.raw))
		})
	}
}

func TestNormalizeToken_Idempotent(t *testing.T) {
	inputs := []string{"B", "b.", "B. Hanoi", " a ", "", ".", "A,B", "đ. text"}
	for _, raw := range inputs {
		once := NormalizeToken(raw)
		assert.Equal(t, once, NormalizeToken(once), "raw=%q", raw)
	}
}

func TestNormalizeSet(t *testing.T) {
	tests := []struct {
		name   string
		answer models.Answer
		want   []string
	}{
		{
			name:   "list with duplicates and empties",
			answer: models.MultipleAnswer("a", "A.", "", "  ", "b"),
			want:   []string{"A", "B"},
		},
		{
			name:   "scalar becomes singleton",
			answer: models.SingleAnswer("c."),
			want:   []string{"C"},
		},
		{
			name:   "empty scalar becomes empty set",
			answer: models.SingleAnswer("   "),
			want:   nil,
		},
		{
			name:   "absent answer",
			answer: models.Answer{Kind: models.AnswerNone},
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeSet(tc.answer)
			assert.Len(t, got, len(tc.want))
			for _, token := range tc.want {
				assert.Contains(t, got, token)
			}
		})
	}
}

func TestSymmetricDifference(t *testing.T) {
	a := map[string]struct{}{"A": {}, "C": {}}
	b := map[string]struct{}{"A": {}, "B": {}, "C": {}}
	assert.Equal(t, 1, symmetricDifference(a, b))
	assert.Equal(t, 1, symmetricDifference(b, a))
	assert.Equal(t, 0, symmetricDifference(a, a))
	assert.Equal(t, 2, symmetricDifference(a, map[string]struct{}{}))
}

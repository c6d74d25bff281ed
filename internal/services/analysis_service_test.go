package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/utils"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return c.reply, c.err
}

func analysisRecord(score float64, correct, total int) *models.ResultRecord {
	return &models.ResultRecord{
		ID:             "r1",
		ExamTitle:      "Midterm review",
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: total,
	}
}

const wellFormedReply = `Here is the analysis you asked for:
{"overall_assessment": "Solid performance overall.",
 "strengths": "• Careful reading",
 "weaknesses": "• Fractions need work",
 "study_plan": "• Practice daily",
 "encouragement": "Keep going!"}
Hope that helps.`

func TestAnalyze_ParsesCompleterReply(t *testing.T) {
	service := NewAnalysisService(&fakeCompleter{reply: wellFormedReply}, utils.NewDevelopmentLogger())

	analysis := service.Analyze(context.Background(), analysisRecord(7.5, 3, 4))
	require.NotNil(t, analysis)
	assert.Equal(t, "Solid performance overall.", analysis.OverallAssessment)
	assert.Equal(t, "• Fractions need work", analysis.Weaknesses)
	assert.Equal(t, "Keep going!", analysis.Encouragement)
}

func TestAnalyze_FallsBackOnBadReplies(t *testing.T) {
	tests := []struct {
		name      string
		completer Completer
	}{
		{"completer error", &fakeCompleter{err: errors.New("upstream down")}},
		{"no json in reply", &fakeCompleter{reply: "I cannot help with that."}},
		{"invalid json", &fakeCompleter{reply: `{"overall_assessment": truncated`}},
		{"missing fields", &fakeCompleter{reply: `{"overall_assessment": "ok"}`}},
		{"nil completer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAnalysisService(tt.completer, utils.NewDevelopmentLogger())

			analysis := service.Analyze(context.Background(), analysisRecord(9.0, 9, 10))
			require.NotNil(t, analysis, "a result page always gets some analysis")
			assert.NotEmpty(t, analysis.OverallAssessment)
			assert.NotEmpty(t, analysis.Strengths)
			assert.NotEmpty(t, analysis.Weaknesses)
			assert.NotEmpty(t, analysis.StudyPlan)
			assert.NotEmpty(t, analysis.Encouragement)
		})
	}
}

func TestAnalyze_FallbackBands(t *testing.T) {
	service := NewAnalysisService(nil, utils.NewDevelopmentLogger())
	ctx := context.Background()

	high := service.Analyze(ctx, analysisRecord(8.0, 8, 10))
	mid := service.Analyze(ctx, analysisRecord(5.0, 5, 10))
	low := service.Analyze(ctx, analysisRecord(4.9, 4, 10))

	assert.Contains(t, high.OverallAssessment, "Excellent")
	assert.Contains(t, mid.OverallAssessment, "50%")
	assert.NotEqual(t, high.OverallAssessment, mid.OverallAssessment)
	assert.NotEqual(t, mid.OverallAssessment, low.OverallAssessment)
}

func TestAnalyze_ZeroQuestionsDoesNotDivideByZero(t *testing.T) {
	service := NewAnalysisService(nil, utils.NewDevelopmentLogger())

	analysis := service.Analyze(context.Background(), analysisRecord(0, 0, 0))
	require.NotNil(t, analysis)
	assert.NotEmpty(t, analysis.OverallAssessment)
}

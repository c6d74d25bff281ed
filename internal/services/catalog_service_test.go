package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/utils"
)

func TestListExams_Summaries(t *testing.T) {
	legacy := &models.ExamDefinition{
		ID:    "legacy",
		Grade: "6",
		Title: "Legacy exam",
		// Legacy records may miss the time limit entirely
		TimeLimitMinutes: 0,
		Questions:        []models.Question{{ID: 1, Text: "q"}},
	}
	service := NewCatalogService(newFakeCatalog(testExam(), legacy), utils.NewDevelopmentLogger())

	summaries, err := service.ListExams(context.Background(), "6")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := make(map[string]models.ExamSummary)
	for _, s := range summaries {
		byID[s.ID] = s
	}

	assert.Equal(t, 2, byID["exam1"].QuestionCount)
	assert.Equal(t, 15, byID["exam1"].TimeLimitMinutes)
	assert.Equal(t, "6", byID["legacy"].Grade)
	assert.Equal(t, 15, byID["legacy"].TimeLimitMinutes, "missing limits default in the listing")
}

func TestListExams_EmptyGradeAndErrors(t *testing.T) {
	service := NewCatalogService(newFakeCatalog(), utils.NewDevelopmentLogger())
	ctx := context.Background()

	summaries, err := service.ListExams(ctx, "9")
	require.NoError(t, err)
	assert.Empty(t, summaries)

	_, err = service.ListExams(ctx, "5")
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

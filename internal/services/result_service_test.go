package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/repositories/jsonfile"
	"github.com/eduviet/exam-service/internal/storage"
	"github.com/eduviet/exam-service/internal/utils"
)

type resultFixture struct {
	service ResultService
	results repositories.ResultRepository
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	logger := utils.NewDevelopmentLogger()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	results := jsonfile.NewResultRepository(store)
	service := NewResultService(results, newFakeCatalog(testExam()),
		NewAnalysisService(nil, logger), logger)
	return &resultFixture{service: service, results: results}
}

func storedRecord(id string, score float64, submittedAt time.Time, details ...models.GradeDetail) *models.ResultRecord {
	return &models.ResultRecord{
		ID:             id,
		UserID:         "student1",
		Username:       "An Nguyen",
		Grade:          "6",
		ExamID:         "exam1",
		ExamTitle:      "Midterm review",
		Score:          score,
		CorrectCount:   int(score / 5),
		TotalQuestions: 2,
		Details:        details,
		SubmittedAt:    submittedAt,
	}
}

func TestGetLatest_LastAttemptWins(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	require.NoError(t, f.results.Append(ctx, storedRecord("r1", 5.0, time.Now().Add(-time.Hour))))
	require.NoError(t, f.results.Append(ctx, storedRecord("r2", 10.0, time.Now())))

	latest, err := f.service.GetLatest(ctx, "student1", "6", "exam1")
	require.NoError(t, err)
	assert.Equal(t, "r2", latest.ID)
	assert.Equal(t, 10.0, latest.Score)
}

func TestGetLatest_Errors(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	_, err := f.service.GetLatest(ctx, "student1", "6", "exam1")
	assert.ErrorIs(t, err, ErrResultNotFound)

	_, err = f.service.GetLatest(ctx, "student1", "12", "exam1")
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

func TestGetResultView_JoinsWrongAnswers(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	record := storedRecord("r1", 5.0, time.Now(),
		models.GradeDetail{
			QuestionID:    "1",
			UserAnswer:    models.SingleAnswer("A"),
			CorrectAnswer: models.SingleAnswer("B"),
			IsCorrect:     false,
			Type:          models.SingleChoice,
		},
		models.GradeDetail{
			QuestionID:    "2",
			UserAnswer:    models.MultipleAnswer("A", "C"),
			CorrectAnswer: models.MultipleAnswer("A", "C"),
			IsCorrect:     true,
			Score:         1,
			Type:          models.MultiTrueFalse,
		},
	)
	require.NoError(t, f.results.Append(ctx, record))

	view, err := f.service.GetResultView(ctx, "student1", "6", "exam1")
	require.NoError(t, err)
	assert.Equal(t, "r1", view.Result.ID)

	require.Len(t, view.WrongAnswers, 1, "only incorrect questions appear in the review")
	wrong := view.WrongAnswers[0]
	assert.Equal(t, 1, wrong.QuestionNumber)
	assert.Equal(t, "Pick B", wrong.QuestionText)
	assert.Equal(t, "A", wrong.UserAnswer)
	assert.Equal(t, "B", wrong.CorrectAnswer)

	require.NotNil(t, view.Analysis)
	assert.NotEmpty(t, view.Analysis.OverallAssessment)
	assert.NotEmpty(t, view.Analysis.StudyPlan)
}

func TestGetResultView_DegradesWhenExamGone(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	record := storedRecord("r1", 0.0, time.Now(),
		models.GradeDetail{
			QuestionID:    "1",
			UserAnswer:    models.SingleAnswer("A"),
			CorrectAnswer: models.SingleAnswer("B"),
		},
	)
	record.ExamID = "retired"
	require.NoError(t, f.results.Append(ctx, record))

	view, err := f.service.GetResultView(ctx, "student1", "6", "retired")
	require.NoError(t, err)
	assert.Empty(t, view.WrongAnswers, "review degrades when the exam left the catalog")
}

func TestListHistory_NewestFirst(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	old := storedRecord("r1", 5.0, time.Now().Add(-2*time.Hour))
	recent := storedRecord("r2", 8.0, time.Now())
	require.NoError(t, f.results.Append(ctx, old))
	require.NoError(t, f.results.Append(ctx, recent))

	history, err := f.service.ListHistory(ctx, "student1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "r2", history[0].ID)
	assert.Equal(t, "r1", history[1].ID)

	history, err = f.service.ListHistory(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteAllForExam(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	require.NoError(t, f.results.Append(ctx, storedRecord("r1", 5.0, time.Now())))
	require.NoError(t, f.results.Append(ctx, storedRecord("r2", 8.0, time.Now())))

	removed, err := f.service.DeleteAllForExam(ctx, "6", "exam1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, err = f.service.GetLatest(ctx, "student1", "6", "exam1")
	assert.ErrorIs(t, err, ErrResultNotFound)

	removed, err = f.service.DeleteAllForExam(ctx, "6", "exam1")
	require.NoError(t, err)
	assert.Zero(t, removed)

	_, err = f.service.DeleteAllForExam(ctx, "12", "exam1")
	assert.ErrorIs(t, err, ErrInvalidGrade)
}

package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories/jsonfile"
	"github.com/eduviet/exam-service/internal/storage"
	"github.com/eduviet/exam-service/internal/utils"
)

func newImporter(t *testing.T) (*Importer, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return New(store, utils.NewDevelopmentLogger()), store
}

// workbook renders rows into an in-memory XLSX file the way the authoring
// template lays them out: number, question, A-D, correct, type, explanation.
func workbook(t *testing.T, rows [][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

var headerRow = []string{"STT", "Question", "A", "B", "C", "D", "Correct", "Type", "Explanation"}

func TestImportExam_ParsesWorkbook(t *testing.T) {
	im, store := newImporter(t)

	file := workbook(t, [][]string{
		headerRow,
		{"1", "What is 2+2?", "3", "4", "5", "6", "b", "tl1", "Basic addition"},
		{"2", "Mark the true statements", "s1", "s2", "s3", "s4", "A, C", "tl2", ""},
		{"3", "Explain your reasoning", "", "", "", "", "", "essay", ""},
	})

	exam, err := im.ImportExam(context.Background(), "7", ImportRequest{
		Title:            "Unit 3 quiz",
		TimeLimitMinutes: 20,
		File:             file,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(exam.ID, "exam_"))
	assert.Equal(t, "7", exam.Grade)
	assert.Equal(t, "Unit 3 quiz", exam.Title)
	assert.Equal(t, 20, exam.TimeLimitMinutes)
	require.Len(t, exam.Questions, 3)

	single := exam.Questions[0]
	assert.Equal(t, 1, single.ID)
	assert.Equal(t, models.SingleChoice, single.Type)
	assert.Equal(t, map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"}, single.Options)
	assert.Equal(t, models.SingleAnswer("B"), single.CorrectAnswer)
	assert.Equal(t, "Basic addition", single.Explanation)

	multi := exam.Questions[1]
	assert.Equal(t, models.MultiTrueFalse, multi.Type)
	assert.Equal(t, models.MultipleAnswer("A", "C"), multi.CorrectAnswer)

	essay := exam.Questions[2]
	assert.Equal(t, models.Essay, essay.Type)
	assert.True(t, essay.CorrectAnswer.IsEmpty())

	// The exam is readable back through the catalog collection.
	var collection models.ExamCollection
	ok, err := store.Load(jsonfile.CollectionForGrade("7"), &collection)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, collection.Exams, 1)
	assert.Equal(t, exam.ID, collection.Exams[0].ID)
}

func TestImportExam_AppendsToExistingCatalog(t *testing.T) {
	im, store := newImporter(t)
	ctx := context.Background()

	require.NoError(t, store.Save(jsonfile.CollectionForGrade("6"), models.ExamCollection{
		Exams: []models.ExamDefinition{{ID: "existing", Grade: "6", Title: "Old exam"}},
	}))

	_, err := im.ImportExam(ctx, "6", ImportRequest{
		Title: "New exam",
		File: workbook(t, [][]string{
			{"1", "Pick A", "yes", "no", "", "", "A", "", ""},
		}),
	})
	require.NoError(t, err)

	var collection models.ExamCollection
	_, err = store.Load(jsonfile.CollectionForGrade("6"), &collection)
	require.NoError(t, err)
	require.Len(t, collection.Exams, 2)
	assert.Equal(t, "existing", collection.Exams[0].ID)
}

func TestImportExam_Defaults(t *testing.T) {
	im, _ := newImporter(t)

	// Missing type defaults to single choice, missing limit to 15 minutes,
	// missing numbers fall back to the row position.
	exam, err := im.ImportExam(context.Background(), "8", ImportRequest{
		Title: "  Padded title  ",
		File: workbook(t, [][]string{
			headerRow,
			{"", "Pick A", "yes", "no", "", "", "a", "", ""},
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Padded title", exam.Title)
	assert.Equal(t, 15, exam.TimeLimitMinutes)
	require.Len(t, exam.Questions, 1)
	assert.Equal(t, 1, exam.Questions[0].ID)
	assert.Equal(t, models.SingleChoice, exam.Questions[0].Type)
	assert.Equal(t, models.SingleAnswer("A"), exam.Questions[0].CorrectAnswer)
}

func TestImportExam_RejectsBadWorkbooks(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{"no questions", [][]string{headerRow}},
		{"empty question text", [][]string{{"1", "", "a", "b", "", "", "A", "", ""}}},
		{"single choice with one option", [][]string{{"1", "Pick", "only", "", "", "", "A", "tl1", ""}}},
		{"single choice without key", [][]string{{"1", "Pick", "a", "b", "", "", "", "tl1", ""}}},
		{"tl2 with three options", [][]string{{"1", "Mark", "a", "b", "c", "", "A", "tl2", ""}}},
		{"tl2 without key", [][]string{{"1", "Mark", "a", "b", "c", "d", "", "tl2", ""}}},
		{"unknown type", [][]string{{"1", "Pick", "a", "b", "", "", "A", "matching", ""}}},
		{"duplicate numbers", [][]string{
			{"1", "First", "a", "b", "", "", "A", "", ""},
			{"1", "Second", "a", "b", "", "", "B", "", ""},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im, _ := newImporter(t)
			_, err := im.ImportExam(context.Background(), "6", ImportRequest{
				Title: "Broken",
				File:  workbook(t, tt.rows),
			})
			assert.ErrorIs(t, err, ErrInvalidWorkbook)
		})
	}
}

func TestImportExam_RequiresTitle(t *testing.T) {
	im, _ := newImporter(t)

	_, err := im.ImportExam(context.Background(), "6", ImportRequest{
		Title: "   ",
		File:  workbook(t, [][]string{{"1", "Pick A", "a", "b", "", "", "A", "", ""}}),
	})
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}

func TestImportExam_RejectsNonWorkbookBytes(t *testing.T) {
	im, _ := newImporter(t)

	_, err := im.ImportExam(context.Background(), "6", ImportRequest{
		Title: "Garbage",
		File:  strings.NewReader("this is not a zip archive"),
	})
	assert.ErrorIs(t, err, ErrInvalidWorkbook)
}

func TestImportExam_SkipsBlankRows(t *testing.T) {
	im, _ := newImporter(t)

	exam, err := im.ImportExam(context.Background(), "9", ImportRequest{
		Title: "Sparse sheet",
		File: workbook(t, [][]string{
			headerRow,
			{"1", "Pick A", "a", "b", "", "", "A", "", ""},
			{"", "", "", "", "", "", "", "", ""},
			{"2", "Pick B", "a", "b", "", "", "B", "", ""},
		}),
	})
	require.NoError(t, err)
	require.Len(t, exam.Questions, 2)
	assert.Equal(t, 2, exam.Questions[1].ID)
}

package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/repositories/jsonfile"
	"github.com/eduviet/exam-service/internal/storage"
	"github.com/eduviet/exam-service/internal/utils"
)

// ErrInvalidWorkbook marks import failures caused by the uploaded file
// rather than by the service.
var ErrInvalidWorkbook = errors.New("invalid exam workbook")

// Expected sheet columns, in order.
const (
	colNumber = iota
	colQuestion
	colOptionA
	colOptionB
	colOptionC
	colOptionD
	colCorrect
	colType
	colExplanation
)

var optionKeys = []string{"A", "B", "C", "D"}

// Importer appends teacher-authored exams from XLSX workbooks into the
// per-grade catalog collections. This is the authoring-side counterpart of
// the read-only catalog accessor.
type Importer struct {
	store  storage.Store
	logger utils.Logger
}

func New(store storage.Store, logger utils.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

type ImportRequest struct {
	Title            string
	TimeLimitMinutes int
	File             io.Reader
}

// ImportExam parses the workbook, validates every question and appends the
// resulting definition to the grade's catalog collection.
func (im *Importer) ImportExam(ctx context.Context, grade string, req ImportRequest) (*models.ExamDefinition, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: exam title is required", ErrInvalidWorkbook)
	}
	timeLimit := req.TimeLimitMinutes
	if timeLimit <= 0 {
		timeLimit = 15
	}

	questions, err := parseQuestions(req.File)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: workbook contains no questions", ErrInvalidWorkbook)
	}

	exam := &models.ExamDefinition{
		ID:               "exam_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
		Grade:            grade,
		Title:            strings.TrimSpace(req.Title),
		TimeLimitMinutes: timeLimit,
		Questions:        questions,
	}

	collection := jsonfile.CollectionForGrade(grade)
	lock := im.store.Lock(collection)
	lock.Lock()
	defer lock.Unlock()

	var existing models.ExamCollection
	if _, err := im.store.Load(collection, &existing); err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	existing.Exams = append(existing.Exams, *exam)
	if err := im.store.Save(collection, existing); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}

	im.logger.Info("Imported exam into catalog",
		"exam_id", exam.ID,
		"grade", grade,
		"questions", len(exam.Questions))
	return exam, nil
}

func parseQuestions(file io.Reader) ([]models.Question, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidWorkbook)
	}
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}

	var questions []models.Question
	seen := make(map[int]bool)
	for i, row := range rows {
		if isHeaderRow(i, row) || isEmptyRow(row) {
			continue
		}
		q, err := parseQuestionRow(row, len(questions)+1)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidWorkbook, i+1, err)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("%w: row %d: duplicate question number %d", ErrInvalidWorkbook, i+1, q.ID)
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}
	return questions, nil
}

func isHeaderRow(index int, row []string) bool {
	if index != 0 || len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[colNumber]))
	return err != nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func parseQuestionRow(row []string, fallbackNumber int) (models.Question, error) {
	q := models.Question{
		Text: cell(row, colQuestion),
		Type: models.QuestionType(strings.ToLower(cell(row, colType))),
	}
	if q.Text == "" {
		return q, fmt.Errorf("question text is empty")
	}
	if q.Type == "" {
		q.Type = models.SingleChoice
	}

	number, err := strconv.Atoi(cell(row, colNumber))
	if err != nil || number <= 0 {
		number = fallbackNumber
	}
	q.Number = number
	q.ID = number

	q.Options = make(map[string]string)
	for i, key := range optionKeys {
		if text := cell(row, colOptionA+i); text != "" {
			q.Options[key] = text
		}
	}
	q.Explanation = cell(row, colExplanation)

	correct := cell(row, colCorrect)
	switch q.Type {
	case models.SingleChoice:
		if len(q.Options) < 2 {
			return q, fmt.Errorf("single-choice question needs at least 2 options")
		}
		if correct == "" {
			return q, fmt.Errorf("missing correct answer")
		}
		q.CorrectAnswer = models.SingleAnswer(strings.ToUpper(correct))
	case models.MultiTrueFalse:
		if len(q.Options) != 4 {
			return q, fmt.Errorf("true/false question needs exactly 4 options, got %d", len(q.Options))
		}
		tokens := splitTokens(correct)
		if len(tokens) == 0 {
			return q, fmt.Errorf("missing correct answers")
		}
		q.CorrectAnswer = models.MultipleAnswer(tokens...)
	case models.Essay:
		// Essays carry no machine-gradable key.
		q.CorrectAnswer = models.Answer{Kind: models.AnswerNone}
	default:
		return q, fmt.Errorf("unknown question type %q", q.Type)
	}

	return q, nil
}

func splitTokens(value string) []string {
	var tokens []string
	for _, part := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == ' '
	}) {
		if token := strings.ToUpper(strings.TrimSpace(part)); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

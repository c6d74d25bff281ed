package scoring

import (
	"math"
	"strconv"

	"github.com/eduviet/exam-service/internal/models"
)

// GradeResult aggregates one graded submission. The grading service wraps
// it into a persisted ResultRecord.
type GradeResult struct {
	Score          float64
	CorrectCount   int
	TotalQuestions int
	Details        []models.GradeDetail
}

// Grade scores a submitted answer set against an exam definition. Malformed
// or absent answers for individual questions degrade to incorrect; Grade
// itself never fails.
func Grade(exam *models.ExamDefinition, answers models.AnswerSet) GradeResult {
	result := GradeResult{
		TotalQuestions: len(exam.Questions),
		Details:        make([]models.GradeDetail, 0, len(exam.Questions)),
	}

	total := 0.0
	for _, q := range exam.Questions {
		detail := gradeQuestion(q, answers[strconv.Itoa(q.ID)])
		if detail.IsCorrect {
			result.CorrectCount++
		}
		total += detail.Score
		result.Details = append(result.Details, detail)
	}

	result.Score = FinalScore(total, result.TotalQuestions)
	return result
}

func gradeQuestion(q models.Question, answer models.Answer) models.GradeDetail {
	detail := models.GradeDetail{
		QuestionID:    strconv.Itoa(q.ID),
		UserAnswer:    answer,
		CorrectAnswer: q.CorrectAnswer,
		Type:          q.EffectiveType(),
	}

	switch detail.Type {
	case models.MultiTrueFalse:
		mistakes := symmetricDifference(NormalizeSet(q.CorrectAnswer), NormalizeSet(answer))
		detail.Score = PartialScore(mistakes)
		detail.IsCorrect = mistakes == 0
	case models.Essay:
		// Essays are reviewed outside the automated path.
	default:
		correct := NormalizeSet(q.CorrectAnswer)
		// An exam with an empty key cannot be matched by an empty answer.
		if len(correct) > 0 && setsEqual(correct, NormalizeSet(answer)) {
			detail.Score = 1.0
			detail.IsCorrect = true
		}
	}

	return detail
}

// PartialScore maps the mistake count of a four-part true/false question to
// its credit: 0 mistakes give full credit, each further mistake roughly
// halves it, four or more give nothing.
func PartialScore(mistakes int) float64 {
	switch {
	case mistakes <= 0:
		return 1.0
	case mistakes == 1:
		return 0.5
	case mistakes == 2:
		return 0.25
	case mistakes == 3:
		return 0.1
	default:
		return 0.0
	}
}

// FinalScore converts a raw per-question score sum to the 0-10 scale,
// rounded to one decimal place. Empty exams score 0.
func FinalScore(totalScore float64, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	return math.Round(totalScore/float64(totalQuestions)*10*10) / 10
}

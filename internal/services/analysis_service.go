package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	openai "github.com/sashabaranov/go-openai"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/utils"
)

// Completer is the opaque text-completion collaborator. The analysis
// service only needs one prompt in, one reply out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type openaiCompleter struct {
	client *openai.Client
	model  string
}

// NewOpenAICompleter builds a Completer over an OpenAI-compatible endpoint.
func NewOpenAICompleter(apiKey, baseURL, model string) Completer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openaiCompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *openaiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

type analysisService struct {
	completer Completer
	logger    utils.Logger
}

// NewAnalysisService wraps a completer; completer may be nil, in which case
// every analysis is the deterministic fallback.
func NewAnalysisService(completer Completer, logger utils.Logger) AnalysisService {
	return &analysisService{completer: completer, logger: logger}
}

var analysisJSONPattern = regexp.MustCompile(`(?s)\{[^{}]*"overall_assessment"[^{}]*\}`)

func (s *analysisService) Analyze(ctx context.Context, result *models.ResultRecord) *models.ResultAnalysis {
	percentage := 0.0
	if result.TotalQuestions > 0 {
		percentage = float64(result.CorrectCount) / float64(result.TotalQuestions) * 100
	}

	if s.completer == nil {
		return fallbackAnalysis(result.Score, percentage)
	}

	reply, err := s.completer.Complete(ctx, buildAnalysisPrompt(result, percentage))
	if err != nil {
		s.logger.Warn("AI analysis unavailable, using fallback",
			"result_id", result.ID, "error", err)
		return fallbackAnalysis(result.Score, percentage)
	}

	analysis, err := parseAnalysisReply(reply)
	if err != nil {
		s.logger.Warn("AI analysis reply unusable, using fallback",
			"result_id", result.ID, "error", err)
		return fallbackAnalysis(result.Score, percentage)
	}
	return analysis
}

func buildAnalysisPrompt(result *models.ResultRecord, percentage float64) string {
	return fmt.Sprintf(`You are an educational assistant. Analyze a student's exam result.

Exam: %s
Score: %.1f/10
Correct answers: %d/%d (%.1f%%)

Reply with a single JSON object and nothing else, with these fields:
- "overall_assessment": short, encouraging overview (2-3 sentences)
- "strengths": 2-3 bullet points, one per line prefixed with "• "
- "weaknesses": 2-3 gentle improvement points, same format
- "study_plan": 3-4 concrete next steps, same format
- "encouragement": one warm closing sentence

Keep the tone constructive and suitable for middle-school students.`,
		result.ExamTitle, result.Score, result.CorrectCount, result.TotalQuestions, percentage)
}

func parseAnalysisReply(reply string) (*models.ResultAnalysis, error) {
	match := analysisJSONPattern.FindString(reply)
	if match == "" {
		return nil, fmt.Errorf("no analysis object in reply")
	}

	var analysis models.ResultAnalysis
	if err := json.Unmarshal([]byte(match), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	if analysis.OverallAssessment == "" || analysis.Strengths == "" ||
		analysis.Weaknesses == "" || analysis.StudyPlan == "" ||
		analysis.Encouragement == "" {
		return nil, fmt.Errorf("analysis is missing required fields")
	}
	return &analysis, nil
}

// fallbackAnalysis is the deterministic, score-banded summary used whenever
// the AI collaborator fails. Result display never depends on the AI call.
func fallbackAnalysis(score, percentage float64) *models.ResultAnalysis {
	analysis := &models.ResultAnalysis{
		StudyPlan: "• Review the core theory for 30 minutes a day\n" +
			"• Work through 5-10 similar practice questions\n" +
			"• Note anything unclear and ask your teacher\n" +
			"• Re-test yourself regularly",
	}

	switch {
	case score >= 8:
		analysis.OverallAssessment = "Excellent work! You have shown a solid command of this material. Keep it up!"
		analysis.Strengths = "• Strong grasp of the fundamentals\n• Accurate work under time pressure\n• Good logical reasoning"
		analysis.Weaknesses = "• Could work on answering speed\n• Try some harder problem types"
		analysis.Encouragement = "Fantastic result - keep that momentum going!"
	case score >= 5:
		analysis.OverallAssessment = fmt.Sprintf("Good effort! You completed %.0f%% of the exam correctly. A little more and you will reach the top band.", percentage)
		analysis.Strengths = "• Stable foundation of knowledge\n• Clear effort in your preparation\n• Good potential to improve"
		analysis.Weaknesses = "• A few topics still need review\n• Practice more question variations\n• Read the questions carefully"
		analysis.Encouragement = "You are on the right track - push a little further!"
	default:
		analysis.OverallAssessment = "You completed the exam, and that is a good starting point to learn and improve from."
		analysis.Strengths = "• Positive attitude toward learning\n• Willingness to take on the exam\n• Ready to learn and improve"
		analysis.Weaknesses = "• Revisit the core concepts\n• Set aside regular revision time\n• Do more practice exercises"
		analysis.Encouragement = "Don't be discouraged - every attempt is a chance to improve!"
	}

	return analysis
}

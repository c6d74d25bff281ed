package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/models"
	"github.com/eduviet/exam-service/internal/services"
	"github.com/eduviet/exam-service/internal/utils"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
	gradingService services.GradingService
}

type SubmitBody struct {
	Answers models.AnswerSet `json:"answers"`
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	gradingService services.GradingService,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
		gradingService: gradingService,
	}
}

// StartAttempt begins or resumes a timed attempt. `?reset=yes` discards any
// running timer and grants the full budget.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")
	userID, _ := currentUser(c)

	h.LogRequest(c, "Starting attempt", "grade", grade, "exam_id", examID)

	resp, err := h.attemptService.StartOrResume(c.Request.Context(), &services.StartAttemptRequest{
		StudentID:  userID,
		Grade:      grade,
		ExamID:     examID,
		ForceReset: c.Query("reset") == "yes",
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTimeRemaining is the countdown polling endpoint.
func (h *AttemptHandler) GetTimeRemaining(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")
	userID, _ := currentUser(c)

	remaining, err := h.attemptService.CheckRemaining(c.Request.Context(), userID, grade, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, remaining)
}

// SubmitAttempt grades the submitted answers and persists the result.
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")
	userID, username := currentUser(c)

	var body SubmitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if body.Answers == nil {
		body.Answers = models.AnswerSet{}
	}

	h.LogRequest(c, "Submitting attempt",
		"grade", grade,
		"exam_id", examID,
		"answers_count", len(body.Answers))

	record, err := h.gradingService.Submit(c.Request.Context(), &services.SubmitAttemptRequest{
		StudentID: userID,
		Username:  username,
		Grade:     grade,
		ExamID:    examID,
		Answers:   body.Answers,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Attempt submitted",
		Data:    record.Summary(),
	})
}

// ResetAttempt clears the caller's timer so the next start grants the full
// budget.
func (h *AttemptHandler) ResetAttempt(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")
	userID, _ := currentUser(c)

	if err := h.attemptService.Reset(c.Request.Context(), userID, grade, examID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Attempt reset"})
}

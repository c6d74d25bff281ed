package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/services"
	"github.com/eduviet/exam-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// GetResult returns the caller's latest attempt for one exam, with the
// wrong-answer review and study-feedback analysis attached.
func (h *ResultHandler) GetResult(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")
	userID, _ := currentUser(c)

	view, err := h.resultService.GetResultView(c.Request.Context(), userID, grade, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetHistory lists the caller's results, most recent first.
func (h *ResultHandler) GetHistory(c *gin.Context) {
	userID, _ := currentUser(c)

	records, err := h.resultService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "History loaded",
		Data:    records,
	})
}

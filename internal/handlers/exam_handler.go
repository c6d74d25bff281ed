package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/config"
	"github.com/eduviet/exam-service/internal/importer"
	"github.com/eduviet/exam-service/internal/services"
	"github.com/eduviet/exam-service/internal/utils"
)

type ExamHandler struct {
	BaseHandler
	catalogService services.CatalogService
	resultService  services.ResultService
	examImporter   *importer.Importer
}

func NewExamHandler(
	catalogService services.CatalogService,
	resultService services.ResultService,
	examImporter *importer.Importer,
	logger utils.Logger,
) *ExamHandler {
	return &ExamHandler{
		BaseHandler:    NewBaseHandler(logger),
		catalogService: catalogService,
		resultService:  resultService,
		examImporter:   examImporter,
	}
}

// ListExams returns a grade's catalog entries without answer keys.
func (h *ExamHandler) ListExams(c *gin.Context) {
	grade := c.Param("grade")

	summaries, err := h.catalogService.ListExams(c.Request.Context(), grade)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Exams loaded",
		Data:    summaries,
	})
}

// ImportExam appends a teacher-authored XLSX exam to the grade's catalog.
func (h *ExamHandler) ImportExam(c *gin.Context) {
	grade := c.Param("grade")
	if !config.IsValidGrade(grade) {
		h.handleServiceError(c, services.ErrInvalidGrade)
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing exam workbook upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	timeLimit, _ := strconv.Atoi(c.PostForm("time_limit"))
	h.LogRequest(c, "Importing exam", "grade", grade)

	exam, err := h.examImporter.ImportExam(c.Request.Context(), grade, importer.ImportRequest{
		Title:            c.PostForm("title"),
		TimeLimitMinutes: timeLimit,
		File:             file,
	})
	if err != nil {
		if errors.Is(err, importer.ErrInvalidWorkbook) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid exam workbook",
				Details: err.Error(),
			})
			return
		}
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Exam imported",
		Data:    exam.Summary(),
	})
}

// PurgeResults removes every result of a retired exam.
func (h *ExamHandler) PurgeResults(c *gin.Context) {
	grade := c.Param("grade")
	examID := c.Param("exam_id")

	h.LogRequest(c, "Purging exam results", "grade", grade, "exam_id", examID)

	removed, err := h.resultService.DeleteAllForExam(c.Request.Context(), grade, examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Results purged",
		Data:    gin.H{"removed": removed},
	})
}

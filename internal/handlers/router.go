package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eduviet/exam-service/internal/importer"
	"github.com/eduviet/exam-service/internal/middleware"
	"github.com/eduviet/exam-service/internal/services"
	"github.com/eduviet/exam-service/internal/utils"
)

type HandlerManager struct {
	examHandler    *ExamHandler
	attemptHandler *AttemptHandler
	resultHandler  *ResultHandler
	authenticator  middleware.Authenticator
	logger         utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	examImporter *importer.Importer,
	authenticator middleware.Authenticator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		examHandler:    NewExamHandler(serviceManager.Catalog(), serviceManager.Result(), examImporter, logger),
		attemptHandler: NewAttemptHandler(serviceManager.Attempt(), serviceManager.Grading(), logger),
		resultHandler:  NewResultHandler(serviceManager.Result(), logger),
		authenticator:  authenticator,
		logger:         logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "exam-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthRequired(hm.authenticator, hm.logger))
	{
		exams := v1.Group("/exams")
		{
			exams.GET("/:grade", hm.examHandler.ListExams)
			exams.POST("/:grade/import", middleware.TeacherRequired(), hm.examHandler.ImportExam)
			exams.DELETE("/:grade/:exam_id/results", middleware.TeacherRequired(), hm.examHandler.PurgeResults)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("/:grade/:exam_id/start", hm.attemptHandler.StartAttempt)
			attempts.GET("/:grade/:exam_id/time-remaining", hm.attemptHandler.GetTimeRemaining)
			attempts.POST("/:grade/:exam_id/submit", hm.attemptHandler.SubmitAttempt)
			attempts.POST("/:grade/:exam_id/reset", hm.attemptHandler.ResetAttempt)
		}

		results := v1.Group("/results")
		{
			results.GET("/history", hm.resultHandler.GetHistory)
			results.GET("/:grade/:exam_id", hm.resultHandler.GetResult)
		}
	}
}

package services

import (
	"github.com/eduviet/exam-service/internal/events"
	"github.com/eduviet/exam-service/internal/repositories"
	"github.com/eduviet/exam-service/internal/utils"
)

type serviceManager struct {
	attempt AttemptService
	grading GradingService
	result  ResultService
	catalog CatalogService
}

// ManagerConfig carries the injected dependencies; there is no package
// global state, so tests can assemble a manager over doubles.
type ManagerConfig struct {
	Catalog   repositories.ExamCatalogRepository
	Results   repositories.ResultRepository
	Attempts  repositories.AttemptRepository
	Publisher events.EventPublisher
	Completer Completer
	Logger    utils.Logger
	Validator *utils.Validator

	DefaultTimeLimitMinutes int
}

func NewServiceManager(cfg ManagerConfig) ServiceManager {
	analysis := NewAnalysisService(cfg.Completer, cfg.Logger)
	return &serviceManager{
		attempt: NewAttemptService(cfg.Catalog, cfg.Attempts, cfg.Publisher,
			cfg.Logger, cfg.Validator, cfg.DefaultTimeLimitMinutes),
		grading: NewGradingService(cfg.Catalog, cfg.Results, cfg.Attempts,
			cfg.Publisher, cfg.Logger, cfg.Validator),
		result:  NewResultService(cfg.Results, cfg.Catalog, analysis, cfg.Logger),
		catalog: NewCatalogService(cfg.Catalog, cfg.Logger),
	}
}

func (m *serviceManager) Attempt() AttemptService { return m.attempt }
func (m *serviceManager) Grading() GradingService { return m.grading }
func (m *serviceManager) Result() ResultService   { return m.result }
func (m *serviceManager) Catalog() CatalogService { return m.catalog }

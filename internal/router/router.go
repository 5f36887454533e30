package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthml/healthdata-api/internal/handler"
	"github.com/healthml/healthdata-api/internal/middleware"
	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/service/crud"
	"github.com/healthml/healthdata-api/internal/service/training"
	"github.com/healthml/healthdata-api/pkg/logger"
)

// Backend groups the per-store entity services mounted under one namespace.
type Backend struct {
	Patients   *crud.Service[model.Patient]
	Conditions *crud.Service[model.HealthCondition]
	Lifestyle  *crud.Service[model.LifestyleFactor]
	Metrics    *crud.Service[model.HealthMetric]
	Access     *crud.Service[model.HealthcareAccess]
	Training   *training.Service

	// PatientLookup is set on the document backend only; it serves the
	// integer-ID access path alongside the hex document IDs.
	PatientLookup *handler.PatientLookupHandler
	// AllLatest is the document backend's combined latest-documents view.
	AllLatest *handler.AllLatestHandler
}

// Config carries the router-level settings.
type Config struct {
	Prefix         string
	ProjectName    string
	Version        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// New assembles the gin engine: middleware chain, service banner, health,
// metrics, and the two store namespaces under the configured prefix.
func New(
	cfg Config,
	log *logger.Logger,
	relational Backend,
	document Backend,
	inference *handler.InferenceHandler,
	health *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.CORS())
	if cfg.RateLimitRPS > 0 {
		engine.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ProjectName,
			"version": cfg.Version,
			"docs":    cfg.Prefix,
		})
	})
	engine.GET("/health", health.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group(cfg.Prefix)

	pg := api.Group("/postgres")
	mountBackend(pg, relational)
	inference.Register(pg)

	mg := api.Group("/mongodb")
	mountBackend(mg, document)
	if document.AllLatest != nil {
		mg.GET("/training-data/all/latest", document.AllLatest.AllLatest)
	}

	return engine
}

func mountBackend(rg *gin.RouterGroup, b Backend) {
	patients := rg.Group("/patients")
	handler.NewCRUDHandler[model.Patient, model.PatientRequest](b.Patients).Register(patients)
	if b.PatientLookup != nil {
		b.PatientLookup.Register(patients)
	}

	conditions := rg.Group("/health-conditions")
	handler.NewCRUDHandler[model.HealthCondition, model.HealthConditionRequest](b.Conditions).Register(conditions)

	lifestyle := rg.Group("/lifestyle-factors")
	handler.NewCRUDHandler[model.LifestyleFactor, model.LifestyleFactorRequest](b.Lifestyle).Register(lifestyle)

	metrics := rg.Group("/health-metrics")
	handler.NewCRUDHandler[model.HealthMetric, model.HealthMetricRequest](b.Metrics).Register(metrics)

	access := rg.Group("/healthcare-access")
	handler.NewCRUDHandler[model.HealthcareAccess, model.HealthcareAccessRequest](b.Access).Register(access)

	handler.NewTrainingHandler(b.Training).Register(rg.Group("/training-data"))
}

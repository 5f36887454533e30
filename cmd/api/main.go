package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/healthml/healthdata-api/internal/config"
	"github.com/healthml/healthdata-api/internal/handler"
	"github.com/healthml/healthdata-api/internal/ml"
	"github.com/healthml/healthdata-api/internal/model"
	mongorepo "github.com/healthml/healthdata-api/internal/repository/mongo"
	pgrepo "github.com/healthml/healthdata-api/internal/repository/postgres"
	"github.com/healthml/healthdata-api/internal/router"
	"github.com/healthml/healthdata-api/internal/service/crud"
	"github.com/healthml/healthdata-api/internal/service/inference"
	"github.com/healthml/healthdata-api/internal/service/training"
	"github.com/healthml/healthdata-api/internal/worker"
	"github.com/healthml/healthdata-api/pkg/logger"
	"github.com/healthml/healthdata-api/pkg/messaging/redis"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	log.Info("starting", "service", cfg.ProjectName, "version", cfg.Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgDB, err := pgrepo.NewDB(cfg.Postgres.URL)
	if err != nil {
		log.Fatal(err, "postgres connection failed")
	}
	defer pgDB.Close()

	mongoDB, err := mongorepo.NewDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal(err, "mongodb connection failed")
	}
	defer mongoDB.Client().Disconnect(context.Background())

	if err := mongorepo.EnsureIndexes(ctx, mongoDB); err != nil {
		log.Fatal(err, "mongodb index creation failed")
	}

	// Artifacts load fail-fast: a broken model or scaler means the process
	// must not come up half-working.
	features, err := ml.LoadFeatureNames(cfg.Artifacts.FeaturesPath)
	if err != nil {
		log.Fatal(err, "feature names load failed")
	}
	scaler, err := ml.LoadScaler(cfg.Artifacts.ScalerPath)
	if err != nil {
		log.Fatal(err, "scaler load failed")
	}
	mdl, err := ml.LoadModel(cfg.Artifacts.ModelPath)
	if err != nil {
		log.Fatal(err, "model load failed")
	}

	pgPatients := pgrepo.NewPatientRepository(pgDB)
	pgTraining := pgrepo.NewTrainingDataRepository(pgDB)
	predictions := pgrepo.NewPredictionRepository(pgDB)
	outbox := pgrepo.NewOutboxRepository(pgDB)

	// Foreign keys enforce the patient reference on the relational side, so
	// the services there skip the explicit existence check.
	relational := router.Backend{
		Patients:   crud.NewService[model.Patient](pgPatients, "patient", log),
		Conditions: crud.NewService[model.HealthCondition](pgrepo.NewHealthConditionRepository(pgDB), "health condition", log).WithPatientRef(nil),
		Lifestyle:  crud.NewService[model.LifestyleFactor](pgrepo.NewLifestyleFactorRepository(pgDB), "lifestyle factor", log).WithPatientRef(nil),
		Metrics:    crud.NewService[model.HealthMetric](pgrepo.NewHealthMetricRepository(pgDB), "health metric", log).WithPatientRef(nil),
		Access:     crud.NewService[model.HealthcareAccess](pgrepo.NewHealthcareAccessRepository(pgDB), "healthcare access", log).WithPatientRef(nil),
		Training:   training.NewService(pgTraining, log),
	}

	mongoPatients := mongorepo.NewPatientRepository(mongoDB)
	checkPatient := crud.RefChecker(mongoPatients.Exists)
	mongoPatientSvc := crud.NewService[model.Patient](mongoPatients, "patient", log)
	mongoConditionSvc := crud.NewService[model.HealthCondition](mongorepo.NewHealthConditionRepository(mongoDB), "health condition", log).WithPatientRef(checkPatient)
	mongoLifestyleSvc := crud.NewService[model.LifestyleFactor](mongorepo.NewLifestyleFactorRepository(mongoDB), "lifestyle factor", log).WithPatientRef(checkPatient)
	mongoMetricSvc := crud.NewService[model.HealthMetric](mongorepo.NewHealthMetricRepository(mongoDB), "health metric", log).WithPatientRef(checkPatient)
	mongoAccessSvc := crud.NewService[model.HealthcareAccess](mongorepo.NewHealthcareAccessRepository(mongoDB), "healthcare access", log).WithPatientRef(checkPatient)

	document := router.Backend{
		Patients:      mongoPatientSvc,
		Conditions:    mongoConditionSvc,
		Lifestyle:     mongoLifestyleSvc,
		Metrics:       mongoMetricSvc,
		Access:        mongoAccessSvc,
		Training:      training.NewService(mongorepo.NewTrainingDataRepository(mongoDB), log),
		PatientLookup: handler.NewPatientLookupHandler(mongoPatients),
		AllLatest:     handler.NewAllLatestHandler(mongoPatientSvc, mongoConditionSvc, mongoLifestyleSvc, mongoMetricSvc, mongoAccessSvc),
	}

	inferenceSvc, err := inference.NewService(mdl, scaler, features, pgTraining, predictions, outbox, log)
	if err != nil {
		log.Fatal(err, "inference service init failed")
	}

	if cfg.Redis.URL != "" {
		broker, err := redis.NewBroker(redis.Config{URL: cfg.Redis.URL}, log.Zerolog())
		if err != nil {
			log.Error(err, "redis broker init failed, prediction events stay queued")
		} else {
			defer broker.Close()
			go worker.NewOutboxProcessor(outbox, broker, cfg.Redis.Channel, log).Start(ctx)
		}
	}

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"postgres": func(ctx context.Context) error { return pgrepo.Ping(ctx, pgDB) },
		"mongodb":  func(ctx context.Context) error { return mongorepo.Ping(ctx, mongoDB) },
	})

	engine := router.New(router.Config{
		Prefix:         cfg.APIPrefix,
		ProjectName:    cfg.ProjectName,
		Version:        cfg.Version,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	}, log, relational, document, handler.NewInferenceHandler(inferenceSvc, predictions), health)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr, "model_version", inferenceSvc.ModelVersion())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "shutdown incomplete")
	}
}

func newLogger(cfg *config.Config) *logger.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})
}

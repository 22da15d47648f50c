package routes

import (
	"context"
	"net/http"
	"time"

	"grassroots/warchest/internal/api"
	"grassroots/warchest/internal/db"
	"grassroots/warchest/internal/jobs"
	"grassroots/warchest/internal/logging"
	"grassroots/warchest/internal/metrics"
	"grassroots/warchest/internal/middleware"
	"grassroots/warchest/internal/workers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Background jobs: candidate feed refresh
	candidateSyncJob := jobs.InitializeJobs(
		context.Background(),
		deps.Services.CandidateImport,
	)

	// Queue workers and reconciliation sweeps
	workersContainer := workers.InitWorkers(
		db.PgDB,
		&deps.Services.RedisQueue,
		deps.Services.Donation,
		deps.Repo.Fundraiser,
		deps.Repo.Donation,
		metricsReg,
	)

	jobsHandler := api.NewJobsHandler(candidateSyncJob, workersContainer.QueueMonitor)

	// Register API routes
	RegisterAPIRoutes(r, deps, handlers, jobsHandler)

	return r
}

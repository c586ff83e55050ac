package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/api"
	"github.com/s4ngl/iu-icems-website-sub000/internal/db"
	"github.com/s4ngl/iu-icems-website-sub000/internal/jobs"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/metrics"
	"github.com/s4ngl/iu-icems-website-sub000/internal/middleware"
	"github.com/s4ngl/iu-icems-website-sub000/internal/workers"

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
		AllowedOrigins:   []string{"https://*", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Redis, upSince))

	// Notification workers drain the Redis stream; the hourly job flags
	// expiring certifications
	workers.InitWorkers(context.Background(), deps.Services.Queue, deps.Services.Notifications)
	jobs.InitializeJobs(context.Background(), deps.Services.Certification)

	// Register API routes
	RegisterAPIRoutes(r, handlers, deps)

	return r
}

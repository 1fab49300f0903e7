package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-dinner-planner/docs"

	appLogger "github.com/FACorreiaa/go-dinner-planner/app/logger"
	"github.com/FACorreiaa/go-dinner-planner/internal/api/health"
	"github.com/FACorreiaa/go-dinner-planner/internal/api/planner"
	"github.com/FACorreiaa/go-dinner-planner/internal/web"
)

// Config contains dependencies needed for the router setup
type Config struct {
	PlannerHandler *planner.HandlerImpl
	HealthHandler  *health.HandlerImpl
	WebHandler     *web.HandlerImpl
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// SetupRouter builds the full HTTP handler: server-wide middleware, the JSON
// API under /api, the browser UI at / and the swagger docs.
func SetupRouter(cfg *Config) chi.Router {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5, "application/json", "text/html"))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		if len(cfg.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: cfg.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
				ExposedHeaders: []string{"X-Request-Id"},
				MaxAge:         300,
			}))
		}

		r.Get("/health", cfg.HealthHandler.Health)
		r.Post("/plan-dinners", cfg.PlannerHandler.PlanDinners)
		r.Post("/test-webhook", cfg.PlannerHandler.TestWebhook)
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/", cfg.WebHandler.Form)
	r.Post("/", cfg.WebHandler.Submit)

	return r
}

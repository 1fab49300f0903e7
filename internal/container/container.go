package container

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FACorreiaa/go-dinner-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-dinner-planner/config"
	"github.com/FACorreiaa/go-dinner-planner/internal/api/health"
	"github.com/FACorreiaa/go-dinner-planner/internal/api/planner"
	"github.com/FACorreiaa/go-dinner-planner/internal/router"
	"github.com/FACorreiaa/go-dinner-planner/internal/web"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Metrics        *metrics.AppMetrics
	PlannerService *planner.ServiceImpl
	PlannerHandler *planner.HandlerImpl
	HealthHandler  *health.HandlerImpl
	WebHandler     *web.HandlerImpl
}

// NewContainer wires the relay service and every handler. m may be nil when
// metrics are disabled. httpClient may be nil to use a default client for
// webhook calls.
func NewContainer(cfg *config.Config, m *metrics.AppMetrics, httpClient *http.Client, logger *slog.Logger) *Container {
	webhookClient := planner.NewWebhookClient(httpClient, logger.With(slog.String("component", "webhook_client")))
	plannerService := planner.NewServiceImpl(cfg.Webhook, webhookClient, m, logger.With(slog.String("service", "planner")))

	production := cfg.IsProduction()
	return &Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        m,
		PlannerService: plannerService,
		PlannerHandler: planner.NewHandlerImpl(plannerService, production, plannerService.WebhookURL(), logger),
		HealthHandler:  health.NewHandlerImpl(*cfg, logger),
		WebHandler:     web.NewHandlerImpl(plannerService, production, logger),
	}
}

// Router returns the application's HTTP handler.
func (c *Container) Router() chi.Router {
	return router.SetupRouter(&router.Config{
		PlannerHandler: c.PlannerHandler,
		HealthHandler:  c.HealthHandler,
		WebHandler:     c.WebHandler,
		AllowedOrigins: c.Config.Server.AllowedOrigins,
		RequestTimeout: c.Config.RequestTimeout(),
		Logger:         c.Logger,
	})
}

package health

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/FACorreiaa/go-dinner-planner/config"
	"github.com/FACorreiaa/go-dinner-planner/internal/api"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

type HandlerImpl struct {
	cfg    config.Config
	now    func() time.Time
	logger *slog.Logger
}

func NewHandlerImpl(cfg config.Config, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// Health godoc
// @Summary      Service health
// @Description  Reports liveness and whether the webhook credentials are present. Never calls the webhook.
// @Tags         Health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /health [get]
func (h *HandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	configured := h.cfg.Webhook.Configured()
	h.logger.DebugContext(r.Context(), "Health check", slog.Bool("webhook_configured", configured))

	api.WriteJSONResponse(w, r, http.StatusOK, types.HealthResponse{
		Status:            "ok",
		Timestamp:         h.now().UTC().Format(time.RFC3339),
		Environment:       h.cfg.Environment(),
		WebhookConfigured: configured,
		DeploymentType:    h.cfg.DeploymentType,
		ServerRunning:     true,
	})
}

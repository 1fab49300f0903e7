package planner

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-dinner-planner/internal/api"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

const (
	msgInvalidRequest = "Invalid request data"
	msgPlanFailed     = "Failed to plan dinners. Please try again later."
	msgUnreachable    = "Failed to reach meal planning service"
)

type HandlerImpl struct {
	service    Service
	production bool
	webhookURL string
	logger     *slog.Logger
}

// NewHandlerImpl builds the relay handlers. In production, upstream diagnostics
// are never copied into responses. webhookURL is only used for probe reports and
// must already be redacted.
func NewHandlerImpl(service Service, production bool, webhookURL string, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service:    service,
		production: production,
		webhookURL: webhookURL,
		logger:     logger,
	}
}

// PlanDinners godoc
// @Summary      Plan dinners
// @Description  Validates the request and relays it to the meal-planning webhook. The webhook's JSON body is returned verbatim.
// @Tags         Planner
// @Accept       json
// @Produce      json
// @Param        request body types.PlanRequest true "Plan request"
// @Success      200 {object} types.PlanResponse "Webhook response (passed through)"
// @Failure      400 {object} types.ErrorResponse "Invalid request data"
// @Failure      500 {object} types.ErrorResponse "Configuration or upstream failure"
// @Router       /plan-dinners [post]
func (h *HandlerImpl) PlanDinners(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "PlanDinners", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/plan-dinners"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanDinners"))
	l.DebugContext(ctx, "Plan dinners handler invoked")

	body, err := api.ReadBody(w, r)
	if err != nil {
		l.WarnContext(ctx, "Failed to read request body", slog.Any("error", err))
		api.WriteError(w, r, http.StatusBadRequest, types.ErrorResponse{
			Message: msgInvalidRequest,
			Errors:  []types.FieldViolation{{Field: "body", Code: types.CodeInvalidJSON, Message: err.Error()}},
		})
		return
	}

	req, err := types.ParsePlanRequest(body)
	if err != nil {
		var ve *types.ValidationError
		if errors.As(err, &ve) {
			l.InfoContext(ctx, "Rejected invalid plan request", slog.Any("violations", ve.Violations))
			api.WriteError(w, r, http.StatusBadRequest, types.ErrorResponse{
				Message: msgInvalidRequest,
				Errors:  ve.Violations,
			})
			return
		}
		l.ErrorContext(ctx, "Unexpected validation failure", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, msgPlanFailed)
		return
	}
	span.SetAttributes(attribute.Int("planner.dinner_count", req.DinnerCount))

	result, err := h.service.PlanDinners(ctx, req)
	if err != nil {
		h.writeRelayError(w, r, l, err)
		return
	}

	l.InfoContext(ctx, "Dinners planned", slog.Int("dinner_count", req.DinnerCount))
	api.WriteRawJSON(w, r, http.StatusOK, result)
}

// TestWebhook godoc
// @Summary      Probe the webhook
// @Description  Sends a fixed test payload to the configured webhook and reports how it answered.
// @Tags         Planner
// @Produce      json
// @Success      200 {object} types.WebhookProbeResult
// @Failure      500 {object} types.WebhookProbeFailure
// @Router       /test-webhook [post]
func (h *HandlerImpl) TestWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlannerHandler").Start(r.Context(), "TestWebhook", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/test-webhook"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "TestWebhook"))

	result, err := h.service.ProbeWebhook(ctx)
	if err != nil {
		failure := types.WebhookProbeFailure{
			Success: false,
			Error:   err.Error(),
			Type:    string(KindUpstreamNetwork),
			URL:     h.webhookURL,
		}
		if re, ok := AsRelayError(err); ok {
			failure.Error = re.Message
			failure.Type = string(re.Kind)
		}
		if h.production && failure.Type == string(KindUpstreamNetwork) {
			failure.Error = msgUnreachable
		}
		l.ErrorContext(ctx, "Webhook probe failed", slog.Any("error", err))
		api.WriteJSONResponse(w, r, http.StatusInternalServerError, failure)
		return
	}

	// Error text from the webhook stays out of production responses.
	if h.production && !result.Success {
		result.ResponsePreview = ""
	}
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *HandlerImpl) writeRelayError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	re, ok := AsRelayError(err)
	if !ok {
		l.ErrorContext(r.Context(), "Unexpected relay failure", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, msgPlanFailed)
		return
	}

	resp := types.ErrorResponse{Message: re.Message}
	if h.production {
		if re.Kind == KindUpstreamNetwork {
			resp.Message = msgUnreachable
		}
	} else {
		resp.Debug = re.Detail
	}
	l.ErrorContext(r.Context(), "Relay failed",
		slog.String("kind", string(re.Kind)),
		slog.Int("upstream_status", re.StatusCode),
		slog.Any("error", err))
	api.WriteError(w, r, http.StatusInternalServerError, resp)
}

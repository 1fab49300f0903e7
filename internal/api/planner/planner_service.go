package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-dinner-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-dinner-planner/config"
	"github.com/FACorreiaa/go-dinner-planner/internal/types"
)

const (
	maxDetailBytes  = 1000
	maxPreviewBytes = 500

	// ProbePersonalization is sent by the test-webhook probe.
	ProbePersonalization = "Test request from dinner planner"
)

var _ Service = (*ServiceImpl)(nil)

// Service relays plan requests to the automation webhook.
type Service interface {
	// PlanDinners forwards a validated request and returns the webhook's JSON
	// body untouched. Failures are *RelayError values.
	PlanDinners(ctx context.Context, req types.PlanRequest) (json.RawMessage, error)
	// ProbeWebhook sends a fixed test payload and reports how the webhook answered.
	ProbeWebhook(ctx context.Context) (*types.WebhookProbeResult, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	webhook config.Webhook
	client  *WebhookClient
	metrics *metrics.AppMetrics
}

func NewServiceImpl(webhook config.Webhook, client *WebhookClient, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	if webhook.Timeout <= 0 {
		webhook.Timeout = config.DefaultWebhookTimeout
	}
	if webhook.ProbeTimeout <= 0 {
		webhook.ProbeTimeout = config.DefaultWebhookProbeTimeout
	}
	return &ServiceImpl{
		logger:  logger,
		webhook: webhook,
		client:  client,
		metrics: m,
	}
}

func (s *ServiceImpl) PlanDinners(ctx context.Context, req types.PlanRequest) (json.RawMessage, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "PlanDinners", trace.WithAttributes(
		attribute.Int("planner.dinner_count", req.DinnerCount),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "PlanDinners"), slog.Int("dinner_count", req.DinnerCount))

	if err := s.checkConfigured(); err != nil {
		l.ErrorContext(ctx, "Webhook not configured", slog.Any("error", err))
		span.SetStatus(codes.Error, "webhook not configured")
		s.metrics.RecordPlanRequest(ctx, string(KindConfiguration))
		return nil, err
	}

	resp, err := s.send(ctx, types.NewUpstreamPayload(req), s.webhook.Timeout)
	if err != nil {
		l.ErrorContext(ctx, "Webhook call failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook call failed")
		return nil, s.fail(ctx, err)
	}

	if !resp.OK() {
		err := &RelayError{
			Kind:       KindUpstreamHTTP,
			Message:    fmt.Sprintf("Webhook request failed with status %d", resp.StatusCode),
			Detail:     truncate(string(resp.Body), maxDetailBytes),
			StatusCode: resp.StatusCode,
		}
		l.ErrorContext(ctx, "Webhook returned error status",
			slog.Int("status", resp.StatusCode),
			slog.String("body", err.Detail))
		span.SetStatus(codes.Error, resp.Status)
		return nil, s.fail(ctx, err)
	}

	if !json.Valid(resp.Body) {
		err := &RelayError{
			Kind:       KindInvalidResponse,
			Message:    "Meal planning service returned an invalid response",
			Detail:     truncate(string(resp.Body), maxDetailBytes),
			StatusCode: resp.StatusCode,
		}
		l.ErrorContext(ctx, "Webhook returned non-JSON body", slog.String("body", err.Detail))
		span.SetStatus(codes.Error, "invalid webhook body")
		return nil, s.fail(ctx, err)
	}

	l.InfoContext(ctx, "Webhook call succeeded", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(resp.Body)))
	s.metrics.RecordPlanRequest(ctx, "success")
	return json.RawMessage(resp.Body), nil
}

func (s *ServiceImpl) ProbeWebhook(ctx context.Context) (*types.WebhookProbeResult, error) {
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "ProbeWebhook")
	defer span.End()

	l := s.logger.With(slog.String("method", "ProbeWebhook"))

	if err := s.checkConfigured(); err != nil {
		l.WarnContext(ctx, "Probe skipped, webhook not configured", slog.Any("error", err))
		s.metrics.RecordProbe(ctx, false)
		return nil, err
	}

	payload := types.UpstreamPayload{
		NumberOfMeals:   1,
		Personalization: ProbePersonalization,
		MealTypes:       []string{types.MealTypeDinner},
	}
	resp, err := s.send(ctx, payload, s.webhook.ProbeTimeout)
	if err != nil {
		l.ErrorContext(ctx, "Probe failed", slog.Any("error", err))
		span.RecordError(err)
		s.metrics.RecordProbe(ctx, false)
		return nil, err
	}

	l.InfoContext(ctx, "Probe answered", slog.Int("status", resp.StatusCode))
	s.metrics.RecordProbe(ctx, resp.OK())
	return &types.WebhookProbeResult{
		Success:         resp.OK(),
		Status:          resp.StatusCode,
		StatusText:      statusText(resp),
		URL:             s.WebhookURL(),
		ResponsePreview: truncate(string(resp.Body), maxPreviewBytes),
	}, nil
}

// WebhookURL is the configured URL with credentials removed.
func (s *ServiceImpl) WebhookURL() string {
	return RedactURL(s.webhook.URL)
}

func (s *ServiceImpl) checkConfigured() error {
	missing := s.webhook.Missing()
	if len(missing) == 0 {
		return nil
	}
	return &RelayError{
		Kind:    KindConfiguration,
		Message: fmt.Sprintf("Webhook not configured. Please set %s.", strings.Join(missing, ", ")),
	}
}

// send performs exactly one webhook call bounded by timeout. The deadline is
// attached to the request context so expiry aborts the in-flight transfer.
func (s *ServiceImpl) send(ctx context.Context, payload types.UpstreamPayload, timeout time.Duration) (*WebhookResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.client.Post(callCtx, s.webhook, payload)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	s.metrics.RecordUpstreamCall(ctx, time.Since(start), status)

	if err != nil {
		return nil, classifyTransportError(callCtx, err, timeout)
	}
	return resp, nil
}

func classifyTransportError(callCtx context.Context, err error, timeout time.Duration) *RelayError {
	var netErr net.Error
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) ||
		errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return &RelayError{
			Kind:    KindUpstreamTimeout,
			Message: fmt.Sprintf("Request to meal planning service timed out after %s", timeout),
			Err:     err,
		}
	}
	return &RelayError{
		Kind:    KindUpstreamNetwork,
		Message: fmt.Sprintf("Failed to reach meal planning service: %s", transportCause(err)),
		Err:     err,
	}
}

// transportCause drops the *url.Error wrapper, which repeats the method and URL.
func transportCause(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}

func (s *ServiceImpl) fail(ctx context.Context, err error) error {
	if re, ok := AsRelayError(err); ok {
		s.metrics.RecordUpstreamError(ctx, string(re.Kind))
		s.metrics.RecordPlanRequest(ctx, string(re.Kind))
	}
	return err
}

func statusText(resp *WebhookResponse) string {
	// resp.Status is "503 Service Unavailable"
	if _, text, ok := strings.Cut(resp.Status, " "); ok {
		return text
	}
	return resp.Status
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.ToValidUTF8(s[:limit], "")
}

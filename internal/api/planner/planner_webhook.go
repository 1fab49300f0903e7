package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-dinner-planner/config"
)

const (
	// UserAgent identifies the relay to the webhook.
	UserAgent = "DinnerPlanner/1.0"

	maxWebhookResponseBytes = 5 << 20
)

// WebhookResponse is a fully-read webhook reply.
type WebhookResponse struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the webhook answered with a 2xx status.
func (r *WebhookResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// WebhookClient performs authenticated POSTs to the automation webhook. It never
// retries; the deadline is taken from ctx.
type WebhookClient struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWebhookClient(httpClient *http.Client, logger *slog.Logger) *WebhookClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &WebhookClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Post sends payload as JSON with HTTP Basic credentials and reads the whole reply.
func (c *WebhookClient) Post(ctx context.Context, wh config.Webhook, payload any) (*WebhookResponse, error) {
	ctx, span := otel.Tracer("WebhookClient").Start(ctx, "WebhookClient.Post", trace.WithAttributes(
		attribute.String("webhook.url", RedactURL(wh.URL)),
	))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.SetBasicAuth(wh.Username, wh.Password)

	c.logger.DebugContext(ctx, "Calling webhook",
		slog.String("url", RedactURL(wh.URL)),
		slog.Int("payload_bytes", len(body)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook request failed")
		return nil, fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	data, err := readAllWithLimit(resp.Body, maxWebhookResponseBytes)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("read webhook response: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, resp.Status)
	}
	return &WebhookResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       data,
	}, nil
}

func readAllWithLimit(r io.Reader, limit int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: limit + 1}
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeded limit of %d bytes", limit)
	}
	return data, nil
}

// RedactURL strips credentials and the query string so a webhook URL can be
// logged or reported back to callers.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid URL"
	}
	if u.Host == "" {
		return raw
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

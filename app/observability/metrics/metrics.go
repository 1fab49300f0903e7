package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal         metric.Int64Counter
	UpstreamDurationSeconds   metric.Float64Histogram
	UpstreamErrorsTotal       metric.Int64Counter
	WebhookProbeRequestsTotal metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.PlanRequestsTotal, err = meter.Int64Counter(
		"plan_requests_total",
		metric.WithDescription("Total number of plan-dinners requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create plan_requests_total: %w", err)
	}

	m.UpstreamDurationSeconds, err = meter.Float64Histogram(
		"upstream_request_duration_seconds",
		metric.WithDescription("Duration of webhook calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create upstream_request_duration_seconds: %w", err)
	}

	m.UpstreamErrorsTotal, err = meter.Int64Counter(
		"upstream_errors_total",
		metric.WithDescription("Total number of failed webhook calls by kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create upstream_errors_total: %w", err)
	}

	m.WebhookProbeRequestsTotal, err = meter.Int64Counter(
		"webhook_probe_requests_total",
		metric.WithDescription("Total number of test-webhook probes"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create webhook_probe_requests_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("DinnerPlanner"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// The recorders below are nil-safe so services can run without instruments in tests.

func (m *AppMetrics) RecordPlanRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.PlanRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AppMetrics) RecordUpstreamCall(ctx context.Context, elapsed time.Duration, status int) {
	if m == nil {
		return
	}
	m.UpstreamDurationSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.Int("status", status)))
}

func (m *AppMetrics) RecordUpstreamError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.UpstreamErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *AppMetrics) RecordProbe(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.WebhookProbeRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/healthverse/logger"
)

// InitMeter initializes the OpenTelemetry meter provider.
// The returned provider must be shut down on application exit.
func InitMeter(ctx context.Context, cfg Config, res Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	r, err := newResource(res)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(r),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", res.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded by the consultation pipeline.
type Metrics struct {
	consultations metric.Int64Counter
	stageDuration metric.Float64Histogram
	stageTotal    metric.Int64Counter
	fallbackTotal metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	consultations, err := meter.Int64Counter("consultation.total",
		metric.WithDescription("Total number of consultations run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating consultation.total counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("consultation.stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating consultation.stage.duration histogram: %w", err)
	}

	stageTotal, err := meter.Int64Counter("consultation.stage.total",
		metric.WithDescription("Pipeline stage outcomes by stage and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating consultation.stage.total counter: %w", err)
	}

	fallbackTotal, err := meter.Int64Counter("synthesis.fallback.total",
		metric.WithDescription("Times speech synthesis fell back to the secondary provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating synthesis.fallback.total counter: %w", err)
	}

	return &Metrics{
		consultations: consultations,
		stageDuration: stageDuration,
		stageTotal:    stageTotal,
		fallbackTotal: fallbackTotal,
	}, nil
}

// RecordConsultation counts one finished consultation.
func (m *Metrics) RecordConsultation(ctx context.Context) {
	if m == nil {
		return
	}
	m.consultations.Add(ctx, 1)
}

// RecordStage records a stage outcome and its duration.
func (m *Metrics) RecordStage(ctx context.Context, stage, provider, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
	m.stageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordFallback counts a switch from one provider to its fallback.
func (m *Metrics) RecordFallback(ctx context.Context, from, to string) {
	if m == nil {
		return
	}
	m.fallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

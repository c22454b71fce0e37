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

	"github.com/kbukum/diarize/logger"
)

// Status values recorded on metrics and spans.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows plain HTTP to the collector.
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       defaultEndpoint,
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down to flush readings; a
// one-shot run exports on shutdown rather than waiting for the interval.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded for diarization runs.
type Metrics struct {
	runTotal         metric.Int64Counter
	runDuration      metric.Float64Histogram
	segmentCount     metric.Int64Histogram
	errorTotal       metric.Int64Counter
	pipelineTotal    metric.Int64Counter
	pipelineDuration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("diarization.runs",
		metric.WithDescription("Total number of diarization runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.runs counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("diarization.duration",
		metric.WithDescription("Duration of diarization runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.duration histogram: %w", err)
	}

	segmentCount, err := meter.Int64Histogram("diarization.segments",
		metric.WithDescription("Number of segments produced per run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.segments histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("diarization.errors",
		metric.WithDescription("Failed runs by error category"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.errors counter: %w", err)
	}

	pipelineTotal, err := meter.Int64Counter("diarization.pipeline.calls",
		metric.WithDescription("Calls made to the diarization pipeline"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.pipeline.calls counter: %w", err)
	}

	pipelineDuration, err := meter.Float64Histogram("diarization.pipeline.duration",
		metric.WithDescription("Duration of pipeline calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating diarization.pipeline.duration histogram: %w", err)
	}

	return &Metrics{
		runTotal:         runTotal,
		runDuration:      runDuration,
		segmentCount:     segmentCount,
		errorTotal:       errorTotal,
		pipelineTotal:    pipelineTotal,
		pipelineDuration: pipelineDuration,
	}, nil
}

// RecordRun records a completed run. segments is only recorded on success.
func (m *Metrics) RecordRun(ctx context.Context, backend, status string, duration time.Duration, segments int) {
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	)
	m.runTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
	if status == StatusOK {
		m.segmentCount.Record(ctx, int64(segments), metric.WithAttributes(attribute.String("backend", backend)))
	}
}

// RecordError records a failed run by error category.
func (m *Metrics) RecordError(ctx context.Context, category, backend string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("backend", backend),
	))
}

// RecordPipelineCall records a single call into the pipeline backend.
func (m *Metrics) RecordPipelineCall(ctx context.Context, backend, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	)
	m.pipelineTotal.Add(ctx, 1, attrs)
	m.pipelineDuration.Record(ctx, duration.Seconds(), attrs)
}

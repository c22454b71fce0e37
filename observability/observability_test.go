package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder installs an in-memory tracer provider for the test.
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return rec
}

// collect returns the metrics recorded on a manual reader, keyed by name.
func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func newRecordedMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	return metrics, reader
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("diarize")

	if cfg.ServiceName != "diarize" {
		t.Errorf("expected ServiceName 'diarize', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("diarize")
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Tracing: TracingConfig{Enabled: true}}
	cfg.ApplyDefaults()

	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("expected sample rate 1.0 for enabled tracing, got %v", cfg.Tracing.SampleRate)
	}
	if cfg.Tracing.Endpoint != "localhost:4318" || cfg.Metrics.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoints, got %+v", cfg)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("expected default interval, got %v", cfg.Metrics.Interval)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero", Config{}, false},
		{"valid rate", Config{Tracing: TracingConfig{SampleRate: 0.5}}, false},
		{"rate above one", Config{Tracing: TracingConfig{SampleRate: 1.5}}, true},
		{"negative rate", Config{Tracing: TracingConfig{SampleRate: -0.1}}, true},
		{"negative interval", Config{Metrics: MetricsConfig{Enabled: true, Interval: -time.Second}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{}, "diarize", "dev", "production")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no-op shutdown, got %v", err)
	}
}

func TestSetupInvalid(t *testing.T) {
	_, err := Setup(context.Background(), Config{Tracing: TracingConfig{SampleRate: 2}}, "diarize", "dev", "production")
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.rate), func(t *testing.T) {
			if got := samplerFor(tc.rate).Description(); got != tc.want {
				t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("diarize", "1.2.3", "staging")
	if err != nil {
		t.Fatalf("newResource failed: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if string(kv.Key) == "service.name" && kv.Value.AsString() == "diarize" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected service.name attribute, got %v", res.Attributes())
	}
}

func TestMetricsWithNoopMeter(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRun(ctx, "pyannote", StatusOK, time.Second, 3)
	metrics.RecordError(ctx, "operational", "pyannote")
	metrics.RecordPipelineCall(ctx, "pyannote", StatusError, time.Second)
}

func TestMetricsRecordRun(t *testing.T) {
	metrics, reader := newRecordedMetrics(t)
	ctx := context.Background()

	metrics.RecordRun(ctx, "pyannote", StatusOK, 2*time.Second, 4)
	metrics.RecordRun(ctx, "pyannote", StatusError, time.Second, 0)

	got := collect(t, reader)
	runs, ok := got["diarization.runs"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected diarization.runs sum, got %T", got["diarization.runs"].Data)
	}
	var total int64
	for _, dp := range runs.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("expected 2 runs, got %d", total)
	}

	segs, ok := got["diarization.segments"].Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("expected diarization.segments histogram, got %T", got["diarization.segments"].Data)
	}
	if len(segs.DataPoints) != 1 || segs.DataPoints[0].Count != 1 || segs.DataPoints[0].Sum != 4 {
		t.Errorf("expected one segment reading of 4, got %+v", segs.DataPoints)
	}
}

func TestMetricsRecordPipelineCall(t *testing.T) {
	metrics, reader := newRecordedMetrics(t)
	metrics.RecordPipelineCall(context.Background(), "pyannote", StatusOK, 500*time.Millisecond)

	got := collect(t, reader)
	if _, ok := got["diarization.pipeline.calls"]; !ok {
		t.Error("expected diarization.pipeline.calls to be recorded")
	}
	if _, ok := got["diarization.pipeline.duration"]; !ok {
		t.Error("expected diarization.pipeline.duration to be recorded")
	}
}

func TestStartSpan(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartSpan(context.Background(), SpanPipeline)
	SetSpanAttribute(ctx, AttrBackend, "pyannote")
	SetSpanAttribute(ctx, AttrSegments, 2)
	SetSpanAttribute(ctx, "int64-key", int64(100))
	SetSpanAttribute(ctx, "float-key", 3.14)
	SetSpanAttribute(ctx, "bool-key", true)
	SetSpanAttribute(ctx, "slice-key", []string{"a", "b"})
	SetSpanAttribute(ctx, "unsupported-key", struct{}{})
	span.End()

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != SpanPipeline {
		t.Errorf("expected span %q, got %q", SpanPipeline, spans[0].Name())
	}
	if len(spans[0].Attributes()) != 6 {
		t.Errorf("expected 6 attributes, got %v", spans[0].Attributes())
	}
}

func TestSetSpanError(t *testing.T) {
	rec := useRecorder(t)

	ctx, span := StartSpan(context.Background(), "failing")
	SetSpanError(ctx, fmt.Errorf("pipeline exploded"))
	span.End()

	s := rec.Ended()[0]
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status())
	}
	if len(s.Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, "key", "value")
	SetSpanError(ctx, fmt.Errorf("no span"))
	if SpanFromContext(ctx) == nil {
		t.Fatal("expected non-nil noop span")
	}
}

func TestRunContext(t *testing.T) {
	rec := useRecorder(t)
	metrics, reader := newRecordedMetrics(t)

	rc := NewRunContext("diarize", "run-1", "pyannote", metrics)
	ctx, span := rc.Start(context.Background())

	if RunContextFromContext(ctx) != rc {
		t.Fatal("expected run context in returned context")
	}
	rc.End(ctx, span, 0, "operational", fmt.Errorf("boom"))

	s := rec.Ended()[0]
	if s.Name() != SpanRun {
		t.Errorf("expected span %q, got %q", SpanRun, s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status())
	}

	got := collect(t, reader)
	if _, ok := got["diarization.errors"]; !ok {
		t.Error("expected diarization.errors to be recorded")
	}
}

func TestRunContextNilMetrics(t *testing.T) {
	rc := NewRunContext("diarize", "run-2", "fake", nil)
	ctx, span := rc.Start(context.Background())
	rc.End(ctx, span, 2, "", nil)

	if rc.Duration() < 0 {
		t.Error("expected non-negative duration")
	}
	if RunContextFromContext(context.Background()) != nil {
		t.Error("expected nil when run context not set")
	}
}

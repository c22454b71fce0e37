// Package observability provides optional OpenTelemetry tracing and metrics
// for diarization runs.
//
// Both signals are disabled unless configured. When disabled, the global
// OpenTelemetry providers stay no-op and every helper here is safe to call.
//
//	shutdown, err := observability.Setup(ctx, cfg, "diarize", version.GetShortVersion())
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
//	defer span.End()
//
//	metrics, err := observability.NewMetrics(observability.Meter("diarize"))
//	metrics.RecordRun(ctx, "pyannote", observability.StatusOK, duration, 12)
package observability

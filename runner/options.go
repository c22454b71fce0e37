package runner

import (
	"github.com/kbukum/diarize/diarization"
	"github.com/kbukum/diarize/logger"
	"github.com/kbukum/diarize/observability"
	"github.com/kbukum/diarize/provider"
)

// Option configures a Runner.
type Option func(*Runner)

// WithCredential sets the token handed to the pipeline on acquisition.
func WithCredential(token string) Option {
	return func(r *Runner) { r.credential = token }
}

// WithBackend selects the registered backend and its config map. The
// credential is added to the map under "token" at acquisition time.
func WithBackend(name string, cfg map[string]any) Option {
	return func(r *Runner) {
		r.backend = name
		r.backendCfg = cfg
	}
}

// WithRegistry replaces the default backend registry.
func WithRegistry(reg *provider.Registry[diarization.Provider]) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithLogger sets the logger used for run and pipeline events.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithMetrics enables run and pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithServiceName sets the name used for spans.
func WithServiceName(name string) Option {
	return func(r *Runner) { r.serviceName = name }
}

// WithRequestDefaults sets the speaker-count hints sent with every run.
// The AudioPath of req is ignored.
func WithRequestDefaults(req diarization.Request) Option {
	return func(r *Runner) { r.defaults = req }
}

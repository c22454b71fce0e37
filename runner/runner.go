package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/google/uuid"

	"github.com/kbukum/diarize/diarization"
	"github.com/kbukum/diarize/diarization/pyannote"
	"github.com/kbukum/diarize/errors"
	"github.com/kbukum/diarize/logger"
	"github.com/kbukum/diarize/observability"
	"github.com/kbukum/diarize/provider"
)

const (
	// CredentialEnv names the environment variable holding the credential.
	CredentialEnv = "HF_TOKEN"

	credentialHint = "Get token from https://huggingface.co/settings/tokens"
	pipelineName   = "diarization pipeline"
)

// DefaultBackend is the backend used when none is configured.
const DefaultBackend = pyannote.ProviderName

// DefaultRegistry returns a registry with every built-in backend.
func DefaultRegistry() *provider.Registry[diarization.Provider] {
	reg := diarization.NewRegistry()
	reg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
	return reg
}

// Runner diarizes audio files through a registered backend.
type Runner struct {
	credential  string
	backend     string
	backendCfg  map[string]any
	registry    *provider.Registry[diarization.Provider]
	log         *logger.Logger
	metrics     *observability.Metrics
	serviceName string
	defaults    diarization.Request
}

// New creates a Runner. Without options it uses the pyannote backend with
// its defaults and no credential.
func New(opts ...Option) *Runner {
	r := &Runner{
		backend:     DefaultBackend,
		serviceName: "diarize",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = DefaultRegistry()
	}
	if r.log == nil {
		r.log = logger.Nop()
	}
	r.log = r.log.WithComponent("runner")
	return r
}

// Diarize runs the pipeline on audioPath and returns one line per segment,
// joined by "\n" without a trailing newline. When outputPath is not empty
// the same text is written there, replacing any existing file.
//
// A missing credential is a configuration error returned before the
// pipeline is acquired. Pipeline failures are operational errors.
func (r *Runner) Diarize(ctx context.Context, audioPath, outputPath string) (string, error) {
	rc := observability.NewRunContext(r.serviceName, uuid.NewString(), r.backend, r.metrics)
	ctx, span := rc.Start(ctx)
	log := r.log.WithFields(logger.Fields(
		logger.FieldRunID, rc.RunID,
		logger.FieldBackend, r.backend,
	))

	text, segments, err := r.run(ctx, log, audioPath, outputPath)

	category := errors.CategoryOf(err)
	rc.End(ctx, span, segments, string(category), err)
	if err != nil {
		log.Error("diarization failed", logger.MergeWithDuration(
			logger.Fields(logger.FieldCategory, string(category), logger.FieldError, err.Error()), rc.Duration()))
		return "", err
	}
	log.Info("diarization complete", logger.MergeWithDuration(
		logger.Fields(logger.FieldSegments, segments, logger.FieldOutput, outputPath), rc.Duration()))
	return text, nil
}

func (r *Runner) run(ctx context.Context, log *logger.Logger, audioPath, outputPath string) (string, int, error) {
	if r.credential == "" {
		return "", 0, errors.MissingConfig(CredentialEnv, credentialHint)
	}

	req := r.defaults
	req.AudioPath = audioPath
	if err := req.Validate(); err != nil {
		return "", 0, err
	}

	p, err := r.acquire()
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if cerr := provider.CloseIfCloseable(context.WithoutCancel(ctx), p); cerr != nil {
			log.Warn("pipeline release failed", logger.Fields(logger.FieldError, cerr.Error()))
		}
	}()
	log.Debug("pipeline acquired", logger.Fields(logger.FieldAudioPath, audioPath))

	resp, err := r.execute(ctx, log, p, req)
	if err != nil {
		return "", 0, err
	}

	if err := diarization.ValidateSegments(resp.Segments); err != nil {
		return "", 0, err
	}
	text := diarization.Format(resp.Segments)

	if outputPath != "" {
		if err := writeOutput(outputPath, text); err != nil {
			return "", 0, err
		}
		log.Debug("output written", logger.Fields(logger.FieldOutput, outputPath))
	}
	return text, len(resp.Segments), nil
}

// acquire creates a fresh pipeline instance with the credential.
func (r *Runner) acquire() (diarization.Provider, error) {
	cfg := make(map[string]any, len(r.backendCfg)+1)
	maps.Copy(cfg, r.backendCfg)
	cfg["token"] = r.credential

	p, err := r.registry.Create(r.backend, cfg)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, errors.ExternalServiceError(pipelineName, fmt.Errorf("load %s: %w", r.backend, err))
	}
	return p, nil
}

func (r *Runner) execute(ctx context.Context, log *logger.Logger, p diarization.Provider, req diarization.Request) (*diarization.Response, error) {
	mws := []provider.Middleware[diarization.Request, *diarization.Response]{
		provider.WithLogging[diarization.Request, *diarization.Response](log),
		provider.WithTracing[diarization.Request, *diarization.Response](r.serviceName),
	}
	if r.metrics != nil {
		mws = append(mws, provider.WithMetrics[diarization.Request, *diarization.Response](r.metrics))
	}
	rr := provider.Chain(mws...)(diarization.AsRequestResponse(p))

	resp, err := rr.Execute(ctx, req)
	switch {
	case err == nil && resp == nil:
		return nil, errors.ExternalServiceError(pipelineName, stderrors.New("empty result"))
	case err == nil:
		return resp, nil
	case errors.IsAppError(err):
		return nil, err
	case stderrors.Is(err, context.Canceled):
		return nil, errors.Canceled(pipelineName).WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return nil, errors.Timeout(pipelineName).WithCause(err)
	default:
		return nil, errors.ExternalServiceError(pipelineName, err)
	}
}

// writeOutput replaces path with text. A failed close is reported.
func writeOutput(path, text string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOError("close", path, cerr)
		}
	}()
	if _, err := io.WriteString(f, text); err != nil {
		return errors.IOError("write", path, err)
	}
	return nil
}

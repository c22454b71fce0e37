package pyannote

import (
	"context"
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kbukum/diarize/diarization"
	"github.com/kbukum/diarize/errors"
	"github.com/kbukum/diarize/httpclient"
	"github.com/kbukum/diarize/provider"
	"github.com/kbukum/diarize/version"
)

const serviceName = "diarization pipeline"

// Provider implements diarization.Provider using the pyannote HTTP server.
type Provider struct {
	cfg    Config
	client *httpclient.Client
}

// NewProvider creates a new pyannote diarization provider.
func NewProvider(cfg Config) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Auth:      httpclient.BearerAuth(cfg.Token),
		UserAgent: "diarize/" + version.GetShortVersion(),
	})
	if err != nil {
		return nil, errors.InvalidConfig("pipeline.base_url", err.Error())
	}
	return &Provider{cfg: cfg, client: client}, nil
}

// Factory returns a provider.Factory that creates pyannote providers from a
// generic config map.
func Factory() provider.Factory[diarization.Provider] {
	return func(m map[string]any) (diarization.Provider, error) {
		cfg, err := configFromMap(m)
		if err != nil {
			return nil, errors.InvalidConfig("pipeline.timeout", err.Error())
		}
		return NewProvider(cfg)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// Model returns the pretrained pipeline requested from the server.
func (p *Provider) Model() string { return p.cfg.Model }

// IsAvailable checks if the pyannote server is reachable and ready.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	resp, err := p.client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/health"})
	return err == nil && resp.StatusCode == http.StatusOK
}

// Close releases idle connections to the server.
func (p *Provider) Close(_ context.Context) error {
	p.client.CloseIdleConnections()
	return nil
}

// Diarize uploads the audio file and returns the server's segments in order.
func (p *Provider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Response, error) {
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, errors.IOError("open", req.AudioPath, err)
	}
	defer func() { _ = f.Close() }()

	fields := map[string]string{"model": p.cfg.Model}
	if req.NumSpeakers > 0 {
		fields["num_speakers"] = strconv.Itoa(req.NumSpeakers)
	}
	if req.MinSpeakers > 0 {
		fields["min_speakers"] = strconv.Itoa(req.MinSpeakers)
	}
	if req.MaxSpeakers > 0 {
		fields["max_speakers"] = strconv.Itoa(req.MaxSpeakers)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/diarize",
		Body: &httpclient.MultipartBody{
			Fields: fields,
			Files: []httpclient.FileField{{
				FieldName:   "audio",
				FileName:    filepath.Base(req.AudioPath),
				ContentType: audioContentType(req.AudioPath),
				Reader:      f,
			}},
		},
	})
	if err != nil {
		return nil, p.mapError(err)
	}

	var result pyannoteResponse
	if err := httpclient.DecodeJSON(resp, &result); err != nil {
		return nil, errors.ExternalServiceError(serviceName, err)
	}
	if result.Error != "" {
		return nil, errors.ExternalServiceError(serviceName, stderrors.New(result.Error))
	}

	return toResponse(&result), nil
}

// mapError converts transport and status errors into application errors.
func (p *Provider) mapError(err error) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr
	}
	switch {
	case httpclient.IsAuth(err):
		return errors.Unauthorized(fmt.Sprintf(
			"The %s rejected the credential for %s. Check HF_TOKEN and that the model's user conditions are accepted.",
			serviceName, p.cfg.Model)).WithCause(err)
	case httpclient.IsCanceled(err):
		return errors.Canceled(serviceName).WithCause(err)
	case httpclient.IsTimeout(err):
		return errors.Timeout(serviceName).WithCause(err)
	case httpclient.IsConnection(err):
		return errors.ConnectionFailed(fmt.Sprintf("%s at %s", serviceName, p.cfg.BaseURL)).WithCause(err)
	case httpclient.IsNotFound(err):
		return errors.New(errors.ErrCodeExternalService, fmt.Sprintf(
			"The %s endpoint was not found at %s. Check pipeline.base_url.", serviceName, p.cfg.BaseURL)).
			WithDetail("service", serviceName).WithCause(err)
	case httpclient.IsServerError(err):
		return errors.ExternalServiceError(serviceName, withServerMessage(err))
	}
	return errors.ExternalServiceError(serviceName, withServerMessage(err))
}

// withServerMessage appends the server's explanation from a status error body.
func withServerMessage(err error) error {
	var httpErr *httpclient.Error
	if stderrors.As(err, &httpErr) && len(httpErr.Body) > 0 {
		return fmt.Errorf("%w: %s", err, serverMessage(httpErr.Body, httpErr.BodySnippet(200)))
	}
	return err
}

// audioContentType guesses the MIME type from the file extension.
func audioContentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// --- internal pyannote API types ---

type pyannoteResponse struct {
	Segments    []pyannoteSegment `json:"segments"`
	NumSpeakers int               `json:"num_speakers"`
	Error       string            `json:"error,omitempty"`
}

type pyannoteSegment struct {
	SpeakerID string  `json:"speaker_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

func toResponse(resp *pyannoteResponse) *diarization.Response {
	segments := make([]diarization.Segment, len(resp.Segments))
	for i, seg := range resp.Segments {
		segments[i] = diarization.Segment{
			Speaker: seg.SpeakerID,
			Start:   seg.StartTime,
			End:     seg.EndTime,
		}
	}
	numSpeakers := resp.NumSpeakers
	if numSpeakers == 0 {
		numSpeakers = diarization.CountSpeakers(segments)
	}
	return &diarization.Response{
		Segments:    segments,
		NumSpeakers: numSpeakers,
	}
}

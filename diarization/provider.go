package diarization

import (
	"context"

	"github.com/kbukum/diarize/provider"
)

// Provider is the interface that diarization backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Diarize runs the pipeline on the request's audio and returns segments
	// in the order the pipeline produced them.
	Diarize(ctx context.Context, req Request) (*Response, error)
}

// NewRegistry returns an empty registry of diarization backend factories.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// AsRequestResponse exposes p as a RequestResponse so provider middleware
// (logging, tracing, metrics) can wrap it.
func AsRequestResponse(p Provider) provider.RequestResponse[Request, *Response] {
	return requestResponse{p}
}

type requestResponse struct {
	Provider
}

func (rr requestResponse) Execute(ctx context.Context, req Request) (*Response, error) {
	return rr.Diarize(ctx, req)
}

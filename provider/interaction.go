package provider

import "context"

// RequestResponse represents a provider that takes one input and returns one output.
// A diarization backend is one: audio request in, segments out.
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Package provider implements a small generic provider framework for
// swappable diarization backends.
//
// A backend is constructed by a named Factory from a generic config map and
// kept in a Registry. Creating a provider is the acquisition step for a
// pretrained pipeline: the credential and model name travel in the config map.
//
// # Middleware
//
// Middleware[I, O] wraps a RequestResponse provider. Use Chain to compose:
//
//	wrapped := provider.Chain(
//	    provider.WithLogging[In, Out](log),
//	    provider.WithMetrics[In, Out](metrics),
//	    provider.WithTracing[In, Out]("diarize"),
//	)(rawProvider)
//
// # Usage
//
//	reg := provider.NewRegistry[MyProvider]()
//	reg.RegisterFactory("pyannote", pyannote.Factory())
//	p, err := reg.Create("pyannote", map[string]any{"token": tok})
package provider

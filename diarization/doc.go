// Package diarization defines the backend-neutral types and contracts for
// speaker diarization: who spoke when in an audio recording.
//
// Backends implement Provider and are constructed through the provider
// registry, so acquiring a pretrained pipeline is a single Create call:
//
//	reg := diarization.NewRegistry()
//	reg.RegisterFactory(pyannote.ProviderName, pyannote.Factory())
//	p, err := reg.Create("pyannote", map[string]any{"token": token})
//	resp, err := p.Diarize(ctx, diarization.Request{AudioPath: "meeting.wav"})
//
// Segments coming back from a backend are checked with ValidateSegments
// before they are rendered with Format.
package diarization

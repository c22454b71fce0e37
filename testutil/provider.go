package testutil

import (
	"context"
	"sync"

	"github.com/kbukum/diarize/diarization"
	"github.com/kbukum/diarize/provider"
)

// FakeName is the name FakeProvider reports unless overridden.
const FakeName = "fake"

// FakeProvider is a scripted diarization.Provider.
type FakeProvider struct {
	mu        sync.Mutex
	name      string
	segments  []diarization.Segment
	err       error
	available bool
	calls     []diarization.Request
	closed    int
}

// NewFakeProvider returns a provider that answers every call with segments.
func NewFakeProvider(segments ...diarization.Segment) *FakeProvider {
	return &FakeProvider{name: FakeName, segments: segments, available: true}
}

// WithError makes every Diarize call fail with err.
func (f *FakeProvider) WithError(err error) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// WithName changes the reported provider name.
func (f *FakeProvider) WithName(name string) *FakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
	return f
}

// SetAvailable changes the IsAvailable result.
func (f *FakeProvider) SetAvailable(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available = ok
}

func (f *FakeProvider) Name() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name
}

func (f *FakeProvider) IsAvailable(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available
}

// Diarize records req and returns the scripted result.
func (f *FakeProvider) Diarize(ctx context.Context, req diarization.Request) (*diarization.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	segs := append([]diarization.Segment(nil), f.segments...)
	return &diarization.Response{Segments: segs, NumSpeakers: diarization.CountSpeakers(segs)}, nil
}

// Close counts the release.
func (f *FakeProvider) Close(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

// Calls returns the requests received so far.
func (f *FakeProvider) Calls() []diarization.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]diarization.Request(nil), f.calls...)
}

// Closed reports how many times Close was called.
func (f *FakeProvider) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FakeFactory hands out one provider and records each acquisition.
type FakeFactory struct {
	mu       sync.Mutex
	provider diarization.Provider
	err      error
	configs  []map[string]any
}

// NewFakeFactory returns a factory that always yields p.
func NewFakeFactory(p diarization.Provider) *FakeFactory {
	return &FakeFactory{provider: p}
}

// WithError makes every acquisition fail with err.
func (ff *FakeFactory) WithError(err error) *FakeFactory {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.err = err
	return ff
}

// Factory returns the provider.Factory to register.
func (ff *FakeFactory) Factory() provider.Factory[diarization.Provider] {
	return func(cfg map[string]any) (diarization.Provider, error) {
		ff.mu.Lock()
		defer ff.mu.Unlock()
		cp := make(map[string]any, len(cfg))
		for k, v := range cfg {
			cp[k] = v
		}
		ff.configs = append(ff.configs, cp)
		if ff.err != nil {
			return nil, ff.err
		}
		return ff.provider, nil
	}
}

// Creates reports how many times the factory was invoked.
func (ff *FakeFactory) Creates() int {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return len(ff.configs)
}

// Configs returns copies of the config maps passed to the factory.
func (ff *FakeFactory) Configs() []map[string]any {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return append([]map[string]any(nil), ff.configs...)
}

// Registry returns a diarization registry with ff registered under name.
func Registry(name string, ff *FakeFactory) *provider.Registry[diarization.Provider] {
	reg := diarization.NewRegistry()
	reg.RegisterFactory(name, ff.Factory())
	return reg
}

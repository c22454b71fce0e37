package diarization

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/diarize/errors"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{
			name: "two speakers",
			segments: []Segment{
				{Start: 0.0, End: 2.5, Speaker: "SPEAKER_00"},
				{Start: 2.5, End: 5.0, Speaker: "SPEAKER_01"},
			},
			want: "[0.0s - 2.5s] SPEAKER_00\n[2.5s - 5.0s] SPEAKER_01",
		},
		{
			name:     "rounds to one decimal",
			segments: []Segment{{Start: 1.26, End: 3.04, Speaker: "A"}},
			want:     "[1.3s - 3.0s] A",
		},
		{
			name: "keeps pipeline order",
			segments: []Segment{
				{Start: 4, End: 5, Speaker: "B"},
				{Start: 0, End: 1, Speaker: "A"},
			},
			want: "[4.0s - 5.0s] B\n[0.0s - 1.0s] A",
		},
		{
			name:     "overlapping segments untouched",
			segments: []Segment{{Start: 0, End: 3, Speaker: "A"}, {Start: 2, End: 4, Speaker: "B"}},
			want:     "[0.0s - 3.0s] A\n[2.0s - 4.0s] B",
		},
		{name: "empty", segments: nil, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Format(tc.segments)
			if got != tc.want {
				t.Errorf("Format() = %q, want %q", got, tc.want)
			}
			if strings.HasSuffix(got, "\n") {
				t.Error("output must not end with a newline")
			}
		})
	}
}

func TestValidateSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		wantErr  string
	}{
		{"valid", []Segment{{Start: 0, End: 2.5, Speaker: "SPEAKER_00"}}, ""},
		{"empty", nil, ""},
		{"end equals start", []Segment{{Start: 0, End: 1, Speaker: "A"}, {Start: 2, End: 2, Speaker: "B"}}, "malformed segment 1"},
		{"negative start", []Segment{{Start: -0.5, End: 1, Speaker: "A"}}, "start: must be greater than or equal to 0"},
		{"missing speaker", []Segment{{Start: 0, End: 1}}, "speaker: is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSegments(tc.segments)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected %q in %q", tc.wantErr, err.Error())
			}
			if !errors.IsOperational(err) {
				t.Errorf("expected operational error, got %s", errors.CategoryOf(err))
			}
		})
	}
}

func TestCountSpeakers(t *testing.T) {
	segs := []Segment{
		{Start: 0, End: 1, Speaker: "SPEAKER_00"},
		{Start: 1, End: 2, Speaker: "SPEAKER_01"},
		{Start: 2, End: 3, Speaker: "SPEAKER_00"},
	}
	if got := CountSpeakers(segs); got != 2 {
		t.Errorf("CountSpeakers() = %d, want 2", got)
	}
	if got := CountSpeakers(nil); got != 0 {
		t.Errorf("CountSpeakers(nil) = %d, want 0", got)
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{"minimal", Request{AudioPath: "a.wav"}, ""},
		{"range", Request{AudioPath: "a.wav", MinSpeakers: 2, MaxSpeakers: 4}, ""},
		{"exact", Request{AudioPath: "a.wav", NumSpeakers: 3}, ""},
		{"no audio", Request{}, "audio_path: is required"},
		{"negative", Request{AudioPath: "a.wav", NumSpeakers: -1}, "num_speakers"},
		{"inverted range", Request{AudioPath: "a.wav", MinSpeakers: 5, MaxSpeakers: 2}, "max_speakers"},
		{"exact and range", Request{AudioPath: "a.wav", NumSpeakers: 2, MaxSpeakers: 3}, "cannot be combined"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
			if !errors.IsInput(err) {
				t.Errorf("expected input error, got %s", errors.CategoryOf(err))
			}
		})
	}
}

type stubProvider struct {
	resp *Response
	got  Request
}

func (s *stubProvider) Name() string                       { return "stub" }
func (s *stubProvider) IsAvailable(_ context.Context) bool { return true }
func (s *stubProvider) Diarize(_ context.Context, req Request) (*Response, error) {
	s.got = req
	return s.resp, nil
}

func TestAsRequestResponse(t *testing.T) {
	stub := &stubProvider{resp: &Response{Segments: []Segment{{Start: 0, End: 1, Speaker: "A"}}, NumSpeakers: 1}}
	rr := AsRequestResponse(stub)

	if rr.Name() != "stub" || !rr.IsAvailable(context.Background()) {
		t.Fatal("expected provider methods to delegate")
	}
	resp, err := rr.Execute(context.Background(), Request{AudioPath: "a.wav"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.got.AudioPath != "a.wav" {
		t.Errorf("expected request to reach provider, got %+v", stub.got)
	}
	if len(resp.Segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(resp.Segments))
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFactory("stub", func(cfg map[string]any) (Provider, error) {
		return &stubProvider{}, nil
	})
	p, err := reg.Create("stub", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "stub" {
		t.Errorf("expected stub, got %q", p.Name())
	}
}

package testutil

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"github.com/kbukum/diarize/diarization"
)

func TestFakeProvider(t *testing.T) {
	fake := NewFakeProvider(ExampleSegments()...)
	resp, err := fake.Diarize(context.Background(), diarization.Request{AudioPath: "a.wav"})
	if err != nil {
		t.Fatalf("Diarize: %v", err)
	}
	if got := diarization.Format(resp.Segments); got != ExampleOutput {
		t.Errorf("expected %q, got %q", ExampleOutput, got)
	}
	if resp.NumSpeakers != 2 {
		t.Errorf("expected 2 speakers, got %d", resp.NumSpeakers)
	}
	if calls := fake.Calls(); len(calls) != 1 || calls[0].AudioPath != "a.wav" {
		t.Errorf("unexpected calls %+v", calls)
	}

	boom := stderrors.New("boom")
	fake.WithError(boom)
	if _, err := fake.Diarize(context.Background(), diarization.Request{}); !stderrors.Is(err, boom) {
		t.Errorf("expected scripted error, got %v", err)
	}

	_ = fake.Close(context.Background())
	if fake.Closed() != 1 {
		t.Errorf("expected one close, got %d", fake.Closed())
	}
}

func TestFakeFactory(t *testing.T) {
	fake := NewFakeProvider()
	ff := NewFakeFactory(fake)
	reg := Registry("fake", ff)

	p, err := reg.Create("fake", map[string]any{"token": "hf"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p != fake {
		t.Error("expected the scripted provider")
	}
	if ff.Creates() != 1 || ff.Configs()[0]["token"] != "hf" {
		t.Errorf("unexpected configs %+v", ff.Configs())
	}

	ff.WithError(stderrors.New("load failed"))
	if _, err := reg.Create("fake", nil); err == nil {
		t.Error("expected factory error")
	}
}

func TestAudioFile(t *testing.T) {
	path := AudioFile(t, "x.wav")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 44+32000 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Errorf("unexpected WAV header %q", data[:12])
	}
}

package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/diarize/diarization"
)

// ExampleOutput is the rendering of ExampleSegments.
const ExampleOutput = "[0.0s - 2.5s] SPEAKER_00\n[2.5s - 5.0s] SPEAKER_01"

// ExampleSegments returns a two-speaker result covering five seconds.
func ExampleSegments() []diarization.Segment {
	return []diarization.Segment{
		{Speaker: "SPEAKER_00", Start: 0.0, End: 2.5},
		{Speaker: "SPEAKER_01", Start: 2.5, End: 5.0},
	}
}

// AudioFile writes a silent 16 kHz mono WAV of one second to a temporary
// directory and returns its path.
func AudioFile(t testing.TB, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, silentWAV(16000, 16000), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}
	return path
}

// silentWAV builds a PCM16 mono WAV with the given sample rate and count.
func silentWAV(rate, samples int) []byte {
	dataLen := samples * 2
	buf := make([]byte, 44+dataLen)
	copy(buf[0:], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:], uint32(36+dataLen))
	copy(buf[8:], "WAVE")
	copy(buf[12:], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:], 16)
	binary.LittleEndian.PutUint16(buf[20:], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:], 1) // mono
	binary.LittleEndian.PutUint32(buf[24:], uint32(rate))
	binary.LittleEndian.PutUint32(buf[28:], uint32(rate*2))
	binary.LittleEndian.PutUint16(buf[32:], 2)
	binary.LittleEndian.PutUint16(buf[34:], 16)
	copy(buf[36:], "data")
	binary.LittleEndian.PutUint32(buf[40:], uint32(dataLen))
	return buf
}

package diarization

import (
	"github.com/kbukum/diarize/validation"
)

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path" validate:"required"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty" validate:"gte=0"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty" validate:"gte=0"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty" validate:"gte=0"`
}

// Validate checks the request fields and the speaker-count hints against
// each other.
func (r Request) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	v := validation.New()
	if r.MinSpeakers > 0 && r.MaxSpeakers > 0 {
		v.Custom(r.MinSpeakers <= r.MaxSpeakers, "max_speakers", "must be greater than or equal to min_speakers")
	}
	if r.NumSpeakers > 0 {
		v.Custom(r.MinSpeakers == 0 && r.MaxSpeakers == 0, "num_speakers", "cannot be combined with min_speakers or max_speakers")
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Response holds the result of a diarization call.
type Response struct {
	// Segments contains speaker-attributed time segments in pipeline order.
	Segments []Segment `json:"segments"`
	// NumSpeakers is the number of speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Segment is a speaker-attributed time range [Start, End) in seconds.
type Segment struct {
	Speaker string  `json:"speaker" validate:"required"`
	Start   float64 `json:"start" validate:"gte=0"`
	End     float64 `json:"end" validate:"gtfield=Start"`
}

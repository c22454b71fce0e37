package diarization

import (
	"fmt"
	"strings"

	"github.com/kbukum/diarize/errors"
	"github.com/kbukum/diarize/validation"
)

// ValidateSegments checks every segment returned by a backend. A violation
// means the pipeline produced malformed output and is reported as an
// external-service error naming the offending index.
func ValidateSegments(segments []Segment) error {
	for i, seg := range segments {
		if err := validation.Validate(seg); err != nil {
			return errors.ExternalServiceError("diarization pipeline",
				fmt.Errorf("malformed segment %d: %s", i, errors.Message(err))).
				WithDetail("segment", i)
		}
	}
	return nil
}

// FormatSegment renders one segment as "[{start}s - {end}s] {speaker}" with
// one decimal place.
func FormatSegment(seg Segment) string {
	return fmt.Sprintf("[%.1fs - %.1fs] %s", seg.Start, seg.End, seg.Speaker)
}

// Format renders segments one per line, in the given order, joined by "\n"
// with no trailing newline. No segments yield the empty string.
func Format(segments []Segment) string {
	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = FormatSegment(seg)
	}
	return strings.Join(lines, "\n")
}

// CountSpeakers returns the number of distinct speaker labels.
func CountSpeakers(segments []Segment) int {
	seen := make(map[string]struct{}, len(segments))
	for _, seg := range segments {
		seen[seg.Speaker] = struct{}{}
	}
	return len(seen)
}

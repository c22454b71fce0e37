package bootstrap

import (
	"sync"
	"time"

	"github.com/kbukum/diarize/logger"
)

// Step is one recorded stage of a run.
type Step struct {
	Name     string
	Status   string
	Detail   string
	Duration time.Duration
}

// Summary collects the stages of a run for a closing log line.
type Summary struct {
	mu       sync.Mutex
	name     string
	version  string
	duration time.Duration
	steps    []Step
}

// NewSummary creates an empty summary.
func NewSummary(name, version string) *Summary {
	return &Summary{name: name, version: version}
}

// Track records a step.
func (s *Summary) Track(name, status, detail string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, Step{Name: name, Status: status, Detail: detail, Duration: d})
}

// SetDuration records the total run time.
func (s *Summary) SetDuration(d time.Duration) {
	s.mu.Lock()
	s.duration = d
	s.mu.Unlock()
}

// Steps returns a copy of the recorded steps.
func (s *Summary) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Step(nil), s.steps...)
}

// Display logs one line per step and a closing line at info level.
func (s *Summary) Display(l *logger.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.steps {
		fields := logger.Fields("step", st.Name, logger.FieldStatus, st.Status)
		if st.Detail != "" {
			fields["detail"] = st.Detail
		}
		l.Info("run step", logger.MergeWithDuration(fields, st.Duration))
	}
	l.Info("run finished", logger.MergeWithDuration(
		logger.Fields("name", s.name, "version", s.version, "steps", len(s.steps)), s.duration))
}

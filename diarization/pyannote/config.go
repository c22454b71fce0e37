package pyannote

import (
	"time"

	"github.com/kbukum/diarize/config"
)

const (
	// ProviderName is the registered name for the pyannote provider.
	ProviderName = "pyannote"

	// DefaultModel is the pretrained pipeline requested when none is configured.
	DefaultModel = "pyannote/speaker-diarization-3.1"

	defaultBaseURL = "http://localhost:8388"
	defaultTimeout = 300 * time.Second
)

// Config holds configuration for the pyannote diarization provider.
type Config struct {
	BaseURL string        `json:"base_url" mapstructure:"base_url"`
	Model   string        `json:"model" mapstructure:"model"`
	Token   string        `json:"-" mapstructure:"-"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in the server URL, model and timeout.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// configFromMap reads a generic provider config map. Recognized keys are
// base_url, model, token and timeout (a time.Duration, a duration string
// such as "5m", or a number of seconds).
func configFromMap(m map[string]any) (Config, error) {
	var cfg Config
	if v, ok := m["base_url"].(string); ok {
		cfg.BaseURL = v
	}
	if v, ok := m["model"].(string); ok {
		cfg.Model = v
	}
	if v, ok := m["token"].(string); ok {
		cfg.Token = v
	}
	if raw, ok := m["timeout"]; ok && raw != nil {
		d, err := config.ParseDuration(raw)
		if err != nil {
			return Config{}, err
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

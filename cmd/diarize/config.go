package main

import (
	"time"

	"github.com/kbukum/diarize/config"
	"github.com/kbukum/diarize/errors"
	"github.com/kbukum/diarize/observability"
	"github.com/kbukum/diarize/runner"
	"github.com/kbukum/diarize/validation"
	"github.com/kbukum/diarize/version"
)

const serviceName = "diarize"

// AppConfig is the full configuration of the diarize command. Any key can be
// set from the environment with the DIARIZE_ prefix, e.g.
// DIARIZE_PIPELINE_BASE_URL.
//
//	name: diarize
//	hf_token: hf_xxx            # usually from HF_TOKEN
//	pipeline:
//	  backend: pyannote
//	  base_url: http://localhost:8388
//	  model: pyannote/speaker-diarization-3.1
//	  timeout: 300              # seconds, or a duration such as 5m
//	observability:
//	  tracing: {enabled: true, endpoint: localhost:4318, insecure: true}
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	HFToken       string               `yaml:"hf_token" mapstructure:"hf_token"`
	Pipeline      PipelineConfig       `yaml:"pipeline" mapstructure:"pipeline"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// PipelineConfig selects and configures the diarization backend.
type PipelineConfig struct {
	Backend     string        `yaml:"backend" mapstructure:"backend" json:"backend" validate:"required"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url" json:"base_url" validate:"omitempty,url"`
	Model       string        `yaml:"model" mapstructure:"model" json:"model"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout" validate:"gte=0"`
	NumSpeakers int           `yaml:"num_speakers" mapstructure:"num_speakers" json:"num_speakers" validate:"gte=0"`
	MinSpeakers int           `yaml:"min_speakers" mapstructure:"min_speakers" json:"min_speakers" validate:"gte=0"`
	MaxSpeakers int           `yaml:"max_speakers" mapstructure:"max_speakers" json:"max_speakers" validate:"gte=0"`
}

// ApplyDefaults fills the service identity and backend. Logging stays off
// unless configured so that stderr carries only the error line.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	if c.Logging.Level == "" && !c.Debug {
		c.Logging.Level = "disabled"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Pipeline.Backend == "" {
		c.Pipeline.Backend = runner.DefaultBackend
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section. The credential is not checked here; the
// runner reports a missing one.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return errors.InvalidConfig("service", err.Error())
	}
	if err := validation.Validate(c.Pipeline); err != nil {
		return errors.InvalidConfig("pipeline", errors.Message(err))
	}
	if err := c.Observability.Validate(); err != nil {
		return errors.InvalidConfig("observability", err.Error())
	}
	return nil
}

// backendConfig is the map handed to the backend factory.
func (p PipelineConfig) backendConfig() map[string]any {
	m := map[string]any{}
	if p.BaseURL != "" {
		m["base_url"] = p.BaseURL
	}
	if p.Model != "" {
		m["model"] = p.Model
	}
	if p.Timeout > 0 {
		m["timeout"] = p.Timeout
	}
	return m
}

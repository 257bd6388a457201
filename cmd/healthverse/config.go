package main

import (
	"fmt"
	"time"

	"github.com/kbukum/healthverse/config"
	"github.com/kbukum/healthverse/observability"
	"github.com/kbukum/healthverse/server"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/validation"
)

const serviceName = "healthverse"

// shutdownMargin leaves the other components time to stop after the HTTP
// server has drained.
const shutdownMargin = 5 * time.Second

// TranscriptionNone disables speech-to-text; consultations then run on the
// image alone.
const TranscriptionNone = "none"

// Config is the full HealthVerse configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`

	Transcription ProviderSelection  `yaml:"transcription" mapstructure:"transcription"`
	Vision        ProviderSelection  `yaml:"vision" mapstructure:"vision"`
	Synthesis     SynthesisSelection `yaml:"synthesis" mapstructure:"synthesis"`
	Consultation  ConsultationConfig `yaml:"consultation" mapstructure:"consultation"`
}

// ProviderSelection names the backend to use. Every other key under the
// section is a per-backend settings block, passed to that backend's factory.
//
//	vision:
//	  provider: groq
//	  groq:
//	    model: meta-llama/llama-4-scout-17b-16e-instruct
type ProviderSelection struct {
	Provider string         `yaml:"provider" mapstructure:"provider" validate:"required"`
	Settings map[string]any `yaml:",inline" mapstructure:",remain"`
}

// SynthesisSelection adds the fallback voice.
type SynthesisSelection struct {
	Provider string         `yaml:"provider" mapstructure:"provider" validate:"required,oneof=elevenlabs gtts"`
	Fallback string         `yaml:"fallback" mapstructure:"fallback" validate:"omitempty,oneof=elevenlabs gtts,nefield=Provider"`
	Settings map[string]any `yaml:",inline" mapstructure:",remain"`
}

// ConsultationConfig configures the pipeline itself.
type ConsultationConfig struct {
	// PromptFile is an optional YAML file replacing the built-in prompt.
	PromptFile string `yaml:"prompt_file" mapstructure:"prompt_file"`
}

// settingsFor returns the settings block of the named backend, or an empty map.
func settingsFor(all map[string]any, name string) map[string]any {
	if m, ok := all[name].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// ApplyDefaults fills unset sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Observability.ApplyDefaults()

	if c.Transcription.Provider == "" {
		c.Transcription.Provider = "groq"
	}
	if c.Vision.Provider == "" {
		c.Vision.Provider = "groq"
	}
	if c.Synthesis.Provider == "" {
		c.Synthesis.Provider = "elevenlabs"
		if c.Synthesis.Fallback == "" {
			c.Synthesis.Fallback = "gtts"
		}
	}
}

// GracefulTimeout bounds the whole application shutdown. It must outlast the
// server's own drain timeout.
func (c *Config) GracefulTimeout() time.Duration {
	d := c.Server.ShutdownTimeout
	if d == 0 {
		var s server.Config
		s.ApplyDefaults()
		d = s.ShutdownTimeout
	}
	return d + shutdownMargin
}

// Validate checks the whole configuration once, at startup.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	switch c.Transcription.Provider {
	case "groq", "whisper", "googlespeech", TranscriptionNone:
	default:
		return fmt.Errorf("transcription.provider must be one of [groq whisper googlespeech none] (got: %s)", c.Transcription.Provider)
	}
	switch c.Vision.Provider {
	case "groq", "anthropic":
	default:
		return fmt.Errorf("vision.provider must be one of [groq anthropic] (got: %s)", c.Vision.Provider)
	}
	return nil
}

// credentialBindings maps provider credentials onto their config keys.
func credentialBindings() []config.LoaderOption {
	return []config.LoaderOption{
		config.WithEnvBinding("transcription.groq.api_key", "GROQ_API_KEY"),
		config.WithEnvBinding("vision.groq.api_key", "GROQ_API_KEY"),
		config.WithEnvBinding("vision.anthropic.api_key", "ANTHROPIC_API_KEY"),
		config.WithEnvBinding("synthesis.elevenlabs.api_key", "ELEVEN_API_KEY", "ELEVENLABS_API_KEY"),
	}
}

package llm

import (
	"fmt"
	"time"
)

// Config holds configuration for creating an LLM adapter.
type Config struct {
	// Name identifies this adapter instance in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// Dialect selects the wire format registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// APIKey is sent as a bearer token when set.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	Model  string `yaml:"model" mapstructure:"model"`
	// Temperature nil leaves the choice to the backend; 0 is sent as 0.
	Temperature *float64      `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect + "-llm"
	}
}

// Validate checks the fields required to build an adapter.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("llm: base_url is required")
	}
	if t := c.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("llm: temperature must be within [0, 2] (got: %v)", *t)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("llm: max_tokens must be non-negative (got: %d)", c.MaxTokens)
	}
	return nil
}

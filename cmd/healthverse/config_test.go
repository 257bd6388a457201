package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/healthverse/config"
)

func loadTestConfig(t *testing.T) *Config {
	t.Helper()
	env := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(env, []byte("# empty\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var cfg Config
	opts := append(credentialBindings(), config.WithConfigFile("config.yml"), config.WithEnvFile(env))
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	cfg.ApplyDefaults()
	return &cfg
}

func TestConfig_LoadsShippedFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("ELEVEN_API_KEY", "xi_test")

	cfg := loadTestConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Server.Port != 7860 || cfg.Synthesis.Fallback != "gtts" {
		t.Errorf("cfg = %+v", cfg)
	}

	checks := []struct {
		section map[string]any
		name    string
		key     string
		want    any
	}{
		{cfg.Transcription.Settings, "groq", "api_key", "gsk_test"},
		{cfg.Transcription.Settings, "groq", "model", "whisper-large-v3"},
		{cfg.Vision.Settings, "groq", "api_key", "gsk_test"},
		{cfg.Synthesis.Settings, "elevenlabs", "api_key", "xi_test"},
	}
	for _, c := range checks {
		if got := settingsFor(c.section, c.name)[c.key]; got != c.want {
			t.Errorf("%s.%s = %v, want %v", c.name, c.key, got, c.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown vision provider", func(c *Config) { c.Vision.Provider = "ollama" }, "vision.provider"},
		{"unknown transcription provider", func(c *Config) { c.Transcription.Provider = "vosk" }, "transcription.provider"},
		{"fallback equals primary", func(c *Config) { c.Synthesis.Fallback = c.Synthesis.Provider }, "synthesis.fallback"},
		{"bad environment", func(c *Config) { c.Environment = "qa" }, "environment"},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, "server.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				t.Fatalf("defaults do not validate: %v", err)
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestConfig_TranscriptionNone(t *testing.T) {
	var cfg Config
	cfg.Transcription.Provider = TranscriptionNone
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestConfig_GracefulTimeout(t *testing.T) {
	tests := []struct {
		name  string
		drain time.Duration
		want  time.Duration
	}{
		{name: "server default", want: 15 * time.Second},
		{name: "configured drain", drain: 30 * time.Second, want: 35 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Server.ShutdownTimeout = tt.drain
			if got := cfg.GracefulTimeout(); got != tt.want {
				t.Errorf("GracefulTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

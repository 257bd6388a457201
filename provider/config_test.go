package provider_test

import (
	"testing"
	"time"

	"github.com/kbukum/healthverse/provider"
)

type backendConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

func TestDecodeConfig(t *testing.T) {
	var cfg backendConfig
	err := provider.DecodeConfig(map[string]any{
		"api_key": "k",
		"timeout": "45s",
		"retries": "2",
	}, &cfg)
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.APIKey != "k" || cfg.Timeout != 45*time.Second || cfg.Retries != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDecodeConfig_NilKeepsDefaults(t *testing.T) {
	cfg := backendConfig{APIKey: "default"}
	if err := provider.DecodeConfig(nil, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "default" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

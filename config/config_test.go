package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeFS struct {
	files map[string]bool
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }
func (f *fakeFS) LoadEnv(string) error    { return nil }

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server        struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Synthesis struct {
		ElevenLabs struct {
			APIKey string `mapstructure:"api_key"`
		} `mapstructure:"elevenlabs"`
	} `mapstructure:"synthesis"`
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug=true for development")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging defaults, got level %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"bad environment", ServiceConfig{Name: "svc", Environment: "qa"}, "config.environment"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestResolveFiles_SearchesServiceDir(t *testing.T) {
	fs := &fakeFS{files: map[string]bool{
		"./cmd/healthverse/config.yml": true,
		".env":                         true,
	}}
	r := &Resolver{FileSystem: fs}
	got := r.ResolveFiles("healthverse", LoaderConfig{})
	if got.ConfigFile != "./cmd/healthverse/config.yml" {
		t.Errorf("config file = %q", got.ConfigFile)
	}
	if got.EnvFile != ".env" {
		t.Errorf("env file = %q", got.EnvFile)
	}
}

func TestResolveFiles_ExplicitWins(t *testing.T) {
	r := &Resolver{FileSystem: &fakeFS{files: map[string]bool{"./config.yml": true}}}
	got := r.ResolveFiles("svc", LoaderConfig{ConfigFile: "/etc/svc.yml"})
	if got.ConfigFile != "/etc/svc.yml" {
		t.Errorf("config file = %q", got.ConfigFile)
	}
	if got.EnvFile != "" {
		t.Errorf("expected no env file, got %q", got.EnvFile)
	}
}

func TestLoadConfig_YAMLAndEnvOverride(t *testing.T) {
	path := writeYAML(t, "name: healthverse\nserver:\n  port: 8080\n")
	t.Setenv("SERVER_PORT", "9090")

	var cfg testConfig
	if err := LoadConfig("healthverse", &cfg, WithConfigFile(path), WithFileSystem(&fakeFS{files: map[string]bool{path: true}})); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "healthverse" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env override 9090, got %d", cfg.Server.Port)
	}
}

func TestLoadConfig_EnvBinding(t *testing.T) {
	path := writeYAML(t, "name: healthverse\n")
	t.Setenv("ELEVEN_API_KEY", "secret")

	var cfg testConfig
	err := LoadConfig("healthverse", &cfg,
		WithConfigFile(path),
		WithEnvBinding("synthesis.elevenlabs.api_key", "ELEVEN_API_KEY"),
	)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Synthesis.ElevenLabs.APIKey != "secret" {
		t.Errorf("api key = %q", cfg.Synthesis.ElevenLabs.APIKey)
	}
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("healthverse", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "nope.yml")))
	if err == nil {
		t.Fatal("expected error for unreadable config file")
	}
}

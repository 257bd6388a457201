// Package groq transcribes audio with Groq's hosted Whisper models through
// the OpenAI-compatible audio API.
package groq

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/transcription"
)

const (
	// ProviderName is the registered name for the Groq provider.
	ProviderName = "groq"
	// CredentialEnv is the environment variable holding the API key.
	CredentialEnv = "GROQ_API_KEY"

	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "whisper-large-v3"
	defaultTimeout = 60 * time.Second
)

// Config holds configuration for the Groq transcription provider.
type Config struct {
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Model    string        `yaml:"model" mapstructure:"model"`
	Language string        `yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Language == "" {
		c.Language = transcription.DefaultLanguage
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements transcription.Provider on Groq's audio endpoint.
type Provider struct {
	cfg    Config
	client openai.Client
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a Groq provider. A missing API key is not an error
// here; the provider reports itself unavailable instead.
func NewProvider(cfg Config, opts ...option.RequestOption) *Provider {
	cfg.ApplyDefaults()
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/"),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	return &Provider{
		cfg:    cfg,
		client: openai.NewClient(append(base, opts...)...),
	}
}

// Factory returns a provider.Factory that creates Groq providers from a
// generic settings map.
func Factory() provider.Factory[transcription.Provider] {
	return func(settings map[string]any) (transcription.Provider, error) {
		var cfg Config
		if err := provider.DecodeConfig(settings, &cfg); err != nil {
			return nil, err
		}
		return NewProvider(cfg), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Transcribe uploads the audio file and returns the recognized text.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	if p.cfg.APIKey == "" {
		return nil, apperrors.MissingCredential(ProviderName, CredentialEnv)
	}

	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer func() { _ = f.Close() }()

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}
	lang := p.cfg.Language
	if req.Language != "" {
		lang = req.Language
	}

	resp, err := p.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     f,
		Model:    openai.AudioModel(model),
		Language: openai.String(lang),
	})
	if err != nil {
		return nil, apperrors.ProviderFailed(ProviderName, err)
	}

	return &transcription.TranscriptionResponse{
		Text:     resp.Text,
		Language: lang,
	}, nil
}

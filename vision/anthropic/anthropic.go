// Package anthropic answers image questions with Claude models through the
// Anthropic Messages API.
package anthropic

import (
	"context"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/vision"
)

const (
	// ProviderName is the registered name for the Anthropic provider.
	ProviderName = "anthropic"
	// CredentialEnv is the environment variable holding the API key.
	CredentialEnv = "ANTHROPIC_API_KEY"

	defaultModel       = "claude-sonnet-4-5-20250929"
	defaultTemperature = 0.1
	defaultMaxTokens   = 1000
	defaultTimeout     = 60 * time.Second
)

// Config holds configuration for the Anthropic vision provider.
type Config struct {
	APIKey      string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Model       string        `yaml:"model" mapstructure:"model"`
	Temperature *float64      `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Temperature == nil {
		t := float64(defaultTemperature)
		c.Temperature = &t
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements vision.Provider with the Messages API.
type Provider struct {
	cfg    Config
	client sdk.Client
}

var _ vision.Provider = (*Provider)(nil)

// NewProvider creates an Anthropic vision provider.
func NewProvider(cfg Config, opts ...option.RequestOption) *Provider {
	cfg.ApplyDefaults()
	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}
	return &Provider{cfg: cfg, client: sdk.NewClient(append(base, opts...)...)}
}

// Factory returns a provider.Factory for the Anthropic provider.
func Factory() provider.Factory[vision.Provider] {
	return func(settings map[string]any) (vision.Provider, error) {
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

// Execute sends one user turn holding the image and the prompt.
func (p *Provider) Execute(ctx context.Context, req vision.Request) (vision.Response, error) {
	if p.cfg.APIKey == "" {
		return vision.Response{}, apperrors.MissingCredential(ProviderName, CredentialEnv)
	}

	model := p.cfg.Model
	if req.Model != "" {
		model = req.Model
	}

	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(model),
		MaxTokens:   int64(p.cfg.MaxTokens),
		Temperature: sdk.Float(*p.cfg.Temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(
				sdk.NewImageBlockBase64(req.Image.MediaType, req.Image.Data),
				sdk.NewTextBlock(req.Prompt),
			),
		},
	})
	if err != nil {
		return vision.Response{}, apperrors.ProviderFailed(ProviderName, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}
	return vision.Response{
		Text:     text.String(),
		Model:    string(msg.Model),
		Provider: ProviderName,
	}, nil
}

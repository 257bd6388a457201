// Package elevenlabs synthesizes speech with the ElevenLabs API. Replies
// are requested as raw PCM and stored as WAV.
package elevenlabs

import (
	"context"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/httpclient"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/synthesis"
)

const (
	// ProviderName is the registered name for the ElevenLabs provider.
	ProviderName = "elevenlabs"
	// CredentialEnv is the environment variable holding the API key.
	CredentialEnv = "ELEVEN_API_KEY"

	defaultBaseURL = "https://api.elevenlabs.io"
	// DefaultVoiceID is the "Aria" voice.
	DefaultVoiceID      = "9BWtsMINqrJLrRacOk9x"
	defaultModel        = "eleven_turbo_v2"
	defaultOutputFormat = "pcm_22050"
	defaultTimeout      = 60 * time.Second
)

// Config holds configuration for the ElevenLabs provider.
type Config struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	VoiceID string        `yaml:"voice_id" mapstructure:"voice_id"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.VoiceID == "" {
		c.VoiceID = DefaultVoiceID
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements synthesis.Provider over ElevenLabs text-to-speech.
type Provider struct {
	cfg    Config
	client *httpclient.Adapter
	store  storage.Storage
}

var _ synthesis.Provider = (*Provider)(nil)

// NewProvider creates an ElevenLabs provider writing into store.
func NewProvider(cfg Config, store storage.Storage, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.APIKeyAuthHeader(cfg.APIKey, "xi-api-key"),
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Provider{cfg: cfg, client: client, store: store}, nil
}

// Factory returns a provider factory bound to store.
func Factory(store storage.Storage) provider.Factory[synthesis.Provider] {
	return func(settings map[string]any) (synthesis.Provider, error) {
		var cfg Config
		if err := provider.DecodeConfig(settings, &cfg); err != nil {
			return nil, err
		}
		return NewProvider(cfg, store)
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether an API key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

type ttsRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Execute synthesizes req.Text and stores it at req.Key + ".wav".
func (p *Provider) Execute(ctx context.Context, req synthesis.Request) (*synthesis.Audio, error) {
	if p.cfg.APIKey == "" {
		return nil, apperrors.MissingCredential(ProviderName, CredentialEnv)
	}
	if err := synthesis.ValidateText(req.Text); err != nil {
		return nil, err
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/v1/text-to-speech/" + url.PathEscape(p.cfg.VoiceID),
		Query:  map[string]string{"output_format": defaultOutputFormat},
		Body:   ttsRequest{Text: req.Text, ModelID: p.cfg.Model},
	})
	if err != nil {
		return nil, httpclient.ToAppError(ProviderName, err)
	}
	if len(resp.Body) == 0 {
		return nil, apperrors.ProviderFailed(ProviderName, errEmptyAudio)
	}

	wav := EncodeWAV(resp.Body, pcmSampleRate, pcmChannels, pcmBitsPerSample)
	return synthesis.Store(ctx, p.store, req, ProviderName, synthesis.FormatWAV, synthesis.ContentTypeWAV, wav)
}

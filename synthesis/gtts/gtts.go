// Package gtts synthesizes speech with the Google Translate text-to-speech
// endpoint. It needs no credential and is used as the fallback voice.
package gtts

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/httpclient"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/synthesis"
)

const (
	// ProviderName is the registered name for the gTTS provider.
	ProviderName = "gtts"

	defaultBaseURL  = "https://translate.google.com"
	defaultLanguage = "en"
	defaultTimeout  = 30 * time.Second
)

// Config holds configuration for the gTTS provider.
type Config struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Language string        `yaml:"language" mapstructure:"language"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Language == "" {
		c.Language = defaultLanguage
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Provider implements synthesis.Provider over translate_tts.
type Provider struct {
	cfg    Config
	client *httpclient.Adapter
	store  storage.Storage
}

var _ synthesis.Provider = (*Provider)(nil)

var errNoText = errors.New("no text to speak")

// NewProvider creates a gTTS provider writing into store.
func NewProvider(cfg Config, store storage.Storage, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: map[string]string{"User-Agent": "Mozilla/5.0"},
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

// IsAvailable always reports true; the endpoint needs no credential.
func (p *Provider) IsAvailable(_ context.Context) bool { return true }

// Execute fetches one MP3 segment per chunk, concatenates them and stores
// the result at req.Key + ".mp3".
func (p *Provider) Execute(ctx context.Context, req synthesis.Request) (*synthesis.Audio, error) {
	if err := synthesis.ValidateText(req.Text); err != nil {
		return nil, err
	}
	chunks := Chunk(req.Text, MaxChunkLen)
	if len(chunks) == 0 {
		return nil, apperrors.InvalidInput("text", errNoText.Error())
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		resp, err := p.client.Do(ctx, httpclient.Request{
			Method: http.MethodGet,
			Path:   "/translate_tts",
			Query: map[string]string{
				"ie":      "UTF-8",
				"q":       chunk,
				"tl":      p.cfg.Language,
				"client":  "tw-ob",
				"total":   strconv.Itoa(len(chunks)),
				"idx":     strconv.Itoa(i),
				"textlen": strconv.Itoa(len([]rune(chunk))),
			},
		})
		if err != nil {
			return nil, httpclient.ToAppError(ProviderName, err)
		}
		audio.Write(resp.Body)
	}

	return synthesis.Store(ctx, p.store, req, ProviderName, synthesis.FormatMP3, synthesis.ContentTypeMP3, audio.Bytes())
}

// Package googlespeech transcribes audio with Google Cloud Speech-to-Text.
// Authentication uses Application Default Credentials.
package googlespeech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/transcription"
)

const (
	// ProviderName is the registered name for the Google Speech provider.
	ProviderName = "googlespeech"
	// CredentialEnv points Application Default Credentials at a key file.
	CredentialEnv = "GOOGLE_APPLICATION_CREDENTIALS"

	defaultLanguageCode = "en-US"
	opusSampleRate      = 48000
)

// Config holds configuration for the Google Speech provider.
type Config struct {
	LanguageCode string `yaml:"language_code" mapstructure:"language_code"`
	// Punctuation enables automatic punctuation in transcripts.
	Punctuation bool `yaml:"punctuation" mapstructure:"punctuation"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.LanguageCode == "" {
		c.LanguageCode = defaultLanguageCode
	}
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Provider implements transcription.Provider over the batch Recognize RPC.
type Provider struct {
	cfg       Config
	client    *speech.Client
	recognize recognizeFunc
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates a speech client with Application Default Credentials.
// When no credentials can be found the provider is still returned but
// reports itself unavailable.
func NewProvider(ctx context.Context, cfg Config) *Provider {
	cfg.ApplyDefaults()
	p := &Provider{cfg: cfg}
	client, err := speech.NewClient(ctx)
	if err != nil {
		return p
	}
	p.client = client
	p.recognize = func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	}
	return p
}

// Factory returns a provider.Factory that creates Google Speech providers
// from a generic settings map.
func Factory() provider.Factory[transcription.Provider] {
	return func(settings map[string]any) (transcription.Provider, error) {
		var cfg Config
		if err := provider.DecodeConfig(settings, &cfg); err != nil {
			return nil, err
		}
		return NewProvider(context.Background(), cfg), nil
	}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a speech client could be created.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.recognize != nil }

// Close releases the underlying gRPC connection.
func (p *Provider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

// Transcribe sends the whole file in one Recognize call and joins the top
// alternative of every result.
func (p *Provider) Transcribe(ctx context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	if p.recognize == nil {
		return nil, apperrors.MissingCredential(ProviderName, CredentialEnv)
	}

	audio, err := os.ReadFile(req.AudioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	lang := p.cfg.LanguageCode
	if req.Language != "" && req.Language != transcription.DefaultLanguage {
		lang = req.Language
	}

	resp, err := p.recognize(ctx, &speechpb.RecognizeRequest{
		Config: recognitionConfig(req.AudioPath, lang, p.cfg.Punctuation),
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return nil, apperrors.ProviderFailed(ProviderName, err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		if alts := result.GetAlternatives(); len(alts) > 0 {
			parts = append(parts, strings.TrimSpace(alts[0].GetTranscript()))
		}
	}
	return &transcription.TranscriptionResponse{
		Text:     strings.Join(parts, " "),
		Language: lang,
	}, nil
}

// recognitionConfig picks the encoding from the file extension. WAV and
// FLAC carry their own headers and are left unspecified.
func recognitionConfig(path, lang string, punctuation bool) *speechpb.RecognitionConfig {
	cfg := &speechpb.RecognitionConfig{
		LanguageCode:               lang,
		EnableAutomaticPunctuation: punctuation,
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".opus":
		cfg.Encoding = speechpb.RecognitionConfig_OGG_OPUS
		cfg.SampleRateHertz = opusSampleRate
	case ".webm":
		cfg.Encoding = speechpb.RecognitionConfig_WEBM_OPUS
		cfg.SampleRateHertz = opusSampleRate
	default:
		cfg.Encoding = speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
	return cfg
}

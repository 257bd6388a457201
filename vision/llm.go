package vision

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/httpclient"
	"github.com/kbukum/healthverse/llm"
	"github.com/kbukum/healthverse/llm/openai"
	"github.com/kbukum/healthverse/provider"
)

// LLMProviderName is the registered name of the default backend.
const LLMProviderName = "groq"

const (
	defaultBaseURL     = "https://api.groq.com/openai/v1"
	defaultModel       = "meta-llama/llama-4-scout-17b-16e-instruct"
	defaultTemperature = 0.1
	defaultMaxTokens   = 1000
	defaultTimeout     = 60 * time.Second
	defaultCredential  = "GROQ_API_KEY"
)

// LLMConfig configures a vision backend served by an OpenAI-compatible
// chat completions API.
type LLMConfig struct {
	// Name is reported in stage results and logs.
	Name          string        `yaml:"name" mapstructure:"name"`
	APIKey        string        `yaml:"api_key" mapstructure:"api_key"`
	CredentialEnv string        `yaml:"credential_env" mapstructure:"credential_env"`
	BaseURL       string        `yaml:"base_url" mapstructure:"base_url"`
	Model         string        `yaml:"model" mapstructure:"model"`
	Temperature   *float64      `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens     int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills the Groq defaults.
func (c *LLMConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = LLMProviderName
	}
	if c.CredentialEnv == "" {
		c.CredentialEnv = defaultCredential
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Temperature == nil {
		c.Temperature = llm.Float(defaultTemperature)
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// LLMProvider implements Provider by adapting an llm.Adapter. Each request
// becomes one user message with a text part and an image_url part.
type LLMProvider struct {
	cfg   LLMConfig
	inner provider.RequestResponse[Request, Response]
}

var _ Provider = (*LLMProvider)(nil)

// NewLLMProvider builds the chat client for cfg.
func NewLLMProvider(cfg LLMConfig, opts ...httpclient.Option) (*LLMProvider, error) {
	cfg.ApplyDefaults()
	adapter, err := llm.New(llm.Config{
		Name:        cfg.Name,
		Dialect:     openai.DialectName,
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}, opts...)
	if err != nil {
		return nil, err
	}

	p := &LLMProvider{cfg: cfg}
	p.inner = provider.Adapt[Request, Response, llm.CompletionRequest, llm.CompletionResponse](
		adapter, cfg.Name, p.toCompletion, p.fromCompletion,
	)
	return p, nil
}

// LLMFactory returns a provider.Factory for LLMProvider.
func LLMFactory() provider.Factory[Provider] {
	return func(settings map[string]any) (Provider, error) {
		var cfg LLMConfig
		if err := provider.DecodeConfig(settings, &cfg); err != nil {
			return nil, err
		}
		return NewLLMProvider(cfg)
	}
}

// Name returns the configured provider name.
func (p *LLMProvider) Name() string { return p.cfg.Name }

// IsAvailable reports whether an API key is configured.
func (p *LLMProvider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

// Execute sends the prompt and image and returns the reply text.
func (p *LLMProvider) Execute(ctx context.Context, req Request) (Response, error) {
	resp, err := p.inner.Execute(ctx, req)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return Response{}, err
		}
		return Response{}, httpclient.ToAppError(p.cfg.Name, err)
	}
	return resp, nil
}

func (p *LLMProvider) toCompletion(_ context.Context, req Request) (llm.CompletionRequest, error) {
	if p.cfg.APIKey == "" {
		return llm.CompletionRequest{}, apperrors.MissingCredential(p.cfg.Name, p.cfg.CredentialEnv)
	}
	return llm.CompletionRequest{
		Model: req.Model,
		Messages: []llm.Message{{
			Role: "user",
			Parts: []llm.ContentPart{
				llm.TextPart(req.Prompt),
				llm.ImagePart(req.Image.DataURI()),
			},
		}},
	}, nil
}

func (p *LLMProvider) fromCompletion(out llm.CompletionResponse) (Response, error) {
	return Response{Text: out.Content, Model: out.Model, Provider: p.cfg.Name}, nil
}

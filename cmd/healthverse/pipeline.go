package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/healthverse/component"
	"github.com/kbukum/healthverse/consultation"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/observability"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/server"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/synthesis"
	"github.com/kbukum/healthverse/synthesis/elevenlabs"
	"github.com/kbukum/healthverse/synthesis/gtts"
	"github.com/kbukum/healthverse/transcription"
	"github.com/kbukum/healthverse/transcription/googlespeech"
	"github.com/kbukum/healthverse/transcription/groq"
	"github.com/kbukum/healthverse/transcription/whisper"
	"github.com/kbukum/healthverse/vision"
	"github.com/kbukum/healthverse/vision/anthropic"
	"github.com/kbukum/healthverse/web"
)

// pipeline builds the providers once storage is up and mounts the web
// routes before the HTTP server starts listening.
type pipeline struct {
	cfg     *Config
	store   *storage.Component
	srv     *server.Server
	metrics *observability.Metrics
	log     *logger.Logger

	providers consultation.Providers
	closers   []io.Closer
}

var (
	_ component.Component   = (*pipeline)(nil)
	_ component.Describable = (*pipeline)(nil)
)

func newPipeline(cfg *Config, store *storage.Component, srv *server.Server, metrics *observability.Metrics, log *logger.Logger) *pipeline {
	return &pipeline{cfg: cfg, store: store, srv: srv, metrics: metrics, log: log.WithComponent("pipeline")}
}

func (p *pipeline) Name() string { return "consultation-pipeline" }

func (p *pipeline) Start(_ context.Context) error {
	store := p.store.Storage()
	if store == nil {
		return fmt.Errorf("pipeline: storage is not started")
	}

	providers, err := p.buildProviders(store)
	if err != nil {
		return err
	}
	p.providers = providers

	prompt, err := consultation.LoadPrompt(p.cfg.Consultation.PromptFile)
	if err != nil {
		return err
	}

	svc := consultation.NewService(store, providers,
		consultation.WithPrompt(prompt),
		consultation.WithMetrics(p.metrics),
		consultation.WithLogger(p.log),
	)
	web.NewHandler(svc, store,
		web.WithMaxFileSize(p.cfg.Storage.MaxFileSize),
		web.WithLogger(p.log),
	).RegisterRoutes(p.srv.GinEngine())
	return nil
}

func (p *pipeline) buildProviders(store storage.Storage) (consultation.Providers, error) {
	var out consultation.Providers

	if name := p.cfg.Transcription.Provider; name != TranscriptionNone {
		reg := transcription.NewRegistry()
		reg.RegisterFactory(groq.ProviderName, groq.Factory())
		reg.RegisterFactory(whisper.ProviderName, whisper.Factory())
		reg.RegisterFactory(googlespeech.ProviderName, googlespeech.Factory())
		t, err := reg.Create(name, settingsFor(p.cfg.Transcription.Settings, name))
		if err != nil {
			return out, fmt.Errorf("transcription provider %s: %w", name, err)
		}
		if c, ok := t.(io.Closer); ok {
			p.closers = append(p.closers, c)
		}
		out.Transcriber = t
	}

	vreg := vision.NewRegistry()
	vreg.RegisterFactory(vision.LLMProviderName, vision.LLMFactory())
	vreg.RegisterFactory(anthropic.ProviderName, anthropic.Factory())
	analyzer, err := vreg.Create(p.cfg.Vision.Provider, settingsFor(p.cfg.Vision.Settings, p.cfg.Vision.Provider))
	if err != nil {
		return out, fmt.Errorf("vision provider %s: %w", p.cfg.Vision.Provider, err)
	}
	out.Analyzer = analyzer

	sreg := synthesis.NewRegistry()
	sreg.RegisterFactory(elevenlabs.ProviderName, elevenlabs.Factory(store))
	sreg.RegisterFactory(gtts.ProviderName, gtts.Factory(store))
	syn := p.cfg.Synthesis
	if out.Speaker, err = sreg.Create(syn.Provider, settingsFor(syn.Settings, syn.Provider)); err != nil {
		return out, fmt.Errorf("synthesis provider %s: %w", syn.Provider, err)
	}
	if syn.Fallback != "" {
		if out.FallbackSpeaker, err = sreg.Create(syn.Fallback, settingsFor(syn.Settings, syn.Fallback)); err != nil {
			return out, fmt.Errorf("synthesis fallback %s: %w", syn.Fallback, err)
		}
	}
	return out, nil
}

func (p *pipeline) Stop(_ context.Context) error {
	for _, c := range p.closers {
		if err := c.Close(); err != nil {
			p.log.Warn("close provider", logger.ErrorFields("stop", err))
		}
	}
	p.closers = nil
	return nil
}

// Health is degraded while any configured provider is unavailable.
// Consultations still answer in that state, with degraded text or the
// fallback voice.
func (p *pipeline) Health(ctx context.Context) component.Health {
	h := component.Health{Name: p.Name(), Status: component.StatusHealthy}
	if p.providers.Analyzer == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not started"
		return h
	}

	var down []string
	for _, pr := range []provider.Provider{
		p.providers.Transcriber,
		p.providers.Analyzer,
		p.providers.Speaker,
		p.providers.FallbackSpeaker,
	} {
		if pr != nil && !pr.IsAvailable(ctx) {
			down = append(down, pr.Name())
		}
	}
	if len(down) > 0 {
		h.Status = component.StatusDegraded
		h.Message = "unavailable: " + strings.Join(down, ", ")
	}
	return h
}

func (p *pipeline) Describe() component.Description {
	details := fmt.Sprintf("stt=%s vision=%s tts=%s", p.cfg.Transcription.Provider, p.cfg.Vision.Provider, p.cfg.Synthesis.Provider)
	if p.cfg.Synthesis.Fallback != "" {
		details += "->" + p.cfg.Synthesis.Fallback
	}
	return component.Description{Name: "Consultation pipeline", Type: "provider", Details: details}
}

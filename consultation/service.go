package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/media"
	"github.com/kbukum/healthverse/observability"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/synthesis"
	"github.com/kbukum/healthverse/transcription"
	"github.com/kbukum/healthverse/vision"
)

// ReplyName is the storage name of the synthesized answer, before the
// backend adds its extension.
const ReplyName = "reply"

// Providers are the remote capabilities a consultation uses. Transcriber
// and FallbackSpeaker may be nil.
type Providers struct {
	Transcriber     transcription.Provider
	Analyzer        vision.Provider
	Speaker         synthesis.Provider
	FallbackSpeaker synthesis.Provider
}

// Option configures a Service.
type Option func(*Service)

// WithPrompt replaces DefaultPrompt.
func WithPrompt(prompt string) Option {
	return func(s *Service) { s.prompt = prompt }
}

// WithMetrics records stage outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// Service runs consultations.
type Service struct {
	store        storage.Storage
	transcriber  transcription.Provider
	analyzer     vision.Provider
	speaker      synthesis.Provider
	fallbackName string
	prompt       string
	metrics      *observability.Metrics
	log          *logger.Logger
}

// NewService wires the providers. The speaker and its fallback are chained
// so the fallback runs at most once per consultation.
func NewService(store storage.Storage, p Providers, opts ...Option) *Service {
	s := &Service{
		store:       store,
		transcriber: p.Transcriber,
		prompt:      DefaultPrompt,
		log:         logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("consultation")

	s.analyzer = provider.Chain[vision.Request, vision.Response](
		provider.WithLogging[vision.Request, vision.Response](s.log),
		provider.WithTracing[vision.Request, vision.Response]("vision"),
	)(p.Analyzer)

	if p.FallbackSpeaker != nil {
		s.speaker = synthesis.NewChain(p.Speaker, p.FallbackSpeaker, s.metrics, s.log)
		s.fallbackName = p.FallbackSpeaker.Name()
	} else {
		s.speaker = provider.WithLogging[synthesis.Request, *synthesis.Audio](s.log)(p.Speaker)
	}
	return s
}

// Prompt returns the instruction template in use.
func (s *Service) Prompt() string { return s.prompt }

// Consult runs transcription, image analysis and speech synthesis in
// order. It always returns a Result; failures are reported as text in the
// transcript or diagnosis and in the stage reports.
func (s *Service) Consult(ctx context.Context, in Input) Result {
	if in.RequestID == "" {
		in.RequestID = uuid.NewString()
	}
	ctx = logger.ContextWithRequestID(ctx, in.RequestID)
	ctx, span := observability.StartSpan(ctx, observability.SpanConsultation)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, in.RequestID)

	res := Result{RequestID: in.RequestID}
	res.Transcript = s.transcribe(ctx, in, &res)
	res.Diagnosis = s.analyze(ctx, in, res.Transcript, &res)
	res.Audio, res.Diagnosis = s.synthesize(ctx, in, res.Diagnosis, &res)

	s.metrics.RecordConsultation(ctx)
	s.log.WithContext(ctx).Info("consultation finished", logger.Fields(
		"transcript_chars", len(res.Transcript),
		"diagnosis_chars", len(res.Diagnosis),
		"audio", res.Audio != nil,
	))
	return res
}

func (s *Service) transcribe(ctx context.Context, in Input, res *Result) string {
	st := s.startStage(ctx, res, StageTranscribe)
	defer st.end()

	if in.AudioKey == "" {
		st.skip("", "no audio provided")
		return ""
	}
	if s.transcriber == nil || !s.transcriber.IsAvailable(st.ctx) {
		name := ""
		if s.transcriber != nil {
			name = s.transcriber.Name()
		}
		st.skip(name, "transcriber unavailable")
		return ""
	}
	st.provider = s.transcriber.Name()

	path, err := s.store.Path(st.ctx, in.AudioKey)
	if err == nil {
		var resp *transcription.TranscriptionResponse
		resp, err = s.transcriber.Transcribe(st.ctx, transcription.TranscriptionRequest{AudioPath: path})
		if err == nil {
			st.ok()
			return resp.Text
		}
	}
	st.fail(err)
	return fmt.Sprintf(transcriptErrorFormat, err)
}

func (s *Service) analyze(ctx context.Context, in Input, transcript string, res *Result) string {
	st := s.startStage(ctx, res, StageAnalyze)
	defer st.end()

	if in.ImageKey == "" {
		st.skip("", "no image provided")
		return NoImageMessage
	}
	st.provider = s.analyzer.Name()

	resp, err := s.runAnalysis(st.ctx, in.ImageKey, transcript)
	if err != nil {
		st.fail(err)
		return fmt.Sprintf(analysisErrorFormat, err)
	}
	st.ok()
	return resp.Text
}

func (s *Service) runAnalysis(ctx context.Context, imageKey, transcript string) (vision.Response, error) {
	path, err := s.store.Path(ctx, imageKey)
	if err != nil {
		return vision.Response{}, err
	}
	img, err := media.EncodeImage(path)
	if err != nil {
		return vision.Response{}, err
	}
	return s.analyzer.Execute(ctx, vision.Request{
		Prompt: BuildPrompt(s.prompt, transcript),
		Image:  img,
	})
}

func (s *Service) synthesize(ctx context.Context, in Input, diagnosis string, res *Result) (*synthesis.Audio, string) {
	st := s.startStage(ctx, res, StageSynthesize)
	defer st.end()
	st.provider = s.speaker.Name()

	audio, err := s.speaker.Execute(st.ctx, synthesis.Request{
		Text: diagnosis,
		Key:  storage.Key(in.RequestID, ReplyName),
	})
	if err != nil {
		st.fail(err)
		return nil, diagnosis + ttsErrorSuffix(err)
	}

	st.provider = audio.Provider
	if s.fallbackName != "" && audio.Provider == s.fallbackName {
		st.finish(StatusFallback, "")
	} else {
		st.ok()
	}
	return audio, diagnosis
}

// ttsErrorSuffix describes a synthesis failure for the end of the diagnosis.
func ttsErrorSuffix(err error) string {
	var fe *provider.FallbackError
	if errors.As(err, &fe) {
		return fmt.Sprintf(" [TTS error: %v | %s fallback error: %v]", fe.PrimaryErr, fe.Fallback, fe.FallbackErr)
	}
	return fmt.Sprintf(" [TTS error: %v]", err)
}

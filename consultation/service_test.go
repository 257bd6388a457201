package consultation_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/kbukum/healthverse/consultation"
	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/storage"
	"github.com/kbukum/healthverse/storage/local"
	"github.com/kbukum/healthverse/synthesis"
	"github.com/kbukum/healthverse/transcription"
	"github.com/kbukum/healthverse/vision"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Name() string                       { return "groq" }
func (f *fakeTranscriber) IsAvailable(_ context.Context) bool { return true }
func (f *fakeTranscriber) Transcribe(_ context.Context, req transcription.TranscriptionRequest) (*transcription.TranscriptionResponse, error) {
	f.calls++
	if _, err := os.Stat(req.AudioPath); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &transcription.TranscriptionResponse{Text: f.text}, nil
}

type fakeAnalyzer struct {
	text   string
	err    error
	calls  int
	prompt string
}

func (f *fakeAnalyzer) Name() string                       { return "groq" }
func (f *fakeAnalyzer) IsAvailable(_ context.Context) bool { return true }
func (f *fakeAnalyzer) Execute(_ context.Context, req vision.Request) (vision.Response, error) {
	f.calls++
	f.prompt = req.Prompt
	if req.Image.IsZero() {
		return vision.Response{}, errors.New("empty image")
	}
	if f.err != nil {
		return vision.Response{}, f.err
	}
	return vision.Response{Text: f.text, Provider: "groq"}, nil
}

type fakeSpeaker struct {
	name   string
	format string
	store  storage.Storage
	err    error
	calls  int
	text   string
}

func (f *fakeSpeaker) Name() string                       { return f.name }
func (f *fakeSpeaker) IsAvailable(_ context.Context) bool { return f.err == nil }
func (f *fakeSpeaker) Execute(ctx context.Context, req synthesis.Request) (*synthesis.Audio, error) {
	f.calls++
	f.text = req.Text
	if f.err != nil {
		return nil, f.err
	}
	return synthesis.Store(ctx, f.store, req, f.name, f.format, "audio/"+f.format, []byte("audio"))
}

type fixture struct {
	store       *local.Storage
	transcriber *fakeTranscriber
	analyzer    *fakeAnalyzer
	primary     *fakeSpeaker
	fallback    *fakeSpeaker
	svc         *consultation.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	f := &fixture{
		store:       store,
		transcriber: &fakeTranscriber{text: "I have an itchy rash"},
		analyzer:    &fakeAnalyzer{text: "With what I see, I think you have eczema."},
		primary:     &fakeSpeaker{name: "elevenlabs", format: "wav", store: store},
		fallback:    &fakeSpeaker{name: "gtts", format: "mp3", store: store},
	}
	f.svc = consultation.NewService(store, consultation.Providers{
		Transcriber:     f.transcriber,
		Analyzer:        f.analyzer,
		Speaker:         f.primary,
		FallbackSpeaker: f.fallback,
	}, consultation.WithLogger(logger.NewNop()))
	return f
}

func (f *fixture) upload(t *testing.T, id, name string, data []byte) string {
	t.Helper()
	key := storage.Key(id, name)
	if err := f.store.Upload(context.Background(), key, bytes.NewReader(data)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return key
}

func (f *fixture) input(t *testing.T, id string, audio, image bool) consultation.Input {
	in := consultation.Input{RequestID: id}
	if audio {
		in.AudioKey = f.upload(t, id, "voice.wav", []byte("RIFF"))
	}
	if image {
		in.ImageKey = f.upload(t, id, "photo.png", pngHeader)
	}
	return in
}

func wantStage(t *testing.T, res consultation.Result, stage, status string) {
	t.Helper()
	got, ok := res.Stage(stage)
	if !ok {
		t.Fatalf("stage %q missing from %+v", stage, res.Stages)
	}
	if got.Status != status {
		t.Errorf("stage %q status = %q, want %q (%+v)", stage, got.Status, status, got)
	}
}

func TestConsult_AllStagesSucceed(t *testing.T) {
	f := newFixture(t)
	res := f.svc.Consult(context.Background(), f.input(t, "req-1", true, true))

	if res.Transcript != "I have an itchy rash" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if res.Diagnosis != f.analyzer.text {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	wantPrompt := consultation.DefaultPrompt + consultation.PromptSeparator + "I have an itchy rash"
	if f.analyzer.prompt != wantPrompt {
		t.Errorf("prompt = %q, want %q", f.analyzer.prompt, wantPrompt)
	}
	if res.Audio == nil || res.Audio.Key != "req-1/reply.wav" || res.Audio.Provider != "elevenlabs" {
		t.Fatalf("Audio = %+v", res.Audio)
	}
	if _, err := os.Stat(res.Audio.Path); err != nil {
		t.Errorf("audio file: %v", err)
	}
	if f.primary.text != res.Diagnosis {
		t.Errorf("spoken text = %q, want diagnosis", f.primary.text)
	}
	if f.fallback.calls != 0 {
		t.Errorf("fallback calls = %d, want 0", f.fallback.calls)
	}
	if len(res.Stages) != 3 {
		t.Fatalf("stages = %+v", res.Stages)
	}
	for _, st := range []string{consultation.StageTranscribe, consultation.StageAnalyze, consultation.StageSynthesize} {
		wantStage(t, res, st, consultation.StatusOK)
	}
}

func TestConsult_NoImage(t *testing.T) {
	f := newFixture(t)
	res := f.svc.Consult(context.Background(), f.input(t, "req-2", true, false))

	if res.Diagnosis != consultation.NoImageMessage {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	if f.analyzer.calls != 0 {
		t.Errorf("analyzer calls = %d, want 0", f.analyzer.calls)
	}
	if f.primary.text != consultation.NoImageMessage {
		t.Errorf("spoken text = %q", f.primary.text)
	}
	if res.Audio == nil {
		t.Fatal("Audio = nil")
	}
	wantStage(t, res, consultation.StageAnalyze, consultation.StatusSkipped)
}

func TestConsult_NoAudio(t *testing.T) {
	f := newFixture(t)
	res := f.svc.Consult(context.Background(), f.input(t, "req-3", false, true))

	if res.Transcript != "" {
		t.Errorf("Transcript = %q, want empty", res.Transcript)
	}
	if f.transcriber.calls != 0 {
		t.Errorf("transcriber calls = %d", f.transcriber.calls)
	}
	if f.analyzer.prompt != consultation.DefaultPrompt {
		t.Errorf("prompt = %q, want template only", f.analyzer.prompt)
	}
	wantStage(t, res, consultation.StageTranscribe, consultation.StatusSkipped)
}

func TestConsult_TranscriptionError(t *testing.T) {
	f := newFixture(t)
	f.transcriber.err = errors.New("rate limited")
	res := f.svc.Consult(context.Background(), f.input(t, "req-4", true, true))

	if res.Transcript != "[STT error: rate limited]" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	if !strings.HasSuffix(f.analyzer.prompt, res.Transcript) {
		t.Errorf("prompt = %q, want transcript appended", f.analyzer.prompt)
	}
	if res.Diagnosis != f.analyzer.text {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	wantStage(t, res, consultation.StageTranscribe, consultation.StatusFailed)
}

func TestConsult_AnalysisError(t *testing.T) {
	f := newFixture(t)
	f.analyzer.err = errors.New("model overloaded")
	res := f.svc.Consult(context.Background(), f.input(t, "req-5", true, true))

	if !strings.HasPrefix(res.Diagnosis, "Image analysis failed: ") || !strings.Contains(res.Diagnosis, "model overloaded") {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	if f.primary.text != res.Diagnosis {
		t.Errorf("spoken text = %q", f.primary.text)
	}
	wantStage(t, res, consultation.StageAnalyze, consultation.StatusFailed)
}

func TestConsult_AnalyzerWithoutKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	analyzer, err := vision.NewLLMProvider(vision.LLMConfig{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewLLMProvider: %v", err)
	}
	f := newFixture(t)
	f.svc = consultation.NewService(f.store, consultation.Providers{
		Transcriber:     f.transcriber,
		Analyzer:        analyzer,
		Speaker:         f.primary,
		FallbackSpeaker: f.fallback,
	}, consultation.WithLogger(logger.NewNop()))

	res := f.svc.Consult(context.Background(), f.input(t, "req-keyless", true, true))

	if !strings.HasPrefix(res.Diagnosis, "Image analysis failed: ") || !strings.Contains(res.Diagnosis, string(apperrors.ErrCodeMissingCredential)) {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	if !strings.Contains(res.Diagnosis, "GROQ_API_KEY") {
		t.Errorf("Diagnosis %q should name the missing variable", res.Diagnosis)
	}
	if f.primary.calls != 1 || f.primary.text != res.Diagnosis {
		t.Errorf("speaker calls=%d text=%q", f.primary.calls, f.primary.text)
	}
	if res.Audio == nil || res.Audio.Key != "req-keyless/reply.wav" {
		t.Errorf("Audio = %+v", res.Audio)
	}
	if calls != 0 {
		t.Errorf("vision backend called %d times", calls)
	}
	wantStage(t, res, consultation.StageAnalyze, consultation.StatusFailed)
}

func TestConsult_MissingCredentialUsesFallback(t *testing.T) {
	f := newFixture(t)
	f.primary.err = apperrors.MissingCredential("elevenlabs", "ELEVEN_API_KEY")
	res := f.svc.Consult(context.Background(), f.input(t, "req-6", true, true))

	if res.Audio == nil {
		t.Fatal("Audio = nil")
	}
	if res.Audio.Key != "req-6/reply.mp3" || res.Audio.Provider != "gtts" {
		t.Errorf("Audio = %+v", res.Audio)
	}
	if f.primary.calls != 1 || f.fallback.calls != 1 {
		t.Errorf("calls primary=%d fallback=%d", f.primary.calls, f.fallback.calls)
	}
	if res.Diagnosis != f.analyzer.text {
		t.Errorf("Diagnosis = %q, want unchanged", res.Diagnosis)
	}
	wantStage(t, res, consultation.StageSynthesize, consultation.StatusFallback)
}

func TestConsult_BothSpeakersFail(t *testing.T) {
	f := newFixture(t)
	f.primary.err = errors.New("quota exceeded")
	f.fallback.err = errors.New("blocked")
	res := f.svc.Consult(context.Background(), f.input(t, "req-7", true, true))

	if res.Audio != nil {
		t.Errorf("Audio = %+v, want nil", res.Audio)
	}
	if !strings.HasPrefix(res.Diagnosis, f.analyzer.text+" [TTS error: ") {
		t.Errorf("Diagnosis = %q", res.Diagnosis)
	}
	for _, want := range []string{"quota exceeded", "gtts fallback error: ", "blocked"} {
		if !strings.Contains(res.Diagnosis, want) {
			t.Errorf("Diagnosis %q missing %q", res.Diagnosis, want)
		}
	}
	if f.fallback.calls != 1 {
		t.Errorf("fallback calls = %d, want 1", f.fallback.calls)
	}
	wantStage(t, res, consultation.StageSynthesize, consultation.StatusFailed)
}

func TestConsult_GeneratesRequestID(t *testing.T) {
	f := newFixture(t)
	a := f.svc.Consult(context.Background(), consultation.Input{})
	b := f.svc.Consult(context.Background(), consultation.Input{})

	if a.RequestID == "" || a.RequestID == b.RequestID {
		t.Fatalf("request ids = %q, %q", a.RequestID, b.RequestID)
	}
	if a.Audio == nil || b.Audio == nil || a.Audio.Path == b.Audio.Path {
		t.Errorf("audio paths must differ: %+v %+v", a.Audio, b.Audio)
	}
}

func TestConsult_NilTranscriber(t *testing.T) {
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := consultation.NewService(store, consultation.Providers{
		Analyzer: &fakeAnalyzer{text: "ok"},
		Speaker:  &fakeSpeaker{name: "gtts", format: "mp3", store: store},
	}, consultation.WithLogger(logger.NewNop()))

	in := consultation.Input{RequestID: "req-8", AudioKey: "req-8/voice.wav"}
	res := svc.Consult(context.Background(), in)
	if res.Transcript != "" {
		t.Errorf("Transcript = %q", res.Transcript)
	}
	wantStage(t, res, consultation.StageTranscribe, consultation.StatusSkipped)
	wantStage(t, res, consultation.StageSynthesize, consultation.StatusOK)
}

package synthesis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/storage/local"
	"github.com/kbukum/healthverse/synthesis"
)

type fakeSynth struct {
	name   string
	format string
	err    error
	calls  int
}

func (f *fakeSynth) Name() string                       { return f.name }
func (f *fakeSynth) IsAvailable(_ context.Context) bool { return f.err == nil }
func (f *fakeSynth) Execute(_ context.Context, req synthesis.Request) (*synthesis.Audio, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &synthesis.Audio{Key: req.Key + "." + f.format, Path: "/tmp/" + req.Key + "." + f.format, Format: f.format, Provider: f.name}, nil
}

func TestChain(t *testing.T) {
	missing := apperrors.MissingCredential("elevenlabs", "ELEVEN_API_KEY")

	tests := []struct {
		name          string
		primaryErr    error
		fallbackErr   error
		wantSuffix    string
		wantProvider  string
		wantFallbacks int
		wantErr       bool
	}{
		{name: "primary ok", wantSuffix: ".wav", wantProvider: "elevenlabs"},
		{name: "missing credential falls back", primaryErr: missing, wantSuffix: ".mp3", wantProvider: "gtts", wantFallbacks: 1},
		{name: "both fail", primaryErr: errors.New("quota exceeded"), fallbackErr: errors.New("blocked"), wantFallbacks: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeSynth{name: "elevenlabs", format: "wav", err: tt.primaryErr}
			fallback := &fakeSynth{name: "gtts", format: "mp3", err: tt.fallbackErr}
			chain := synthesis.NewChain(primary, fallback, nil, logger.NewNop())

			audio, err := chain.Execute(context.Background(), synthesis.Request{Text: "hello", Key: "r1/reply"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if primary.calls != 1 || fallback.calls != tt.wantFallbacks {
				t.Errorf("calls primary=%d fallback=%d", primary.calls, fallback.calls)
			}
			if tt.wantErr {
				var fe *provider.FallbackError
				if !errors.As(err, &fe) {
					t.Fatalf("err = %T, want *provider.FallbackError", err)
				}
				if !strings.Contains(fe.PrimaryErr.Error(), "quota exceeded") || !strings.Contains(fe.FallbackErr.Error(), "blocked") {
					t.Errorf("FallbackError = %v", fe)
				}
				if audio != nil {
					t.Errorf("audio = %+v, want nil", audio)
				}
				return
			}
			if !strings.HasSuffix(audio.Path, tt.wantSuffix) || audio.Provider != tt.wantProvider {
				t.Errorf("audio = %+v", audio)
			}
		})
	}
}

func TestStore(t *testing.T) {
	store, err := local.NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	audio, err := synthesis.Store(context.Background(), store, synthesis.Request{Key: "abc/reply"}, "gtts", synthesis.FormatMP3, synthesis.ContentTypeMP3, []byte("ID3"))
	if err != nil {
		t.Fatal(err)
	}
	if audio.Key != "abc/reply.mp3" || !strings.HasSuffix(audio.Path, "abc/reply.mp3") {
		t.Errorf("audio = %+v", audio)
	}

	if _, err := synthesis.Store(context.Background(), store, synthesis.Request{}, "gtts", "mp3", "audio/mpeg", nil); !apperrors.HasCode(err, apperrors.ErrCodeMissingField) {
		t.Errorf("err = %v, want MISSING_FIELD", err)
	}
}

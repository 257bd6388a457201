package consultation

import "github.com/kbukum/healthverse/synthesis"

// Stage names.
const (
	StageTranscribe = "transcribe"
	StageAnalyze    = "analyze"
	StageSynthesize = "synthesize"
)

// Stage outcomes.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
	// StatusFallback marks audio produced by the fallback voice.
	StatusFallback = "fallback"
)

// User-visible texts for degraded outcomes.
const (
	NoImageMessage        = "No image provided for me to analyze"
	transcriptErrorFormat = "[STT error: %v]"
	analysisErrorFormat   = "Image analysis failed: %v"
)

// Input names the stored uploads of one consultation. Empty keys mean the
// upload was not provided.
type Input struct {
	RequestID string
	AudioKey  string
	ImageKey  string
}

// StageReport describes how one stage went.
type StageReport struct {
	Stage      string `json:"stage"`
	Status     string `json:"status"`
	Provider   string `json:"provider,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Result is the outcome of one consultation. Audio is nil when speech
// synthesis failed on every provider.
type Result struct {
	RequestID  string
	Transcript string
	Diagnosis  string
	Audio      *synthesis.Audio
	Stages     []StageReport
}

// Stage returns the report for name, if that stage ran.
func (r Result) Stage(name string) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Stage == name {
			return s, true
		}
	}
	return StageReport{}, false
}

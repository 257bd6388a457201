package web

import (
	"embed"
	"html/template"

	"github.com/kbukum/healthverse/consultation"
)

// Page texts.
const (
	PageTitle       = "HealthVerse AI"
	LabelTranscript = "Speech to Text"
	LabelDiagnosis  = "Doctor's Response"
	LabelAudio      = "Doctor's Voice"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"label": func(name string) string { return labels[name] },
}).ParseFS(templateFS, "templates/index.html"))

var labels = map[string]string{
	"transcript": LabelTranscript,
	"diagnosis":  LabelDiagnosis,
	"audio":      LabelAudio,
}

type pageData struct {
	Title  string
	Error  string
	Result *resultView
}

// resultView is the API and page representation of a consultation.
type resultView struct {
	RequestID  string                     `json:"request_id"`
	Transcript string                     `json:"transcript"`
	Diagnosis  string                     `json:"diagnosis"`
	AudioURL   string                     `json:"audio_url,omitempty"`
	Stages     []consultation.StageReport `json:"stages"`
}

func newResultView(res consultation.Result) resultView {
	v := resultView{
		RequestID:  res.RequestID,
		Transcript: res.Transcript,
		Diagnosis:  res.Diagnosis,
		Stages:     res.Stages,
	}
	if res.Audio != nil {
		v.AudioURL = "/media/" + res.Audio.Key
	}
	return v
}

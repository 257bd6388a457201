package openai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kbukum/healthverse/llm"
)

func TestBuildRequest_Multimodal(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Model:       "meta-llama/llama-4-scout-17b-16e-instruct",
		Temperature: llm.Float(0.1),
		MaxTokens:   1000,
		Messages: []llm.Message{{
			Role: "user",
			Parts: []llm.ContentPart{
				llm.TextPart("describe"),
				llm.ImagePart("data:image/png;base64,AAAA"),
			},
		}},
	})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"model":"meta-llama/llama-4-scout-17b-16e-instruct","messages":[{"role":"user","content":[{"type":"text","text":"describe"},{"type":"image_url","image_url":{"url":"data:image/png;base64,AAAA"}}]}],"temperature":0.1,"max_tokens":1000}`
	if string(raw) != want {
		t.Errorf("body =\n%s\nwant\n%s", raw, want)
	}
}

func TestBuildRequest_SystemAndText(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Model:        "m",
		SystemPrompt: "be brief",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	raw, _ := json.Marshal(body)
	if !strings.HasPrefix(string(raw), `{"model":"m","messages":[{"role":"system","content":"be brief"},{"role":"user","content":"hi"}]`) {
		t.Errorf("body = %s", raw)
	}
	if strings.Contains(string(raw), "temperature") {
		t.Errorf("unset temperature should be omitted: %s", raw)
	}
}

func TestBuildRequest_ZeroTemperature(t *testing.T) {
	d := &Dialect{}
	body, err := d.BuildRequest(llm.CompletionRequest{
		Model:       "m",
		Temperature: llm.Float(0),
		Messages:    []llm.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	raw, _ := json.Marshal(body)
	if !strings.Contains(string(raw), `"temperature":0`) {
		t.Errorf("explicit zero temperature dropped: %s", raw)
	}
}

func TestBuildRequest_Errors(t *testing.T) {
	d := &Dialect{}
	if _, err := d.BuildRequest(llm.CompletionRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
	_, err := d.BuildRequest(llm.CompletionRequest{Messages: []llm.Message{{
		Role:  "user",
		Parts: []llm.ContentPart{{Type: "audio"}},
	}}})
	if err == nil {
		t.Error("expected error for unsupported part")
	}
}

func TestParseResponse(t *testing.T) {
	d := &Dialect{}
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{name: "ok", body: `{"model":"m","choices":[{"message":{"content":"With what I see"}}]}`, want: "With what I see"},
		{name: "no choices", body: `{"choices":[]}`, wantErr: true},
		{name: "error object", body: `{"error":{"message":"bad"}}`, wantErr: true},
		{name: "malformed", body: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := d.ParseResponse([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && resp.Content != tt.want {
				t.Errorf("content = %q, want %q", resp.Content, tt.want)
			}
		})
	}
}

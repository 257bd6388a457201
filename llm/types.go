package llm

// Content part types.
const (
	PartText     = "text"
	PartImageURL = "image_url"
)

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	// ImageURL is an http(s) URL or a data URI.
	ImageURL string `json:"image_url,omitempty"`
}

// Float returns a pointer to v, for optional request settings.
func Float(v float64) *float64 { return &v }

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartText, Text: text}
}

// ImagePart builds an image content part from a URL or data URI.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: PartImageURL, ImageURL: url}
}

// Message represents a single chat message. When Parts is non-empty it
// takes precedence over Content.
type Message struct {
	Role    string        `json:"role" yaml:"role"` // "system", "user", "assistant"
	Content string        `json:"content,omitempty" yaml:"content"`
	Parts   []ContentPart `json:"parts,omitempty" yaml:"-"`
}

// CompletionRequest is the universal input for all LLM dialects.
type CompletionRequest struct {
	// Model overrides the adapter's default model.
	Model    string    `json:"model,omitempty"`
	Messages []Message `json:"messages"`
	// SystemPrompt is prepended as a system message.
	SystemPrompt string `json:"system_prompt,omitempty"`
	// Temperature nil means the adapter default.
	Temperature *float64 `json:"temperature,omitempty"`
	// MaxTokens 0 means the adapter default.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResponse is the universal output from all LLM dialects.
type CompletionResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

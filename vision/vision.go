package vision

import (
	"github.com/kbukum/healthverse/media"
	"github.com/kbukum/healthverse/provider"
)

// Request is one image question.
type Request struct {
	Prompt string
	// Model overrides the backend's configured model.
	Model string
	Image media.EncodedImage
}

// Response is the model's answer.
type Response struct {
	Text     string
	Model    string
	Provider string
}

// Provider answers image questions.
type Provider = provider.RequestResponse[Request, Response]

// NewRegistry creates a registry of vision provider factories.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

package synthesis

import (
	"context"

	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/provider"
	"github.com/kbukum/healthverse/storage"
)

// Audio formats and their content types.
const (
	FormatWAV = "wav"
	FormatMP3 = "mp3"

	ContentTypeWAV = "audio/wav"
	ContentTypeMP3 = "audio/mpeg"
)

// Request is text to speak. Key is the storage key without extension;
// each backend appends the extension of the container it produces.
type Request struct {
	Text string
	Key  string
}

// Audio describes a stored synthesized reply.
type Audio struct {
	Key         string `json:"key"`
	Path        string `json:"-"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Provider    string `json:"provider"`
}

// Provider synthesizes speech.
type Provider = provider.RequestResponse[Request, *Audio]

// NewRegistry creates a registry of synthesis provider factories.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// Store writes encoded audio to key plus the format extension and returns
// the resulting Audio.
func Store(ctx context.Context, store storage.Storage, req Request, providerName, format, contentType string, data []byte) (*Audio, error) {
	if req.Key == "" {
		return nil, apperrors.MissingField("key")
	}
	key := req.Key + "." + format
	bc := storage.NewByteClient(store)
	if err := bc.Upload(ctx, key, data); err != nil {
		return nil, apperrors.StorageError("write", err)
	}
	path, err := bc.Path(ctx, key)
	if err != nil {
		return nil, apperrors.StorageError("resolve", err)
	}
	return &Audio{
		Key:         key,
		Path:        path,
		Format:      format,
		ContentType: contentType,
		Provider:    providerName,
	}, nil
}

// ValidateText rejects empty input before any backend is called.
func ValidateText(text string) error {
	if text == "" {
		return apperrors.MissingField("text")
	}
	return nil
}

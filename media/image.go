package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultImageType is used when content does not sniff as an image.
const DefaultImageType = "image/jpeg"

// EncodedImage is an image file's full contents as standard base64.
type EncodedImage struct {
	Data      string
	MediaType string
}

// DataURI returns the image as a data: URI.
func (e EncodedImage) DataURI() string {
	return "data:" + e.MediaType + ";base64," + e.Data
}

// IsZero reports whether the image carries no payload and no type.
func (e EncodedImage) IsZero() bool {
	return e.Data == "" && e.MediaType == ""
}

// EncodeImage reads the whole file at path and base64-encodes it. The
// bytes are not validated; zero-length files encode to an empty payload.
// A missing file returns an error wrapping fs.ErrNotExist.
func EncodeImage(path string) (EncodedImage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("media: read image: %w", err)
	}
	return EncodeImageBytes(raw), nil
}

// EncodeImageBytes encodes raw image bytes already in memory.
func EncodeImageBytes(raw []byte) EncodedImage {
	return EncodedImage{
		Data:      base64.StdEncoding.EncodeToString(raw),
		MediaType: DetectImageType(raw),
	}
}

// DetectImageType sniffs raw for an image MIME type, falling back to
// DefaultImageType.
func DetectImageType(raw []byte) string {
	if len(raw) == 0 {
		return DefaultImageType
	}
	m := mimetype.Detect(raw)
	if m == nil || !strings.HasPrefix(m.String(), "image/") {
		return DefaultImageType
	}
	return baseType(m.String())
}

// ContentTypeForFile returns the MIME type for a stored file, preferring
// the extension and falling back to content sniffing.
func ContentTypeForFile(path string) (string, error) {
	if ct := extensionType(path); ct != "" {
		return ct, nil
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("media: detect content type: %w", err)
	}
	return baseType(m.String()), nil
}

var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".webm": "audio/webm",
}

func extensionType(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return audioTypes[strings.ToLower(path[i:])]
}

func baseType(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		return strings.TrimSpace(mime[:i])
	}
	return mime
}

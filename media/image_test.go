package media

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeImage_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, size := range []int{1, 3, 255, 4096} {
		data := make([]byte, size)
		rng.Read(data)
		path := writeFile(t, "blob.bin", data)

		img, err := EncodeImage(path)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		decoded, err := base64.StdEncoding.DecodeString(img.Data)
		if err != nil {
			t.Fatalf("size %d: decode: %v", size, err)
		}
		if string(decoded) != string(data) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}

func TestEncodeImage_ZeroLength(t *testing.T) {
	img, err := EncodeImage(writeFile(t, "empty.jpg", nil))
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	if img.Data != "" {
		t.Errorf("Data = %q, want empty", img.Data)
	}
	if img.MediaType != DefaultImageType {
		t.Errorf("MediaType = %q", img.MediaType)
	}
}

func TestEncodeImage_Missing(t *testing.T) {
	_, err := EncodeImage(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "png", data: pngHeader, want: "image/png"},
		{name: "jpeg", data: []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0}, want: "image/jpeg"},
		{name: "plain text", data: []byte("not an image at all"), want: DefaultImageType},
		{name: "empty", data: nil, want: DefaultImageType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectImageType(tt.data); got != tt.want {
				t.Errorf("DetectImageType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDataURI(t *testing.T) {
	img := EncodeImageBytes(pngHeader)
	if !strings.HasPrefix(img.DataURI(), "data:image/png;base64,") {
		t.Errorf("DataURI() = %q", img.DataURI())
	}
}

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{file: "reply.wav", want: "audio/wav"},
		{file: "reply.MP3", want: "audio/mpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, err := ContentTypeForFile(tt.file)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

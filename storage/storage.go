package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// ErrInvalidKey is returned for keys that are empty, absolute or escape
// their request directory.
var ErrInvalidKey = errors.New("storage: invalid key")

// ErrNotFound is returned when a key has no stored object.
var ErrNotFound = errors.New("storage: not found")

// FileInfo contains metadata about a stored object.
type FileInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// Storage defines the media workspace operations.
type Storage interface {
	// Upload writes data from reader to the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download returns a reader for the object at the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object at the given key.
	// Returns nil if the object does not exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// List returns metadata for all objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]FileInfo, error)

	// Path resolves a key to a local file path. Providers that read media
	// from disk (transcription, image encoding) consume these paths.
	Path(ctx context.Context, key string) (string, error)
}

// Key joins a request id and a file name into a storage key.
func Key(requestID, name string) string {
	return requestID + "/" + name
}

// SplitKey returns the request id and file name of a key.
func SplitKey(key string) (requestID, name string, err error) {
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q has no request segment", ErrInvalidKey, key)
	}
	return parts[0], parts[1], nil
}

// ValidateKey rejects keys that could resolve outside the workspace.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

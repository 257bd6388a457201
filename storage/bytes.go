package storage

import (
	"bytes"
	"context"
	"io"
)

// ByteClient provides a []byte-oriented view of a Storage for callers that
// hold whole payloads in memory (synthesized audio, small uploads).
type ByteClient interface {
	Upload(ctx context.Context, key string, data []byte) error
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Path(ctx context.Context, key string) (string, error)
}

type byteAdapter struct {
	storage Storage
}

// NewByteClient wraps a streaming Storage implementation with []byte convenience methods.
func NewByteClient(s Storage) ByteClient {
	return &byteAdapter{storage: s}
}

func (a *byteAdapter) Upload(ctx context.Context, key string, data []byte) error {
	return a.storage.Upload(ctx, key, bytes.NewReader(data))
}

func (a *byteAdapter) Download(ctx context.Context, key string) ([]byte, error) {
	rc, err := a.storage.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func (a *byteAdapter) Delete(ctx context.Context, key string) error {
	return a.storage.Delete(ctx, key)
}

func (a *byteAdapter) Path(ctx context.Context, key string) (string, error) {
	return a.storage.Path(ctx, key)
}

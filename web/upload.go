package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/kbukum/healthverse/consultation"
	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/storage"
)

// multipartMemory is how much of a form is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,5}$`)

// saveUploads writes the optional audio and image parts into the request's
// workspace, setting the keys on in. It returns every key it wrote so the
// caller can remove them, even on error.
func (h *Handler) saveUploads(c *gin.Context, requestID string, in *consultation.Input) ([]string, error) {
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, h.formError(err)
	}

	var written []string
	for _, part := range []struct {
		field string
		key   *string
	}{
		{FieldAudio, &in.AudioKey},
		{FieldImage, &in.ImageKey},
	} {
		fh, err := c.FormFile(part.field)
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			continue
		}
		if err != nil {
			return written, h.formError(err)
		}
		key, err := h.saveFile(c.Request.Context(), requestID, part.field, fh)
		if err != nil {
			return written, err
		}
		written = append(written, key)
		*part.key = key
	}
	return written, nil
}

func (h *Handler) saveFile(ctx context.Context, requestID, field string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > h.maxFileSize {
		return "", apperrors.PayloadTooLarge(h.maxFileSize).WithDetail("field", field)
	}
	f, err := fh.Open()
	if err != nil {
		return "", apperrors.InvalidInput(field, err.Error())
	}
	defer func() { _ = f.Close() }()

	ext, err := uploadExt(fh.Filename, f)
	if err != nil {
		return "", apperrors.InvalidInput(field, err.Error())
	}
	key := storage.Key(requestID, field+ext)
	if err := h.store.Upload(ctx, key, f); err != nil {
		return "", apperrors.StorageError("upload", err)
	}
	return key, nil
}

// uploadExt keeps a plain extension from the client file name; otherwise it
// sniffs the content. Providers such as Groq pick the decoder by extension.
func uploadExt(filename string, f io.ReadSeeker) (string, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); safeExt.MatchString(ext) {
		return ext, nil
	}
	m, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}
	return m.Extension(), nil
}

func (h *Handler) formError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperrors.PayloadTooLarge(mbe.Limit)
	}
	return apperrors.InvalidInput("form", err.Error())
}

// cleanup removes the uploads; the reply audio stays for playback.
func (h *Handler) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := h.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			h.log.WithContext(ctx).Warn("remove upload", logger.Fields("key", key, logger.FieldError, err.Error()))
		}
	}
}

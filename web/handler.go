package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/healthverse/consultation"
	apperrors "github.com/kbukum/healthverse/errors"
	"github.com/kbukum/healthverse/logger"
	"github.com/kbukum/healthverse/media"
	"github.com/kbukum/healthverse/server"
	"github.com/kbukum/healthverse/server/middleware"
	"github.com/kbukum/healthverse/storage"
)

// Form field names.
const (
	FieldAudio = "audio"
	FieldImage = "image"
)

// Consulter runs one consultation.
type Consulter interface {
	Consult(ctx context.Context, in consultation.Input) consultation.Result
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxFileSize limits each uploaded file. Zero keeps the storage default.
func WithMaxFileSize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxFileSize = n
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// Handler serves the consultation form, API and reply audio.
type Handler struct {
	svc         Consulter
	store       storage.Storage
	page        *template.Template
	maxFileSize int64
	log         *logger.Logger
}

// NewHandler builds a Handler.
func NewHandler(svc Consulter, store storage.Storage, opts ...Option) *Handler {
	h := &Handler{
		svc:         svc,
		store:       store,
		page:        pageTemplate,
		maxFileSize: storage.DefaultMaxFileSize,
		log:         logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("web")
	return h
}

// RegisterRoutes mounts the handler on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Index)
	r.POST("/consultations", h.Consult)
	r.GET("/media/:request/:file", h.Media)
}

// Index renders the empty form.
func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, pageData{Title: PageTitle})
}

// Consult stores the uploads, runs the pipeline and answers with the
// transcript, diagnosis and audio link. Pipeline failures still answer 200
// with degraded text; only upload problems produce errors.
func (h *Handler) Consult(c *gin.Context) {
	ctx := c.Request.Context()
	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		server.RespondWithError(c, apperrors.Internal(errors.New("request id middleware not installed")))
		return
	}

	in := consultation.Input{RequestID: requestID}
	uploaded, err := h.saveUploads(c, requestID, &in)
	defer h.cleanup(ctx, uploaded)
	if err != nil {
		h.fail(c, err)
		return
	}

	res := h.svc.Consult(ctx, in)
	view := newResultView(res)

	if wantsHTML(c) {
		h.render(c, http.StatusOK, pageData{Title: PageTitle, Result: &view})
		return
	}
	server.RespondOK(c, view)
}

// Media streams a stored reply.
func (h *Handler) Media(c *gin.Context) {
	requestID, file := c.Param("request"), c.Param("file")
	if !strings.HasPrefix(file, consultation.ReplyName+".") {
		server.RespondWithError(c, apperrors.NotFound("audio", file))
		return
	}
	key := storage.Key(requestID, file)
	if err := storage.ValidateKey(key); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("file", err.Error()))
		return
	}

	ctx := c.Request.Context()
	ok, err := h.store.Exists(ctx, key)
	if err != nil {
		server.RespondWithError(c, apperrors.StorageError("exists", err))
		return
	}
	if !ok {
		server.RespondWithError(c, apperrors.NotFound("audio", key))
		return
	}
	path, err := h.store.Path(ctx, key)
	if err != nil {
		server.RespondWithError(c, apperrors.StorageError("path", err))
		return
	}
	ct, err := media.ContentTypeForFile(path)
	if err != nil {
		server.RespondWithError(c, apperrors.StorageError("detect", err))
		return
	}
	c.Header("Content-Type", ct)
	c.File(path)
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if !wantsHTML(c) {
		server.RespondWithError(c, err)
		return
	}
	status, msg := http.StatusInternalServerError, err.Error()
	if appErr, ok := apperrors.AsAppError(err); ok {
		status, msg = appErr.HTTPStatus, appErr.Message
	}
	h.render(c, status, pageData{Title: PageTitle, Error: msg})
}

func (h *Handler) render(c *gin.Context, status int, data pageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(c.Writer, data); err != nil {
		h.log.WithContext(c.Request.Context()).Error("render page", logger.Fields(logger.FieldError, err.Error()))
	}
}

// wantsHTML is true for browser form posts, which ask for text/html first.
func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

package handlers

import (
	"bytes"
	"context"
	"io"

	"github.com/fasthttp/router"
	xhttp "github.com/maggiehq/ledger/pkg/http"
)

type MediaStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// MediaHandler moves receipt scans and logos in and out of the object
// store. The returned key is what transaction and bank records reference.
type MediaHandler struct {
	store MediaStore
}

func RegisterMediaRoutes(e *router.Group, h *MediaHandler) {
	e.POST("/media", h.UploadMedia)
	e.GET("/media/{key}", h.DownloadMedia)
}

func NewMediaHandler(store MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

func (h *MediaHandler) UploadMedia(ctx *xhttp.RequestCtx) {
	body := ctx.PostBody()
	if len(body) == 0 {
		writeError(ctx, xhttp.StatusBadRequest, "empty body")
		return
	}
	contentType := string(ctx.Request.Header.ContentType())

	key, err := h.store.Upload(ctx, bytes.NewReader(body), int64(len(body)), contentType)
	if err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, map[string]string{"key": key})
}

func (h *MediaHandler) DownloadMedia(ctx *xhttp.RequestCtx) {
	key, _ := ctx.UserValue("key").(string)
	if key == "" {
		writeError(ctx, xhttp.StatusBadRequest, "missing media key")
		return
	}
	obj, err := h.store.Download(ctx, key)
	if err != nil {
		writeError(ctx, xhttp.StatusNotFound, "media not found")
		return
	}
	defer obj.Close()

	ctx.Response.Header.Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(ctx.Response.BodyWriter(), obj); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
	}
}

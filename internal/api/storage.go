package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/internal/listings"
	"github.com/JaimeStill/bizz/pkg/handlers"
	"github.com/JaimeStill/bizz/pkg/routes"
	"github.com/JaimeStill/bizz/pkg/storage"
)

// storageHandler lets administrators audit listing media in the blob
// container against the attachment records.
type storageHandler struct {
	store       storage.System
	logger      *slog.Logger
	maxListSize int32
}

func newStorageHandler(store storage.System, logger *slog.Logger, maxListSize int32) *storageHandler {
	return &storageHandler{
		store:       store,
		logger:      logger.With("handler", "storage"),
		maxListSize: maxListSize,
	}
}

func (h *storageHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/storage",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.list},
			{Method: "GET", Pattern: "/download/{key...}", Handler: h.download},
			{Method: "GET", Pattern: "/{key...}", Handler: h.find},
		},
	}
}

// list accepts either a raw prefix or a listing ID, which selects that
// listing's media folder.
func (h *storageHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	maxResults, err := storage.ParseMaxResults(q.Get("max_results"), h.maxListSize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	prefix := q.Get("prefix")
	if raw := q.Get("listing"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("listing must be a UUID"))
			return
		}
		prefix = listings.StoragePrefix(id)
	}

	blobs, err := h.store.List(r.Context(), prefix, maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, blobs)
}

func (h *storageHandler) find(w http.ResponseWriter, r *http.Request) {
	meta, err := h.store.Find(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, meta)
}

func (h *storageHandler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	meta, err := h.store.Find(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	body, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	hdr := w.Header()
	hdr.Set("Content-Type", contentTypeOr(meta.ContentType))
	hdr.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": downloadName(key)}))
	hdr.Set("X-Content-Type-Options", "nosniff")
	if meta.ContentLength > 0 {
		hdr.Set("Content-Length", strconv.FormatInt(meta.ContentLength, 10))
	}
	if !meta.LastModified.IsZero() {
		hdr.Set("Last-Modified", meta.LastModified.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("blob download interrupted", "key", key, "error", err)
	}
}

// downloadName recovers the original filename from the escaped last
// key segment.
func downloadName(key string) string {
	base := path.Base(key)
	if name, err := url.PathUnescape(base); err == nil {
		return name
	}
	return base
}

func contentTypeOr(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

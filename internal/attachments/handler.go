package attachments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/bizz/pkg/formatting"
	"github.com/JaimeStill/bizz/pkg/handlers"
	"github.com/JaimeStill/bizz/pkg/routes"
)

// Handler provides HTTP endpoints for attachment operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "attachments"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for attachment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/attachments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/download", Handler: h.Download},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns the attachments of the listing named by the listing_id query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	listingID, err := uuid.Parse(r.URL.Query().Get("listing_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	items, err := h.sys.List(r.Context(), listingID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Find returns attachment metadata by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	a, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Upload processes a multipart form with listing_id, kind, and one or more
// "files" parts. Brochure page counts are extracted with pdfcpu. Responds
// 201 when every file was stored and 207 when any failed.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadSize {
		h.respondTooLarge(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondTooLarge(w)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidFile, err))
		return
	}

	listingID, err := uuid.Parse(r.FormValue("listing_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	kind, ok := ParseKind(r.FormValue("kind"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	cmds := make([]CreateCommand, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %s", ErrInvalidFile, fh.Filename))
			return
		}

		contentType := detectContentType(fh.Header.Get("Content-Type"), data)
		cmds = append(cmds, CreateCommand{
			ListingID:   listingID,
			Kind:        kind,
			Data:        data,
			Filename:    fh.Filename,
			ContentType: contentType,
			PageCount:   extractPDFPageCount(h.logger, data, contentType),
		})
	}

	results := h.sys.CreateBatch(r.Context(), cmds)

	status := http.StatusCreated
	for _, res := range results {
		if res.Error != "" {
			status = http.StatusMultiStatus
			break
		}
	}

	handlers.RespondJSON(w, status, results)
}

// Download streams the attachment blob.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	a, body, err := h.sys.Download(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	disposition := "attachment"
	if a.Kind != KindBrochure {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", a.ContentType)
	if a.SizeBytes > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(a.SizeBytes, 10))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, a.Filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn("attachment stream interrupted", "id", id, "error", err)
	}
}

// Delete removes an attachment by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

func extractPDFPageCount(logger *slog.Logger, data []byte, contentType string) *int {
	if contentType != "application/pdf" {
		return nil
	}

	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}

	return &count
}

func (h *Handler) respondTooLarge(w http.ResponseWriter) {
	limit := formatting.FormatBytes(h.maxUploadSize, 0)
	handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, fmt.Errorf("%w: limit is %s", ErrFileTooLarge, limit))
}

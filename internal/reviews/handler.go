package reviews

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/bizz/pkg/handlers"
	"github.com/JaimeStill/bizz/pkg/pagination"
	"github.com/JaimeStill/bizz/pkg/routes"
)

// Handler provides HTTP endpoints for the location review queue.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "reviews"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for review endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Pending},
			{Method: "GET", Pattern: "/{listingId}", Handler: h.History},
			{Method: "POST", Pattern: "/{listingId}/approve", Handler: h.Approve},
			{Method: "POST", Pattern: "/{listingId}/override", Handler: h.Override},
		},
	}
}

// Pending returns the paginated queue of listings awaiting review.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Pending(r.Context(), page)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// History returns the recorded decisions for a listing.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("listingId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReview)
		return
	}

	items, err := h.sys.History(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// Approve accepts the listing's stored placement.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("listingId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReview)
		return
	}

	var cmd ApproveCommand
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReview)
			return
		}
	}

	review, err := h.sys.Approve(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, review)
}

// Override replaces the listing's placement with the reviewer's confirmation.
func (h *Handler) Override(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("listingId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReview)
		return
	}

	var cmd OverrideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidReview)
		return
	}

	review, err := h.sys.Override(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, review)
}

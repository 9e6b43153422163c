package audithandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrboard/internal/domain/audit"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Store *audit.Store
}

func NewHandler(store *audit.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/audit", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	page := shared.ParsePagination(r, 100, 500)

	events, err := h.Store.List(r.Context(),
		r.URL.Query().Get("actorId"),
		r.URL.Query().Get("entityType"),
		int64(page.Limit), int64(page.Offset))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list audit events", requestID)
		return
	}
	api.Success(w, events, requestID)
}

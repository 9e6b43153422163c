package performancehandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/audit"
	"hrboard/internal/domain/performance"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
	Audit   *audit.Store
}

func NewHandler(service *performance.Service, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.Get("/reviews", h.handleListReviews)
		r.Post("/reviews", h.handleCreateReview)
		r.Post("/reviews/missing", h.handleCreateMissing)
		r.Get("/reviews/{reviewID}", h.handleGetReview)
		r.Post("/recalculate", h.handleRecalculate)
		r.Get("/stats/{employeeID}", h.handleEmployeeStats)
		r.Get("/metrics", h.handleMetrics)
		r.Get("/dashboard", h.handleDashboard)
	})
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	var employeeID *primitive.ObjectID
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		if id, ok := v.ObjectID("employeeId", raw); ok {
			employeeID = &id
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	items, err := h.Service.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list reviews", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGetReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("reviewID", chi.URLParam(r, "reviewID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	review, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, performance.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "performance review not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load review", requestID)
		return
	}
	api.Success(w, review, requestID)
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
		ReviewerID string `json:"reviewerId"`
		Date       string `json:"date"`
		Score      *int   `json:"score"`
		Comments   string `json:"comments"`
		Goals      string `json:"goals"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	employeeID, _ := v.ObjectID("employeeId", payload.EmployeeID)
	reviewerID, _ := v.ObjectID("reviewerId", payload.ReviewerID)
	if payload.Score != nil && (*payload.Score < 0 || *payload.Score > 100) {
		v.Add("score", "score must be between 0 and 100")
	}
	input := performance.CreateInput{
		EmployeeID: employeeID,
		ReviewerID: reviewerID,
		Score:      payload.Score,
		Comments:   payload.Comments,
		Goals:      payload.Goals,
	}
	if payload.Date != "" {
		if date, ok := v.Date("date", payload.Date); ok {
			input.Date = date
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	review, err := h.Service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, performance.ErrUnknownEmployee) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create review", requestID)
		return
	}

	h.recordAudit(r, "performance.review_create", review.ID.Hex(), nil)
	api.Created(w, review, requestID)
}

func (h *Handler) handleCreateMissing(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		ReviewerID string `json:"reviewerId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	reviewerID, ok := v.ObjectID("reviewerId", payload.ReviewerID)
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	result, err := h.Service.CreateMissing(r.Context(), reviewerID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create missing reviews", requestID)
		return
	}

	h.recordAudit(r, "performance.create_missing", "", map[string]any{"created": len(result.Created)})
	api.Success(w, result, requestID)
}

// handleRecalculate dispatches on the payload: a review id recalculates one
// review, an employee id every review of that employee, an empty body the
// whole store.
func (h *Handler) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		ReviewID   string `json:"reviewId"`
		EmployeeID string `json:"employeeId"`
	}
	// An empty body means "recalculate everything".
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	switch {
	case payload.ReviewID != "":
		reviewID, ok := v.ObjectID("reviewId", payload.ReviewID)
		if !ok {
			shared.FailValidation(w, requestID, v.Issues())
			return
		}
		score, err := h.Service.Recalculate(r.Context(), reviewID)
		if err != nil {
			switch {
			case errors.Is(err, performance.ErrNotFound):
				api.Fail(w, http.StatusNotFound, "not_found", "performance review not found", requestID)
			case errors.Is(err, performance.ErrRevisionConflict):
				api.Fail(w, http.StatusConflict, "conflict", "review was updated concurrently, retry", requestID)
			default:
				api.Fail(w, http.StatusInternalServerError, "internal", "recalculation failed", requestID)
			}
			return
		}
		h.recordAudit(r, "performance.recalculate", payload.ReviewID, nil)
		api.Success(w, map[string]any{"reviewId": payload.ReviewID, "newScore": score}, requestID)

	case payload.EmployeeID != "":
		employeeID, ok := v.ObjectID("employeeId", payload.EmployeeID)
		if !ok {
			shared.FailValidation(w, requestID, v.Issues())
			return
		}
		result, err := h.Service.RecalculateByEmployee(r.Context(), employeeID)
		if err != nil {
			if errors.Is(err, performance.ErrUnknownEmployee) {
				api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
				return
			}
			api.Fail(w, http.StatusInternalServerError, "internal", "recalculation failed", requestID)
			return
		}
		h.recordAudit(r, "performance.recalculate_employee", payload.EmployeeID, nil)
		api.Success(w, result, requestID)

	default:
		result, err := h.Service.RecalculateAll(r.Context())
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "internal", "recalculation failed", requestID)
			return
		}
		h.recordAudit(r, "performance.recalculate_all", "", map[string]any{"recalculated": result.Recalculated})
		api.Success(w, result, requestID)
	}
}

func (h *Handler) handleEmployeeStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	employeeID, ok := v.ObjectID("employeeID", chi.URLParam(r, "employeeID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	stats, err := h.Service.EmployeeStats(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, performance.ErrUnknownEmployee) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	metrics, err := h.Service.Metrics(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load metrics", requestID)
		return
	}
	api.Success(w, metrics, requestID)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load dashboard stats", requestID)
		return
	}
	api.Success(w, dashboard, requestID)
}

func (h *Handler) recordAudit(r *http.Request, action, entityID string, details map[string]any) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Event{
		ActorID:    admin.AdminID,
		Action:     action,
		EntityType: "performance_review",
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		Details:    details,
	})
	if err != nil {
		slog.Warn("audit record failed", "action", action, "error", err)
	}
}

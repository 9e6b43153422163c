package departmenthandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/audit"
	"hrboard/internal/domain/departments"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *departments.Service
	Audit   *audit.Store
}

func NewHandler(service *departments.Service, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/stats", h.handleStats)
		r.Post("/bulk", h.handleBulk)
		r.Get("/{departmentID}", h.handleGet)
		r.Put("/{departmentID}", h.handleUpdate)
		r.Delete("/{departmentID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	all, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list departments", requestID)
		return
	}
	api.Success(w, all, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("departmentID", chi.URLParam(r, "departmentID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	department, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, department, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, requestID) {
		return
	}

	department, err := h.Service.Create(r.Context(), payload.Name, payload.Description)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}

	h.recordAudit(r, "department.create", department.ID.Hex(), nil)
	api.Created(w, department, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("departmentID", chi.URLParam(r, "departmentID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	var payload struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, requestID) {
		return
	}

	department, err := h.Service.Update(r.Context(), id, payload.Name, payload.Description)
	if err != nil {
		h.fail(w, err, requestID)
		return
	}
	api.Success(w, department, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("departmentID", chi.URLParam(r, "departmentID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	assigned, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, departments.ErrHasEmployees) {
			api.Fail(w, http.StatusConflict, "conflict",
				fmt.Sprintf("department has %d assigned employees", assigned), requestID)
			return
		}
		h.fail(w, err, requestID)
		return
	}

	h.recordAudit(r, "department.delete", id.Hex(), nil)
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	report, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to build department stats", requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleBulk(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		Action      string   `json:"action"`
		IDs         []string `json:"ids"`
		Name        string   `json:"name"`
		Description *string  `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Enum("action", payload.Action, []string{"delete", "update"}, "action must be delete or update")
	v.Required("action", payload.Action, "action is required")
	if len(payload.IDs) == 0 {
		v.Add("ids", "at least one department id is required")
	}
	ids := make([]primitive.ObjectID, 0, len(payload.IDs))
	for _, raw := range payload.IDs {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			ids = append(ids, id)
		} else {
			v.Add("ids", fmt.Sprintf("invalid department id %q", raw))
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	var result *departments.BulkResult
	switch payload.Action {
	case "delete":
		result = h.Service.BulkDelete(r.Context(), ids)
	case "update":
		result = h.Service.BulkUpdate(r.Context(), ids, departments.BulkUpdate{
			Name:        payload.Name,
			Description: payload.Description,
		})
	}

	h.recordAudit(r, "department.bulk_"+payload.Action, "", map[string]any{"count": len(ids)})
	api.Success(w, result, requestID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, departments.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "department not found", requestID)
	case errors.Is(err, departments.ErrNameTaken):
		api.Fail(w, http.StatusConflict, "conflict", "a department with this name already exists", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "internal", "department operation failed", requestID)
	}
}

func (h *Handler) recordAudit(r *http.Request, action, entityID string, details map[string]any) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Event{
		ActorID:    admin.AdminID,
		Action:     action,
		EntityType: "department",
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
		Details:    details,
	})
	if err != nil {
		slog.Warn("audit record failed", "action", action, "error", err)
	}
}

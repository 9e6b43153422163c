package jobhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/audit"
	"hrboard/internal/domain/jobs"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *jobs.Service
	Audit   *audit.Store
}

func NewHandler(service *jobs.Service, auditStore *audit.Store) *Handler {
	return &Handler{Service: service, Audit: auditStore}
}

// RegisterPublicRoutes exposes the read-only listing used by the careers
// page; no authentication required.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/jobs", h.handleList)
	r.Get("/jobs/{jobID}", h.handleGet)
}

// RegisterRoutes stays flat so the method routes can share patterns with
// the public GET routes on the same mux.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/jobs", h.handleCreate)
	r.Get("/jobs/stats", h.handleStats)
	r.Put("/jobs/{jobID}", h.handleUpdate)
	r.Patch("/jobs/{jobID}/status", h.handleUpdateStatus)
	r.Delete("/jobs/{jobID}", h.handleDelete)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to build job stats", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	status := r.URL.Query().Get("status")
	v.Enum("status", status, jobs.ValidStatuses(), "status must be open or closed")
	if v.Reject(w, requestID) {
		return
	}

	items, err := h.Service.List(r.Context(), status, r.URL.Query().Get("search"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list jobs", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("jobID", chi.URLParam(r, "jobID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	job, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load job", requestID)
		return
	}
	api.Success(w, job, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	payload, ok := h.decodeInput(w, r, requestID)
	if !ok {
		return
	}

	job, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create job", requestID)
		return
	}

	h.recordAudit(r, "job.create", job.ID.Hex())
	api.Created(w, job, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("jobID", chi.URLParam(r, "jobID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	payload, ok := h.decodeInput(w, r, requestID)
	if !ok {
		return
	}

	job, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update job", requestID)
		return
	}
	api.Success(w, job, requestID)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("jobID", chi.URLParam(r, "jobID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, jobs.ValidStatuses(), "status must be open or closed")
	if v.Reject(w, requestID) {
		return
	}

	job, err := h.Service.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update job status", requestID)
		return
	}
	api.Success(w, job, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("jobID", chi.URLParam(r, "jobID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	applicants, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, jobs.ErrHasApplicants) {
			api.Fail(w, http.StatusConflict, "conflict",
				fmt.Sprintf("job has %d applicants and cannot be deleted", applicants), requestID)
			return
		}
		if errors.Is(err, jobs.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to delete job", requestID)
		return
	}

	h.recordAudit(r, "job.delete", id.Hex())
	api.Success(w, map[string]any{"deleted": true}, requestID)
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request, requestID string) (jobs.Input, bool) {
	var payload struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Requirements []string `json:"requirements"`
		Location     string   `json:"location"`
		SalaryRange  string   `json:"salaryRange"`
		DepartmentID string   `json:"departmentId"`
		Status       string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return jobs.Input{}, false
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Enum("status", payload.Status, jobs.ValidStatuses(), "status must be open or closed")
	var departmentID *primitive.ObjectID
	if payload.DepartmentID != "" {
		if id, ok := v.ObjectID("departmentId", payload.DepartmentID); ok {
			departmentID = &id
		}
	}
	if v.Reject(w, requestID) {
		return jobs.Input{}, false
	}

	return jobs.Input{
		Title:        payload.Title,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		Location:     payload.Location,
		SalaryRange:  payload.SalaryRange,
		DepartmentID: departmentID,
		Status:       payload.Status,
	}, true
}

func (h *Handler) recordAudit(r *http.Request, action, entityID string) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Event{
		ActorID:    admin.AdminID,
		Action:     action,
		EntityType: "job",
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
	})
	if err != nil {
		slog.Warn("audit record failed", "action", action, "error", err)
	}
}

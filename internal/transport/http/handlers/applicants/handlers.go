package applicanthandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/applicants"
	"hrboard/internal/domain/jobs"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *applicants.Service
}

func NewHandler(service *applicants.Service) *Handler {
	return &Handler{Service: service}
}

// RegisterPublicRoutes exposes the application form endpoint; candidates
// are not authenticated.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/applications", h.handleSubmit)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/applicants", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{applicantID}", h.handleGet)
		r.Patch("/{applicantID}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		JobID       string `json:"jobId"`
		Name        string `json:"name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		ResumeURL   string `json:"resumeUrl"`
		CoverLetter string `json:"coverLetter"`
		Consent     *bool  `json:"consent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	jobID, _ := v.ObjectID("jobId", payload.JobID)
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	if payload.Consent == nil || !*payload.Consent {
		v.Add("consent", "consent to data processing is required")
	}
	if v.Reject(w, requestID) {
		return
	}

	applicant, err := h.Service.Submit(r.Context(), jobID, applicants.Submission{
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		ResumeURL:   payload.ResumeURL,
		CoverLetter: payload.CoverLetter,
		Consent:     true,
	})
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
		case errors.Is(err, applicants.ErrJobClosed):
			api.Fail(w, http.StatusConflict, "conflict", "this job is no longer accepting applications", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to submit application", requestID)
		}
		return
	}
	api.Created(w, applicant, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	status := r.URL.Query().Get("status")
	v.Enum("status", status, applicants.ValidStatuses(), "invalid applicant status")

	var jobID *primitive.ObjectID
	if raw := r.URL.Query().Get("jobId"); raw != "" {
		if id, ok := v.ObjectID("jobId", raw); ok {
			jobID = &id
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	items, err := h.Service.List(r.Context(), jobID, status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list applicants", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("applicantID", chi.URLParam(r, "applicantID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	applicant, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, applicants.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "applicant not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load applicant", requestID)
		return
	}
	api.Success(w, applicant, requestID)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("applicantID", chi.URLParam(r, "applicantID"))
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
	v.Enum("status", payload.Status, applicants.ValidStatuses(), "invalid applicant status")
	if v.Reject(w, requestID) {
		return
	}

	applicant, err := h.Service.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		if errors.Is(err, applicants.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "applicant not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update applicant status", requestID)
		return
	}
	api.Success(w, applicant, requestID)
}

package interviewhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrboard/internal/domain/applicants"
	"hrboard/internal/domain/interviews"
	"hrboard/internal/domain/jobs"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *interviews.Service
}

func NewHandler(service *interviews.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/interviews", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSchedule)
		r.Get("/{interviewID}", h.handleGet)
		r.Patch("/{interviewID}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		ApplicantID string `json:"applicantId"`
		JobID       string `json:"jobId"`
		ScheduledAt string `json:"scheduledAt"`
		Duration    int    `json:"durationMinutes"`
		Type        string `json:"type"`
		Location    string `json:"location"`
		MeetingLink string `json:"meetingLink"`
		Interviewer string `json:"interviewer"`
		Notes       string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	applicantID, _ := v.ObjectID("applicantId", payload.ApplicantID)
	jobID, _ := v.ObjectID("jobId", payload.JobID)
	v.Required("scheduledAt", payload.ScheduledAt, "scheduledAt is required")
	scheduledAt, _ := v.Date("scheduledAt", payload.ScheduledAt)
	v.Enum("type", payload.Type, interviews.ValidTypes(), "type must be phone, video or in-person")
	if payload.Duration < 0 {
		v.Add("durationMinutes", "durationMinutes must be positive")
	}
	if v.Reject(w, requestID) {
		return
	}

	interview, err := h.Service.Schedule(r.Context(), interviews.ScheduleInput{
		ApplicantID: applicantID,
		JobID:       jobID,
		ScheduledAt: scheduledAt,
		Duration:    payload.Duration,
		Type:        payload.Type,
		Location:    payload.Location,
		MeetingLink: payload.MeetingLink,
		Interviewer: payload.Interviewer,
		Notes:       payload.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, applicants.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "applicant not found", requestID)
		case errors.Is(err, jobs.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "job not found", requestID)
		case errors.Is(err, interviews.ErrAlreadyScheduled):
			api.Fail(w, http.StatusConflict, "conflict", "applicant already has a scheduled interview for this job", requestID)
		default:
			api.Fail(w, http.StatusInternalServerError, "internal", "failed to schedule interview", requestID)
		}
		return
	}
	api.Created(w, interview, requestID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	status := r.URL.Query().Get("status")
	v.Enum("status", status, interviews.ValidStatuses(), "invalid interview status")
	if v.Reject(w, requestID) {
		return
	}

	items, err := h.Service.List(r.Context(), status)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list interviews", requestID)
		return
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("interviewID", chi.URLParam(r, "interviewID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	interview, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, interviews.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "interview not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load interview", requestID)
		return
	}
	api.Success(w, interview, requestID)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("interviewID", chi.URLParam(r, "interviewID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	var payload struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	v.Required("status", payload.Status, "status is required")
	v.Enum("status", payload.Status, interviews.ValidStatuses(), "invalid interview status")
	if v.Reject(w, requestID) {
		return
	}

	interview, err := h.Service.UpdateStatus(r.Context(), id, payload.Status, payload.Notes)
	if err != nil {
		if errors.Is(err, interviews.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "interview not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update interview", requestID)
		return
	}
	api.Success(w, interview, requestID)
}

package taskhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/tasks"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Service *tasks.Service
}

func NewHandler(service *tasks.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{taskID}", h.handleGet)
		r.Patch("/{taskID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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

	all, err := h.Service.List(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list tasks", requestID)
		return
	}
	api.Success(w, all, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("taskID", chi.URLParam(r, "taskID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	task, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load task", requestID)
		return
	}
	api.Success(w, task, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID  string `json:"employeeId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Completed   bool   `json:"completed"`
		DueDate     string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	employeeID, _ := v.ObjectID("employeeId", payload.EmployeeID)
	v.Required("title", payload.Title, "title is required")

	input := tasks.CreateInput{
		EmployeeID:  employeeID,
		Title:       payload.Title,
		Description: payload.Description,
		Completed:   payload.Completed,
	}
	if payload.DueDate != "" {
		if dueDate, ok := v.Date("dueDate", payload.DueDate); ok {
			input.DueDate = &dueDate
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	task, err := h.Service.Create(r.Context(), input)
	if err != nil {
		if errors.Is(err, tasks.ErrUnknownEmployee) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create task", requestID)
		return
	}
	api.Created(w, task, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("taskID", chi.URLParam(r, "taskID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	var payload struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
		DueDate     *string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	update := tasks.Update{
		Title:       payload.Title,
		Description: payload.Description,
		Completed:   payload.Completed,
	}
	if payload.Title != nil && *payload.Title == "" {
		v.Add("title", "title must not be empty")
	}
	if payload.DueDate != nil {
		if dueDate, ok := v.Date("dueDate", *payload.DueDate); ok {
			update.DueDate = &dueDate
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	task, err := h.Service.Update(r.Context(), id, update)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "task not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to update task", requestID)
		return
	}
	api.Success(w, task, requestID)
}

package attendancehandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/attendance"
	"hrboard/internal/domain/employees"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Store     *attendance.Store
	Employees *employees.Store
}

func NewHandler(store *attendance.Store, employeeStore *employees.Store) *Handler {
	return &Handler{Store: store, Employees: employeeStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
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
	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, _ = v.Date("from", raw)
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, _ = v.Date("to", raw)
	}
	if v.Reject(w, requestID) {
		return
	}

	records, err := h.Store.List(r.Context(), employeeID, from, to)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list attendance", requestID)
		return
	}
	api.Success(w, records, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string `json:"employeeId"`
		Date       string `json:"date"`
		Status     string `json:"status"`
		CheckIn    string `json:"checkIn"`
		CheckOut   string `json:"checkOut"`
		Notes      string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	employeeID, _ := v.ObjectID("employeeId", payload.EmployeeID)
	v.Required("date", payload.Date, "date is required")
	date, _ := v.Date("date", payload.Date)
	v.Enum("status", payload.Status, attendance.ValidStatuses(), "status must be present, absent or leave")

	record := &attendance.Record{
		EmployeeID: employeeID,
		Date:       date,
		Status:     payload.Status,
		Notes:      payload.Notes,
	}
	if payload.CheckIn != "" {
		if checkIn, ok := v.Date("checkIn", payload.CheckIn); ok {
			record.CheckIn = &checkIn
		}
	}
	if payload.CheckOut != "" {
		if checkOut, ok := v.Date("checkOut", payload.CheckOut); ok {
			record.CheckOut = &checkOut
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	exists, err := h.Employees.Exists(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to verify employee", requestID)
		return
	}
	if !exists {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}

	if err := h.Store.Insert(r.Context(), record); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to record attendance", requestID)
		return
	}
	api.Created(w, record, requestID)
}

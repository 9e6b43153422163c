package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/audit"
	"hrboard/internal/domain/employees"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Store *employees.Store
	Audit *audit.Store
}

func NewHandler(store *employees.Store, auditStore *audit.Store) *Handler {
	return &Handler{Store: store, Audit: auditStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	all, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list employees", requestID)
		return
	}
	api.Success(w, all, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("employeeID", chi.URLParam(r, "employeeID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	employee, err := h.Store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load employee", requestID)
		return
	}
	api.Success(w, employee, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		FirstName        string                  `json:"firstName"`
		LastName         string                  `json:"lastName"`
		Email            string                  `json:"email"`
		Phone            string                  `json:"phone"`
		DepartmentID     string                  `json:"departmentId"`
		Position         string                  `json:"position"`
		HireDate         string                  `json:"hireDate"`
		Salary           float64                 `json:"salary"`
		EmploymentStatus string                  `json:"employmentStatus"`
		PersonalInfo     *employees.PersonalInfo `json:"personalInfo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	v.Enum("employmentStatus", payload.EmploymentStatus, employees.ValidStatuses(), "employment status must be active, terminated or on_leave")

	var departmentID *primitive.ObjectID
	if payload.DepartmentID != "" {
		if id, ok := v.ObjectID("departmentId", payload.DepartmentID); ok {
			departmentID = &id
		}
	}
	employee := &employees.Employee{
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Email:            payload.Email,
		Phone:            payload.Phone,
		DepartmentID:     departmentID,
		Position:         payload.Position,
		Salary:           payload.Salary,
		EmploymentStatus: payload.EmploymentStatus,
		PersonalInfo:     payload.PersonalInfo,
	}
	if payload.HireDate != "" {
		if hireDate, ok := v.Date("hireDate", payload.HireDate); ok {
			employee.HireDate = &hireDate
		}
	}
	if v.Reject(w, requestID) {
		return
	}

	if err := h.Store.Insert(r.Context(), employee); err != nil {
		if errors.Is(err, employees.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "conflict", "an employee with this email already exists", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create employee", requestID)
		return
	}

	h.recordAudit(r, "employee.create", employee.ID.Hex())
	api.Created(w, employee, requestID)
}

func (h *Handler) recordAudit(r *http.Request, action, entityID string) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		return
	}
	err := h.Audit.Record(r.Context(), audit.Event{
		ActorID:    admin.AdminID,
		Action:     action,
		EntityType: "employee",
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         shared.ClientIP(r),
	})
	if err != nil {
		slog.Warn("audit record failed", "action", action, "error", err)
	}
}

package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/employees"
	"hrboard/internal/domain/payroll"
	"hrboard/internal/transport/http/api"
	"hrboard/internal/transport/http/middleware"
	"hrboard/internal/transport/http/shared"
)

type Handler struct {
	Store     *payroll.Store
	Employees *employees.Store
}

func NewHandler(store *payroll.Store, employeeStore *employees.Store) *Handler {
	return &Handler{Store: store, Employees: employeeStore}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Post("/{entryID}/pay", h.handleMarkPaid)
		r.Get("/{entryID}/payslip", h.handlePayslip)
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

	entries, err := h.Store.List(r.Context(), employeeID, r.URL.Query().Get("period"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to list payroll entries", requestID)
		return
	}

	items := make([]payroll.ListItem, 0, len(entries))
	names := map[primitive.ObjectID]string{}
	for _, entry := range entries {
		name, ok := names[entry.EmployeeID]
		if !ok {
			if employee, err := h.Employees.FindByID(r.Context(), entry.EmployeeID); err == nil {
				name = employee.DisplayName()
			}
			names[entry.EmployeeID] = name
		}
		items = append(items, payroll.ListItem{Entry: entry, EmployeeName: name})
	}
	api.Success(w, items, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload struct {
		EmployeeID string  `json:"employeeId"`
		Period     string  `json:"period"`
		GrossPay   float64 `json:"grossPay"`
		Deductions float64 `json:"deductions"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}

	v := shared.NewValidator()
	employeeID, _ := v.ObjectID("employeeId", payload.EmployeeID)
	v.Required("period", payload.Period, "period is required")
	if payload.GrossPay < 0 {
		v.Add("grossPay", "gross pay must not be negative")
	}
	if payload.Deductions < 0 {
		v.Add("deductions", "deductions must not be negative")
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

	entry := &payroll.Entry{
		EmployeeID: employeeID,
		Period:     payload.Period,
		GrossPay:   payload.GrossPay,
		Deductions: payload.Deductions,
	}
	if err := h.Store.Insert(r.Context(), entry); err != nil {
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to create payroll entry", requestID)
		return
	}
	api.Created(w, entry, requestID)
}

func (h *Handler) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("entryID", chi.URLParam(r, "entryID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	entry, err := h.Store.MarkPaid(r.Context(), id)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll entry not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to mark entry paid", requestID)
		return
	}
	api.Success(w, entry, requestID)
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	id, ok := v.ObjectID("entryID", chi.URLParam(r, "entryID"))
	if !ok {
		shared.FailValidation(w, requestID, v.Issues())
		return
	}

	entry, err := h.Store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, payroll.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll entry not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load payroll entry", requestID)
		return
	}

	data := payroll.PayslipData{Entry: entry}
	if employee, err := h.Employees.FindByID(r.Context(), entry.EmployeeID); err == nil {
		data.EmployeeName = employee.DisplayName()
		data.Position = employee.Position
		data.Email = employee.Email
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=payslip-%s-%s.pdf", entry.EmployeeID.Hex(), entry.Period))
	if err := payroll.WritePayslip(w, data); err != nil {
		// Headers are already out; all we can do is drop the connection.
		panic(http.ErrAbortHandler)
	}
}

package departmenthandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hrboard/internal/domain/departments"
	"hrboard/internal/domain/employees"
)

type memoryStore struct {
	departments map[primitive.ObjectID]*departments.Department
}

func (m *memoryStore) Insert(_ context.Context, department *departments.Department) error {
	department.ID = primitive.NewObjectID()
	copied := *department
	m.departments[department.ID] = &copied
	return nil
}

func (m *memoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*departments.Department, error) {
	department, ok := m.departments[id]
	if !ok {
		return nil, departments.ErrNotFound
	}
	copied := *department
	return &copied, nil
}

func (m *memoryStore) List(_ context.Context) ([]departments.Department, error) {
	out := []departments.Department{}
	for _, department := range m.departments {
		out = append(out, *department)
	}
	return out, nil
}

func (m *memoryStore) NameExists(_ context.Context, name string, excludeID *primitive.ObjectID) (bool, error) {
	for id, department := range m.departments {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(department.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Update(_ context.Context, id primitive.ObjectID, name, description string) (*departments.Department, error) {
	department, ok := m.departments[id]
	if !ok {
		return nil, departments.ErrNotFound
	}
	department.Name = name
	department.Description = description
	copied := *department
	return &copied, nil
}

func (m *memoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.departments[id]; !ok {
		return departments.ErrNotFound
	}
	delete(m.departments, id)
	return nil
}

type memoryDirectory struct {
	assigned map[primitive.ObjectID]int
}

func (m *memoryDirectory) CountActive(_ context.Context) (int64, error) {
	total := 0
	for _, n := range m.assigned {
		total += n
	}
	return int64(total), nil
}

func (m *memoryDirectory) CountActiveByDepartment(_ context.Context, id primitive.ObjectID) (int64, error) {
	return int64(m.assigned[id]), nil
}

func (m *memoryDirectory) ListActiveByDepartment(_ context.Context, id primitive.ObjectID) ([]employees.Employee, error) {
	members := make([]employees.Employee, m.assigned[id])
	return members, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter() (chi.Router, *memoryStore, *memoryDirectory) {
	store := &memoryStore{departments: map[primitive.ObjectID]*departments.Department{}}
	directory := &memoryDirectory{assigned: map[primitive.ObjectID]int{}}
	handler := NewHandler(departments.NewService(store, directory), nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store, directory
}

func doJSON(t *testing.T, router chi.Router, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response envelope: %v (body %s)", err, rec.Body.String())
	}
	return rec, env
}

func TestCreateAndGetDepartment(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/departments", map[string]string{
		"name":        "Engineering",
		"description": "Builds things",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}

	var created departments.Department
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created department: %v", err)
	}
	if created.Name != "Engineering" {
		t.Fatalf("created name = %q", created.Name)
	}

	rec, env = doJSON(t, router, http.MethodGet, "/departments/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("get status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCreateDuplicateNameConflicts(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodPost, "/departments", map[string]string{"name": "Engineering"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodPost, "/departments", map[string]string{"name": "engineering"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.Error == nil || env.Error.Code != "conflict" {
		t.Fatalf("expected conflict error code, got %s", rec.Body.String())
	}
}

func TestCreateRequiresName(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, env := doJSON(t, router, http.MethodPost, "/departments", map[string]string{"description": "nameless"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.Error == nil || env.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %s", rec.Body.String())
	}
}

func TestDeleteGuardedDepartment(t *testing.T) {
	router, store, directory := newTestRouter()

	_, env := doJSON(t, router, http.MethodPost, "/departments", map[string]string{"name": "Guarded"})
	var created departments.Department
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode created department: %v", err)
	}
	directory.assigned[created.ID] = 3

	rec, env := doJSON(t, router, http.MethodDelete, "/departments/"+created.ID.Hex(), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("delete status = %d, body %s", rec.Code, rec.Body.String())
	}
	if env.Error == nil || !strings.Contains(env.Error.Message, "3 assigned employees") {
		t.Fatalf("expected assigned count in message, got %s", rec.Body.String())
	}
	if _, ok := store.departments[created.ID]; !ok {
		t.Fatal("guarded department must still exist")
	}
}

func TestBulkDeleteReportsOutcomes(t *testing.T) {
	router, _, directory := newTestRouter()

	_, env := doJSON(t, router, http.MethodPost, "/departments", map[string]string{"name": "Deletable"})
	var deletable departments.Department
	if err := json.Unmarshal(env.Data, &deletable); err != nil {
		t.Fatalf("decode created department: %v", err)
	}
	_, env = doJSON(t, router, http.MethodPost, "/departments", map[string]string{"name": "Guarded"})
	var guarded departments.Department
	if err := json.Unmarshal(env.Data, &guarded); err != nil {
		t.Fatalf("decode created department: %v", err)
	}
	directory.assigned[guarded.ID] = 1

	rec, env := doJSON(t, router, http.MethodPost, "/departments/bulk", map[string]any{
		"action": "delete",
		"ids":    []string{deletable.ID.Hex(), guarded.ID.Hex(), primitive.NewObjectID().Hex()},
	})
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("bulk status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result departments.BulkResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode bulk result: %v", err)
	}
	if len(result.Deleted) != 1 || result.Deleted[0] != deletable.ID.Hex() {
		t.Fatalf("deleted = %v", result.Deleted)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("skipped = %+v", result.Skipped)
	}
}

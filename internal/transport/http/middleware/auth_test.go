package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrboard/internal/domain/auth"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T) (http.Handler, *auth.AdminContext) {
	t.Helper()
	var captured auth.AdminContext
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := GetAdmin(r.Context())
		if !ok {
			t.Fatalf("admin missing inside protected handler")
		}
		captured = admin
		w.WriteHeader(http.StatusOK)
	})
	return Auth(testSecret)(RequireAuth(inner)), &captured
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler, _ := protectedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthRejectsBadToken(t *testing.T) {
	handler, _ := protectedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthAttachesAdmin(t *testing.T) {
	handler, captured := protectedHandler(t)

	token, err := auth.GenerateToken(testSecret, auth.Claims{
		AdminID: "abc123",
		Email:   "admin@example.com",
		Role:    "admin",
	}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.AdminID != "abc123" || captured.Email != "admin@example.com" || captured.Role != "admin" {
		t.Fatalf("unexpected admin context: %+v", captured)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	handler, _ := protectedHandler(t)

	token, err := auth.GenerateToken("other-secret", auth.Claims{AdminID: "abc123"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

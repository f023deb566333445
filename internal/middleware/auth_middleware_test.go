package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adt-04/university-backend/internal/auth"
)

func identityEcho(t *testing.T, wantID, wantRole string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r)
		if !ok || id != wantID {
			t.Fatalf("expected user id %q in context, got %q (ok=%v)", wantID, id, ok)
		}
		role, ok := Role(r)
		if !ok || role != wantRole {
			t.Fatalf("expected role %q in context, got %q (ok=%v)", wantRole, role, ok)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestProtect_RejectsMissingToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/papers/1", nil)

	Protect(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler should not run without a token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProtect_RejectsInvalidToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/papers/1", nil)
	req.Header.Set("Authorization", "Bearer bogus")

	Protect(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler should not run with an invalid token")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestProtect_AcceptsBearerHeader(t *testing.T) {
	token, err := auth.GenerateJWT("507f1f77bcf86cd799439011", "instructor")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/courses", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	Protect(identityEcho(t, "507f1f77bcf86cd799439011", "instructor")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProtect_AcceptsCookie(t *testing.T) {
	token, err := auth.GenerateJWT("507f1f77bcf86cd799439012", "student")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/courses/1/enroll", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})

	Protect(identityEcho(t, "507f1f77bcf86cd799439012", "student")).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRestrictTo(t *testing.T) {
	token, err := auth.GenerateJWT("507f1f77bcf86cd799439013", "student")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	allowed := func(roles ...string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/papers", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		Protect(RestrictTo(roles...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))).ServeHTTP(rec, req)
		return rec.Code
	}

	if code := allowed("admin", "staff"); code != http.StatusForbidden {
		t.Fatalf("expected student to be forbidden, got %d", code)
	}
	if code := allowed("student"); code != http.StatusOK {
		t.Fatalf("expected student to pass, got %d", code)
	}
}

func TestRestrictTo_WithoutProtect(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/papers", nil)

	RestrictTo("admin")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler should not run without an identity")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

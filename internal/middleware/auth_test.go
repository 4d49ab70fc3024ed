package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func operatorHash(t *testing.T, token string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash token: %v", err)
	}
	return string(hash)
}

func TestOperatorAuth_ValidToken(t *testing.T) {
	t.Parallel()
	mw := OperatorAuth(operatorHash(t, "secret-token"))

	called := false
	var gotIdentity string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotIdentity = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/moderation/queue", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rr := httptest.NewRecorder()
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
	if !called {
		t.Error("handler should have been called")
	}
	if gotIdentity != "operator" {
		t.Errorf("expected operator identity in context, got %q", gotIdentity)
	}
}

func TestOperatorAuth_WrongToken(t *testing.T) {
	t.Parallel()
	mw := OperatorAuth(operatorHash(t, "secret-token"))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/moderation/queue", nil)
	req.Header.Set("Authorization", "Bearer wrong-token")
	rr := httptest.NewRecorder()
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestOperatorAuth_MissingHeader(t *testing.T) {
	t.Parallel()
	mw := OperatorAuth(operatorHash(t, "secret-token"))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/moderation/queue", nil)
	rr := httptest.NewRecorder()
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestOperatorAuth_MalformedHeader(t *testing.T) {
	t.Parallel()
	mw := OperatorAuth(operatorHash(t, "secret-token"))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/moderation/queue", nil)
	req.Header.Set("Authorization", "Basic secret-token")
	rr := httptest.NewRecorder()
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestOperatorAuth_UnconfiguredHashFailsClosed(t *testing.T) {
	t.Parallel()
	mw := OperatorAuth("")

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not have been called")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/moderation/queue", nil)
	req.Header.Set("Authorization", "Bearer anything")
	rr := httptest.NewRecorder()
	mw(handler).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

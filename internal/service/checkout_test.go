package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brewboard/api/internal/model"
)

func testMetro() model.Metro {
	return model.Metro{Slug: "portland-or", City: "Portland", State: "OR", Title: "Portland Coffee Jobs"}
}

func testNormalizedDraft() model.NormalizedDraft {
	email := "jobs@heart.example"
	return model.NormalizedDraft{
		CafeName:   "Heart Roasters",
		Role:       "Barista",
		Pay:        "$18-21/hr",
		ApplyEmail: &email,
	}
}

func TestCheckoutService_CreateSession_Success(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "https://pay.example/session/abc"})
	}))
	defer srv.Close()

	svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: srv.URL})
	url, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://pay.example/session/abc" {
		t.Errorf("unexpected redirect URL %q", url)
	}
	if gotPath != "/create-checkout" {
		t.Errorf("expected POST to /create-checkout, got %q", gotPath)
	}
	if gotPayload["submission_id"] != "job_submission:1" {
		t.Errorf("expected submission_id in payload, got %v", gotPayload["submission_id"])
	}
	if gotPayload["metro_slug"] != "portland-or" {
		t.Errorf("expected metro_slug in payload, got %v", gotPayload["metro_slug"])
	}
}

func TestCheckoutService_CreateSession_MisconfiguredEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
	}{
		{"empty", ""},
		{"relative", "/payments"},
		{"no_host", "https://"},
		{"bad_scheme", "ftp://pay.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				calls++
				return nil, errors.New("should not be reached")
			})}

			svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: tt.endpoint, HTTPClient: client})
			_, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())
			if !errors.Is(err, ErrCheckoutMisconfigured) {
				t.Errorf("expected ErrCheckoutMisconfigured, got %v", err)
			}
			if calls != 0 {
				t.Errorf("expected no network I/O for a misconfigured endpoint, got %d calls", calls)
			}
		})
	}
}

func TestCheckoutService_CreateSession_CollaboratorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "card declined"})
	}))
	defer srv.Close()

	svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: srv.URL})
	_, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())
	if !errors.Is(err, ErrCheckoutRejected) {
		t.Fatalf("expected ErrCheckoutRejected, got %v", err)
	}

	var rejected *CheckoutRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected CheckoutRejectedError, got %T", err)
	}
	if rejected.Message != "card declined" {
		t.Errorf("expected collaborator message preserved, got %q", rejected.Message)
	}
}

func TestCheckoutService_CreateSession_ErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: srv.URL})
	_, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())

	var rejected *CheckoutRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected CheckoutRejectedError, got %v", err)
	}
	if rejected.Error() != "checkout failed, please try again" {
		t.Errorf("expected generic fallback message, got %q", rejected.Error())
	}
}

func TestCheckoutService_CreateSession_NetworkFailure(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}

	svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: "https://pay.example", HTTPClient: client})
	_, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())
	if !errors.Is(err, ErrCheckoutRejected) {
		t.Errorf("expected ErrCheckoutRejected for network failure, got %v", err)
	}
}

func TestCheckoutService_CreateSession_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	svc := NewCheckoutService(CheckoutServiceConfig{Endpoint: srv.URL})
	_, err := svc.CreateSession(context.Background(), "job_submission:1", testNormalizedDraft(), testMetro())
	if !errors.Is(err, ErrCheckoutMalformedResponse) {
		t.Errorf("expected ErrCheckoutMalformedResponse, got %v", err)
	}
}

// roundTripFunc adapts a function to http.RoundTripper
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

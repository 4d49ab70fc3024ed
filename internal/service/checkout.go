package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/brewboard/api/internal/model"
)

// CheckoutServiceConfig holds checkout service dependencies
type CheckoutServiceConfig struct {
	// Endpoint is the base URL of the payment collaborator.
	Endpoint string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// CheckoutService turns a validated draft into a payment-session request
// against the external payment collaborator. It makes a single attempt per
// call with no retry and no internal timeout; cancellation is entirely
// caller-driven through the request context.
type CheckoutService struct {
	endpoint   string
	httpClient *http.Client
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(cfg CheckoutServiceConfig) *CheckoutService {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &CheckoutService{
		endpoint:   strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		httpClient: client,
	}
}

// checkoutRequest is the session-creation payload sent to the collaborator.
type checkoutRequest struct {
	MetroSlug string `json:"metro_slug"`
	City      string `json:"city"`
	State     string `json:"state"`

	CafeName     string  `json:"cafe_name"`
	Role         string  `json:"role"`
	Pay          string  `json:"pay"`
	Hours        *string `json:"hours"`
	Neighborhood *string `json:"neighborhood"`

	ApplyURL   *string `json:"apply_url"`
	ApplyEmail *string `json:"apply_email"`

	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email"`

	SubmissionID    string `json:"submission_id"`
	RequestedPinned bool   `json:"requested_pinned"`
}

// checkoutResponse is the collaborator's reply. Non-2xx responses carry an
// optional error message in the same shape.
type checkoutResponse struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CreateSession asks the payment collaborator for a checkout session and
// returns the redirect URL. The caller performs the actual navigation.
//
// A syntactically invalid endpoint is a deployment error, not a transient
// one: it fails with ErrCheckoutMisconfigured before any network I/O.
func (s *CheckoutService) CreateSession(ctx context.Context, submissionID string, draft model.NormalizedDraft, metro model.Metro) (string, error) {
	endpoint, err := url.Parse(s.endpoint)
	if err != nil || !endpoint.IsAbs() || endpoint.Host == "" {
		return "", ErrCheckoutMisconfigured
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return "", ErrCheckoutMisconfigured
	}

	payload := checkoutRequest{
		MetroSlug:       metro.Slug,
		City:            metro.City,
		State:           metro.State,
		CafeName:        draft.CafeName,
		Role:            draft.Role,
		Pay:             draft.Pay,
		Hours:           draft.Hours,
		Neighborhood:    draft.Neighborhood,
		ApplyURL:        draft.ApplyURL,
		ApplyEmail:      draft.ApplyEmail,
		Description:     draft.Description,
		ContactEmail:    draft.ContactEmail,
		SubmissionID:    submissionID,
		RequestedPinned: draft.RequestedPinned,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String()+"/create-checkout", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Network-level failure with no structured body from the collaborator.
		return "", &CheckoutRejectedError{}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &CheckoutRejectedError{}
	}

	var session checkoutResponse
	// A body that does not parse is treated the same as an empty one.
	_ = json.Unmarshal(respBody, &session)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &CheckoutRejectedError{Message: session.Error}
	}
	if session.URL == "" {
		return "", ErrCheckoutMalformedResponse
	}
	return session.URL, nil
}

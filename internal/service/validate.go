package service

import (
	"strings"

	"github.com/brewboard/api/internal/model"
)

// ValidateDraft checks a candidate draft against posting rules and returns
// its normalized form. Rules are evaluated in order and the first failure
// wins:
//
//  1. the metro slug must resolve in the directory
//  2. cafe_name, role and pay must be non-empty after trimming
//  3. at least one of apply_url / apply_email must be non-empty after trimming
//
// The function is pure: no persistence, no network.
func ValidateDraft(draft model.JobDraft, metros *model.MetroDirectory, metroSlug string) (model.NormalizedDraft, model.Metro, error) {
	metro, ok := metros.Lookup(metroSlug)
	if !ok {
		return model.NormalizedDraft{}, model.Metro{}, ErrUnknownMetro
	}

	required := []struct {
		field string
		value string
	}{
		{"cafe_name", draft.CafeName},
		{"role", draft.Role},
		{"pay", draft.Pay},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return model.NormalizedDraft{}, model.Metro{}, &MissingFieldError{Field: f.field}
		}
	}

	applyURL := optional(draft.ApplyURL)
	applyEmail := optional(draft.ApplyEmail)
	if applyURL == nil && applyEmail == nil {
		return model.NormalizedDraft{}, model.Metro{}, ErrMissingApplyContact
	}

	normalized := model.NormalizedDraft{
		CafeName:        strings.TrimSpace(draft.CafeName),
		Role:            strings.TrimSpace(draft.Role),
		Pay:             strings.TrimSpace(draft.Pay),
		Hours:           optional(draft.Hours),
		Neighborhood:    optional(draft.Neighborhood),
		ApplyURL:        applyURL,
		ApplyEmail:      applyEmail,
		Description:     optional(draft.Description),
		ContactEmail:    optional(draft.ContactEmail),
		RequestedPinned: draft.RequestedPinned,
	}
	return normalized, metro, nil
}

// optional trims a free-text field and collapses empty-after-trim values to
// nil, preserving a clean absent/present distinction downstream.
func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/brewboard/api/internal/database"
	"github.com/brewboard/api/internal/model"
)

// SubmissionRepository handles job submission data access
type SubmissionRepository struct {
	db database.Database
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db database.Database) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func newRecordID(table string) string {
	return table + ":" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Create stores a new submission and assigns its record ID
func (r *SubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	id := newRecordID("job_submission")

	// Build query dynamically to avoid NULL vs NONE issues for optional fields
	setClause := `metro_slug = $metro_slug, city = $city, state = $state,
		cafe_name = $cafe_name, role = $role, pay = $pay,
		requested_pinned = $requested_pinned,
		lifecycle_state = $lifecycle_state, created_at = $created_at`
	vars := map[string]interface{}{
		"id":               id,
		"metro_slug":       sub.MetroSlug,
		"city":             sub.City,
		"state":            sub.State,
		"cafe_name":        sub.CafeName,
		"role":             sub.Role,
		"pay":              sub.Pay,
		"requested_pinned": sub.RequestedPinned,
		"lifecycle_state":  string(sub.LifecycleState),
		"created_at":       sub.CreatedAt,
	}

	optionals := map[string]*string{
		"hours":         sub.Hours,
		"neighborhood":  sub.Neighborhood,
		"apply_url":     sub.ApplyURL,
		"apply_email":   sub.ApplyEmail,
		"description":   sub.Description,
		"contact_email": sub.ContactEmail,
	}
	for _, field := range sortedKeys(optionals) {
		if v := optionals[field]; v != nil {
			setClause += fmt.Sprintf(", %s = $%s", field, field)
			vars[field] = *v
		}
	}

	query := "CREATE type::record($id) SET " + setClause
	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	sub.ID = id
	return nil
}

// GetByID retrieves a submission by ID. A missing record returns (nil, nil).
func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT * FROM type::record($id)`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	m, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseSubmissionFromMap(m), nil
}

// ListByState retrieves submissions in a lifecycle state, oldest first, so
// the review queue is worked in arrival order.
func (r *SubmissionRepository) ListByState(ctx context.Context, state model.LifecycleState, limit int) ([]*model.Submission, error) {
	query := `
		SELECT * FROM job_submission
		WHERE lifecycle_state = $state
		ORDER BY created_at ASC
		LIMIT $limit
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{
		"state": string(state),
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return parseSubmissionsFromQuery(result)
}

// TransitionState conditionally moves a submission between lifecycle states.
// The WHERE clause on the stored state is the compare-and-swap that
// serializes concurrent decisions: it returns (false, nil) when the stored
// state no longer equals from, and the caller decides what that means.
func (r *SubmissionRepository) TransitionState(ctx context.Context, id string, from, to model.LifecycleState, stamps map[string]interface{}) (bool, error) {
	setClause := "lifecycle_state = $to"
	vars := map[string]interface{}{
		"id":   id,
		"from": string(from),
		"to":   string(to),
	}
	for _, field := range sortedKeys(stamps) {
		setClause += fmt.Sprintf(", %s = $%s", field, field)
		vars[field] = stamps[field]
	}

	query := "UPDATE type::record($id) SET " + setClause + " WHERE lifecycle_state = $from RETURN AFTER"
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, fmt.Errorf("failed to transition submission: %w", err)
	}

	rows, ok := extractQueryResults(result)
	if !ok {
		return false, nil
	}
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			if inner, ok := m["result"].([]interface{}); ok {
				return len(inner) > 0, nil
			}
			return true, nil
		}
	}
	return false, nil
}

// Publish atomically moves an approved submission to published and creates
// its listing projection. Both statements run in one transaction; the UPDATE
// stays conditional on the approved state.
func (r *SubmissionRepository) Publish(ctx context.Context, submissionID string, listing *model.Listing) error {
	listingID := newRecordID("listing")

	setClause := `metro_slug = $metro_slug, cafe_name = $cafe_name, role = $role, pay = $pay,
		pinned = $pinned, created_at = $created_at`
	listingVars := map[string]interface{}{
		"listing_id": listingID,
		"metro_slug": listing.MetroSlug,
		"cafe_name":  listing.CafeName,
		"role":       listing.Role,
		"pay":        listing.Pay,
		"pinned":     listing.Pinned,
		"created_at": listing.CreatedAt,
	}
	optionals := map[string]*string{
		"hours":        listing.Hours,
		"neighborhood": listing.Neighborhood,
		"apply_url":    listing.ApplyURL,
		"apply_email":  listing.ApplyEmail,
		"description":  listing.Description,
	}
	for _, field := range sortedKeys(optionals) {
		if v := optionals[field]; v != nil {
			setClause += fmt.Sprintf(", %s = $%s", field, field)
			listingVars[field] = *v
		}
	}
	if listing.PinnedUntil != nil {
		setClause += ", pinned_until = $pinned_until"
		listingVars["pinned_until"] = *listing.PinnedUntil
	}

	batch := database.NewAtomicBatch()
	batch.Add(
		`UPDATE type::record($sub_id) SET lifecycle_state = $published WHERE lifecycle_state = $approved`,
		map[string]interface{}{
			"sub_id":    submissionID,
			"published": string(model.StatePublished),
			"approved":  string(model.StateApproved),
		},
	)
	batch.Add("CREATE type::record($listing_id) SET "+setClause, listingVars)

	if err := batch.Execute(ctx, r.db); err != nil {
		return fmt.Errorf("failed to publish submission: %w", err)
	}

	listing.ID = listingID
	return nil
}

// parseSubmissionFromMap maps a SurrealDB row to a Submission
func parseSubmissionFromMap(m map[string]interface{}) *model.Submission {
	sub := &model.Submission{
		ID:        extractRecordID(m["id"]),
		MetroSlug: getString(m, "metro_slug"),
		City:      getString(m, "city"),
		State:     getString(m, "state"),
		NormalizedDraft: model.NormalizedDraft{
			CafeName:        getString(m, "cafe_name"),
			Role:            getString(m, "role"),
			Pay:             getString(m, "pay"),
			Hours:           getStringPtr(m, "hours"),
			Neighborhood:    getStringPtr(m, "neighborhood"),
			ApplyURL:        getStringPtr(m, "apply_url"),
			ApplyEmail:      getStringPtr(m, "apply_email"),
			Description:     getStringPtr(m, "description"),
			ContactEmail:    getStringPtr(m, "contact_email"),
			RequestedPinned: getBool(m, "requested_pinned"),
		},
		LifecycleState:  model.LifecycleState(getString(m, "lifecycle_state")),
		PaidAt:          getTime(m, "paid_at"),
		ReviewedAt:      getTime(m, "reviewed_at"),
		RejectionReason: getStringPtr(m, "rejection_reason"),
	}
	if t := getTime(m, "created_at"); t != nil {
		sub.CreatedAt = *t
	}
	return sub
}

func parseSubmissionsFromQuery(result interface{}) ([]*model.Submission, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, nil
	}

	subs := make([]*model.Submission, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		if inner, ok := m["result"].([]interface{}); ok {
			for _, ir := range inner {
				if im, ok := ir.(map[string]interface{}); ok {
					subs = append(subs, parseSubmissionFromMap(im))
				}
			}
			continue
		}
		subs = append(subs, parseSubmissionFromMap(m))
	}
	return subs, nil
}

// sortedKeys keeps dynamically built SET clauses in deterministic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/brewboard/api/internal/database"
	"github.com/brewboard/api/internal/model"
)

// ListingRepository handles published listing data access
type ListingRepository struct {
	db database.Database
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db database.Database) *ListingRepository {
	return &ListingRepository{db: db}
}

// ListByMetro retrieves every published listing for a metro. No store-level
// ordering: display order is the ranking comparator's job, computed against
// the wall clock at render time.
func (r *ListingRepository) ListByMetro(ctx context.Context, metroSlug string) ([]*model.Listing, error) {
	query := `SELECT * FROM listing WHERE metro_slug = $metro_slug`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"metro_slug": metroSlug})
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	return parseListingsFromQuery(result)
}

// ClearExpiredPins unsets pinned on listings whose bound has passed.
// Unbounded pins (no pinned_until) are never touched.
func (r *ListingRepository) ClearExpiredPins(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE listing
		SET pinned = false, pinned_until = NONE
		WHERE pinned = true AND pinned_until != NONE AND pinned_until <= $now
		RETURN AFTER
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"now": now})
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired pins: %w", err)
	}

	cleared, err := parseListingsFromQuery(result)
	if err != nil {
		return 0, err
	}
	return len(cleared), nil
}

// parseListingFromMap maps a SurrealDB row to a Listing
func parseListingFromMap(m map[string]interface{}) *model.Listing {
	listing := &model.Listing{
		ID:           extractRecordID(m["id"]),
		MetroSlug:    getString(m, "metro_slug"),
		CafeName:     getString(m, "cafe_name"),
		Role:         getString(m, "role"),
		Pay:          getString(m, "pay"),
		Hours:        getStringPtr(m, "hours"),
		Neighborhood: getStringPtr(m, "neighborhood"),
		ApplyURL:     getStringPtr(m, "apply_url"),
		ApplyEmail:   getStringPtr(m, "apply_email"),
		Description:  getStringPtr(m, "description"),
		Pinned:       getBool(m, "pinned"),
		PinnedUntil:  getTime(m, "pinned_until"),
	}
	// An unparsable created_at stays zero; the ranker treats it as not-finite
	// rather than failing the whole page.
	if t := getTime(m, "created_at"); t != nil {
		listing.CreatedAt = *t
	}
	return listing
}

func parseListingsFromQuery(result interface{}) ([]*model.Listing, error) {
	rows, ok := extractQueryResults(result)
	if !ok {
		return nil, nil
	}

	listings := make([]*model.Listing, 0, len(rows))
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		if inner, ok := m["result"].([]interface{}); ok {
			for _, ir := range inner {
				if im, ok := ir.(map[string]interface{}); ok {
					listings = append(listings, parseListingFromMap(im))
				}
			}
			continue
		}
		listings = append(listings, parseListingFromMap(m))
	}
	return listings, nil
}

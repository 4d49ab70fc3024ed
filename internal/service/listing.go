package service

import (
	"context"
	"time"

	"github.com/brewboard/api/internal/model"
)

// ListingRepository defines the interface for listing data access
type ListingRepository interface {
	ListByMetro(ctx context.Context, metroSlug string) ([]*model.Listing, error)

	// ClearExpiredPins unsets pinned on listings whose pinned_until has
	// passed and returns how many rows changed. Store hygiene only; display
	// ordering never depends on it.
	ClearExpiredPins(ctx context.Context, now time.Time) (int, error)
}

// ListingService serves the render boundary: the ranked set of published
// listings for a metro. It never renders anything itself.
type ListingService struct {
	listingRepo ListingRepository
	metros      *model.MetroDirectory
}

// NewListingService creates a new listing service
func NewListingService(listingRepo ListingRepository, metros *model.MetroDirectory) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		metros:      metros,
	}
}

// PublishedListings returns the metro's listings in display order, ranked at
// now. An unknown metro fails closed with ErrUnknownMetro.
func (s *ListingService) PublishedListings(ctx context.Context, metroSlug string, now time.Time) ([]*model.Listing, error) {
	if _, ok := s.metros.Lookup(metroSlug); !ok {
		return nil, ErrUnknownMetro
	}

	listings, err := s.listingRepo.ListByMetro(ctx, metroSlug)
	if err != nil {
		return nil, err
	}
	return RankListings(listings, now), nil
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/brewboard/api/internal/model"
	"github.com/brewboard/api/internal/service"
)

// ListingProvider defines the interface for serving ranked listings
type ListingProvider interface {
	PublishedListings(ctx context.Context, metroSlug string, now time.Time) ([]*model.Listing, error)
}

// ListingHandler handles public board HTTP requests
type ListingHandler struct {
	listings ListingProvider
	metros   *model.MetroDirectory
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings ListingProvider, metros *model.MetroDirectory) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		metros:   metros,
	}
}

// RegisterRoutes registers public board routes
func (h *ListingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/metros", h.ListMetros)
	mux.HandleFunc("GET /v1/metros/{metro}/listings", h.ListListings)
}

// ListMetros returns the metro directory
func (h *ListingHandler) ListMetros(w http.ResponseWriter, r *http.Request) {
	metros := make([]model.Metro, 0, len(h.metros.Slugs()))
	for _, slug := range h.metros.Slugs() {
		if m, ok := h.metros.Lookup(slug); ok {
			metros = append(metros, m)
		}
	}
	WriteCollection(w, http.StatusOK, metros, nil)
}

// ListingView is a listing with its pin status resolved at request time.
type ListingView struct {
	*model.Listing
	PinnedNow bool `json:"pinned_now"`
}

// ListListings returns the metro's published listings in display order.
// Ranking and pinned_now are computed at request time; a pin that expired a
// second ago is already ordinary here even if the store still says pinned.
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	metroSlug := r.PathValue("metro")
	if metroSlug == "" {
		WriteError(w, model.NewBadRequestError("metro slug required"))
		return
	}

	now := time.Now().UTC()
	listings, err := h.listings.PublishedListings(r.Context(), metroSlug, now)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		views = append(views, ListingView{
			Listing:   listing,
			PinnedNow: service.PinnedNow(listing, now),
		})
	}

	WriteCollection(w, http.StatusOK, views, map[string]string{
		"self": "/v1/metros/" + metroSlug + "/listings",
	})
}

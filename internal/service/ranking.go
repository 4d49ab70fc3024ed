package service

import (
	"sort"
	"strings"
	"time"

	"github.com/brewboard/api/internal/model"
)

// PinnedNow reports whether a listing is currently pinned. A pinned listing
// without a pinned_until is an unbounded legacy pin. A set pinned_until is a
// strict bound: the pin expires exactly at that instant, not after.
//
// The result is a function of wall-clock time alone, so it must be recomputed
// on every render pass and never cached.
func PinnedNow(listing *model.Listing, now time.Time) bool {
	if !listing.Pinned {
		return false
	}
	if listing.PinnedUntil == nil {
		return true
	}
	return listing.PinnedUntil.After(now)
}

// RankListings returns the listings in display order: a stable, deterministic
// total order for a fixed input set and now. The input slice is not modified.
//
// Comparator chain, first non-zero result wins:
//
//  1. currently-pinned listings before all others
//  2. created_at descending (newest first)
//  3. id descending, lexicographic
//
// A zero created_at (an unparsable stored timestamp) never panics the
// comparator: it loses to any real timestamp, and two zero values fall
// through to the id tie-break.
func RankListings(listings []*model.Listing, now time.Time) []*model.Listing {
	ranked := make([]*model.Listing, len(listings))
	copy(ranked, listings)

	sort.SliceStable(ranked, func(i, j int) bool {
		return compareListings(ranked[i], ranked[j], now) < 0
	})
	return ranked
}

// compareListings orders a before b when the result is negative.
func compareListings(a, b *model.Listing, now time.Time) int {
	aPinned := PinnedNow(a, now)
	bPinned := PinnedNow(b, now)
	if aPinned != bPinned {
		if aPinned {
			return -1
		}
		return 1
	}

	if c := compareCreatedAtDesc(a.CreatedAt, b.CreatedAt); c != 0 {
		return c
	}

	// Final deterministic tie-break: id descending.
	return strings.Compare(b.ID, a.ID)
}

func compareCreatedAtDesc(a, b time.Time) int {
	aZero := a.IsZero()
	bZero := b.IsZero()
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return 1
	case bZero:
		return -1
	case a.After(b):
		return -1
	case b.After(a):
		return 1
	default:
		return 0
	}
}

package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Metro is a geographic market the board operates in. Metros are static
// configuration: a slug that is not in the directory means the region is not
// live, and every operation for it fails closed.
type Metro struct {
	Slug  string `json:"slug"`
	City  string `json:"city"`
	State string `json:"state"`
	Title string `json:"title"`
}

// MetroDirectory is an injected, read-only lookup of live metros.
type MetroDirectory struct {
	metros map[string]Metro
}

// NewMetroDirectory builds a directory from the given metros.
// Entries without a slug are rejected.
func NewMetroDirectory(metros []Metro) (*MetroDirectory, error) {
	bySlug := make(map[string]Metro, len(metros))
	for _, m := range metros {
		if m.Slug == "" {
			return nil, fmt.Errorf("metro %q/%q has no slug", m.City, m.State)
		}
		if _, dup := bySlug[m.Slug]; dup {
			return nil, fmt.Errorf("duplicate metro slug %q", m.Slug)
		}
		bySlug[m.Slug] = m
	}
	return &MetroDirectory{metros: bySlug}, nil
}

// ParseMetroDirectory builds a directory from a JSON array of metros,
// as carried in the METROS_JSON environment variable.
func ParseMetroDirectory(raw string) (*MetroDirectory, error) {
	var metros []Metro
	if err := json.Unmarshal([]byte(raw), &metros); err != nil {
		return nil, fmt.Errorf("invalid metros JSON: %w", err)
	}
	return NewMetroDirectory(metros)
}

// DefaultMetros returns the directory the board launched with.
func DefaultMetros() []Metro {
	return []Metro{
		{Slug: "portland-or", City: "Portland", State: "OR", Title: "Portland Coffee Jobs"},
	}
}

// Lookup resolves a metro slug. The second return is false when the metro is
// not live.
func (d *MetroDirectory) Lookup(slug string) (Metro, bool) {
	m, ok := d.metros[slug]
	return m, ok
}

// Slugs returns all live metro slugs in stable order.
func (d *MetroDirectory) Slugs() []string {
	slugs := make([]string, 0, len(d.metros))
	for slug := range d.metros {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Package merge collapses listings from several sources into one ordered
// collection.
package merge

import (
	"slices"

	"github.com/amishk599/jobmerge/internal/model"
	"github.com/amishk599/jobmerge/internal/normalize"
)

// Key identifies the real-world posting behind a listing: normalized company,
// normalized title, and link domain.
func Key(l model.Listing) string {
	return normalize.Key(l.Company) + "|" + normalize.Key(l.Title) + "|" + normalize.Domain(l.Link)
}

// Dedupe keeps the first listing for each Key and drops later ones whole.
// Input order decides precedence. The input slice is not modified.
func Dedupe(listings []model.Listing) []model.Listing {
	seen := make(map[string]struct{}, len(listings))
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		k := Key(l)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, l)
	}
	return out
}

// SortByDateDesc returns a copy ordered newest first. The sort is stable, so
// equal instants keep their input order and unknown dates end up last.
func SortByDateDesc(listings []model.Listing) []model.Listing {
	out := slices.Clone(listings)
	slices.SortStableFunc(out, func(a, b model.Listing) int {
		return b.DatePosted.Instant.Compare(a.DatePosted.Instant)
	})
	return out
}

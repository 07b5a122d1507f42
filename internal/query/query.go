// Package query filters and orders listings for display. It never
// touches storage order: Apply always works on a copy.
package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// SortKeys lists the recognised keys in menu order.
var SortKeys = []SortKey{SortNewest, SortOldest, SortPriceAsc, SortPriceDesc}

// Params is the filter state of the listings view.
type Params struct {
	Text     string
	Category string
	Sort     SortKey
}

// ParseSortKey maps user input to a SortKey. Blank input means newest.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortNewest, nil
	}
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("%w: %q", common.ErrUnknownSortKey, s)
	}
	return k, nil
}

// Apply filters by category and text, then sorts by p.Sort.
// An empty Sort means newest; an unrecognised one keeps the filtered order.
func Apply(listings []models.Listing, p Params) []models.Listing {
	out := make([]models.Listing, 0, len(listings))

	var needle string
	var fold cases.Caser
	if p.Text != "" {
		fold = cases.Fold()
		needle = normalize(fold, p.Text)
	}

	for _, l := range listings {
		if p.Category != "" && p.Category != common.CategoryAll && l.Category != p.Category {
			continue
		}
		if needle != "" && !strings.Contains(normalize(fold, haystack(l)), needle) {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, p.Sort)
	return out
}

func haystack(l models.Listing) string {
	return l.Title + " " + l.Description + " " + l.PosterName
}

func normalize(fold cases.Caser, s string) string {
	return fold.String(norm.NFC.String(s))
}

func sortListings(list []models.Listing, key SortKey) {
	if key == "" {
		key = SortNewest
	}

	var less func(a, b models.Listing) int
	switch key {
	case SortNewest:
		less = func(a, b models.Listing) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	case SortOldest:
		less = func(a, b models.Listing) int { return cmp.Compare(a.CreatedAt, b.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b models.Listing) int { return cmp.Compare(a.PriceValue(), b.PriceValue()) }
	case SortPriceDesc:
		less = func(a, b models.Listing) int { return cmp.Compare(b.PriceValue(), a.PriceValue()) }
	default:
		return
	}

	slices.SortStableFunc(list, less)
}

// Categories returns the distinct categories present in listings, in
// first-seen order.
func Categories(listings []models.Listing) []string {
	var out []string
	for _, l := range listings {
		if l.Category != "" && !slices.Contains(out, l.Category) {
			out = append(out, l.Category)
		}
	}
	return out
}

// Package listings persists the job listing collection. Until the first
// write, reads return a fixed three-item sample.
package listings

import (
	"context"
	"slices"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/timex"
)

type Repository interface {
	List(ctx context.Context) []models.Listing
	Add(ctx context.Context, l models.Listing) error
	Remove(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (*models.Listing, error)
}

type KVRepository struct {
	kv    *kvstore.Store
	clock timex.Clock
}

func NewKVRepository(kv *kvstore.Store, clock timex.Clock) *KVRepository {
	if clock == nil {
		clock = time.Now
	}
	return &KVRepository{kv: kv, clock: clock}
}

// Seed returns the sample listings with ages relative to now.
func Seed(now time.Time) []models.Listing {
	at := func(ago time.Duration) int64 { return timex.UnixMilli(now.Add(-ago)) }

	return []models.Listing{
		{
			ID:          "sj1",
			Title:       "Cut front & back lawn",
			Category:    "Yard & Garden",
			Description: "Mow front and back lawn, trim edges and tidy hedge. Approx 1.5 hours.",
			Price:       models.Float(40),
			Location:    "Dublin",
			PosterName:  "Mary",
			CreatedAt:   at(24 * time.Hour),
		},
		{
			ID:          "sj2",
			Title:       "Replace kitchen sink",
			Category:    "Plumbing",
			Description: "Remove old sink and fit new stainless sink. Standard fittings expected.",
			Price:       models.Float(120),
			Location:    "Cork",
			PosterName:  "Liam",
			CreatedAt:   at(5 * time.Hour),
		},
		{
			ID:          "sj3",
			Title:       "Small van rubbish removal",
			Category:    "Waste & Removal",
			Description: "Remove garden waste and old furniture. 1-2 hours, help loading.",
			Price:       models.Float(60),
			Location:    "Galway",
			PosterName:  "Aoife",
			CreatedAt:   at(time.Hour),
		},
	}
}

// List returns the stored collection in storage order, or the seed when
// nothing usable is stored. A stored empty collection stays empty.
func (r *KVRepository) List(ctx context.Context) []models.Listing {
	list := kvstore.Get[[]models.Listing](ctx, r.kv, common.KeyListings, nil)
	if list == nil {
		return Seed(r.clock())
	}
	return list
}

// Add prepends l and persists the collection.
func (r *KVRepository) Add(ctx context.Context, l models.Listing) error {
	list := append([]models.Listing{l}, r.List(ctx)...)
	return r.kv.Set(ctx, common.KeyListings, list)
}

// Remove drops every listing with the given id and persists the rest.
func (r *KVRepository) Remove(ctx context.Context, id string) error {
	list := slices.DeleteFunc(r.List(ctx), func(l models.Listing) bool { return l.ID == id })
	return r.kv.Set(ctx, common.KeyListings, list)
}

func (r *KVRepository) Find(ctx context.Context, id string) (*models.Listing, error) {
	for _, l := range r.List(ctx) {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, common.ErrNotFound
}

// Package applications persists applications sent for listings.
package applications

import (
	"context"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/models"
)

type Repository interface {
	Add(ctx context.Context, a models.Application) error
	List(ctx context.Context) []models.Application
	ListForListing(ctx context.Context, listingID string) []models.Application
}

type KVRepository struct {
	kv *kvstore.Store
}

func NewKVRepository(kv *kvstore.Store) *KVRepository {
	return &KVRepository{kv: kv}
}

func (r *KVRepository) List(ctx context.Context) []models.Application {
	return kvstore.Get(ctx, r.kv, common.KeyApplications, []models.Application{})
}

// Add appends a and persists the collection.
func (r *KVRepository) Add(ctx context.Context, a models.Application) error {
	return r.kv.Set(ctx, common.KeyApplications, append(r.List(ctx), a))
}

// ListForListing returns applications for one listing, oldest first.
func (r *KVRepository) ListForListing(ctx context.Context, listingID string) []models.Application {
	var out []models.Application
	for _, a := range r.List(ctx) {
		if a.ListingID == listingID {
			out = append(out, a)
		}
	}
	return out
}

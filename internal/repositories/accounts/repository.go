// Package accounts persists the registered account collection.
package accounts

import (
	"context"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/models"
)

type Repository interface {
	List(ctx context.Context) []models.Account
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id string) (*models.Account, error)
	Save(ctx context.Context, list []models.Account) error
}

type KVRepository struct {
	kv *kvstore.Store
}

func NewKVRepository(kv *kvstore.Store) *KVRepository {
	return &KVRepository{kv: kv}
}

// List returns accounts in signup order.
func (r *KVRepository) List(ctx context.Context) []models.Account {
	return kvstore.Get(ctx, r.kv, common.KeyAccounts, []models.Account{})
}

func (r *KVRepository) find(ctx context.Context, match func(models.Account) bool) (*models.Account, error) {
	for _, a := range r.List(ctx) {
		if match(a) {
			return &a, nil
		}
	}
	return nil, common.ErrNotFound
}

// FindByEmail matches the stored email exactly.
func (r *KVRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.find(ctx, func(a models.Account) bool { return a.Email == email })
}

func (r *KVRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	return r.find(ctx, func(a models.Account) bool { return a.ID == id })
}

func (r *KVRepository) Save(ctx context.Context, list []models.Account) error {
	return r.kv.Set(ctx, common.KeyAccounts, list)
}

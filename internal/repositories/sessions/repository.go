// Package sessions persists the single current-session slot.
package sessions

import (
	"context"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/models"
)

type Repository interface {
	Get(ctx context.Context) *models.Session
	Set(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

type KVRepository struct {
	kv *kvstore.Store
}

func NewKVRepository(kv *kvstore.Store) *KVRepository {
	return &KVRepository{kv: kv}
}

// Get returns nil when nobody is signed in.
func (r *KVRepository) Get(ctx context.Context) *models.Session {
	return kvstore.Get[*models.Session](ctx, r.kv, common.KeySession, nil)
}

func (r *KVRepository) Set(ctx context.Context, s models.Session) error {
	return r.kv.Set(ctx, common.KeySession, s)
}

func (r *KVRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, common.KeySession)
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/kvstore"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/listings"
	"github.com/cpower013/quickjobs-site-1/internal/storage/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &models.Session{ID: "u1", Name: "Alice", Email: "alice@example.com"}
	bob   = &models.Session{ID: "u2", Name: "Bob", Email: "bob@example.com"}
)

// failingListings fails every write.
type failingListings struct {
	listings.Repository
	err error
}

func (f failingListings) Add(context.Context, models.Listing) error { return f.err }

func newJobs(t *testing.T) (JobService, *testClock) {
	t.Helper()
	clock := newClock()
	kv := kvstore.New(memstore.New(), logging.Discard())
	repo := listings.NewKVRepository(kv, clock.Now)
	return NewJobService(repo, clock.Now, logging.Discard()), clock
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    *float64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"0", nil, false},
		{"0.00", nil, false},
		{"50", models.Float(50), false},
		{" 42.5 ", models.Float(42.5), false},
		{"€40", models.Float(40), false},
		{"1,200", models.Float(1200), false},
		{"-5", nil, true},
		{"abc", nil, true},
		{"NaN", nil, true},
		{"Inf", nil, true},
		{"1e400", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPost_AppearsFirstAndOwned(t *testing.T) {
	svc, clock := newJobs(t)
	ctx := context.Background()

	l, err := svc.Post(ctx, alice, models.Draft{
		Title:       "  Test  ",
		Category:    "Plumbing",
		Description: " Fix a dripping tap ",
		PriceText:   "50",
		Location:    " Cork ",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(l.ID, "j"))
	assert.Equal(t, "Test", l.Title)
	assert.Equal(t, "Fix a dripping tap", l.Description)
	assert.Equal(t, "Cork", l.Location)
	assert.Equal(t, models.Float(50), l.Price)
	assert.Equal(t, "Alice", l.PosterName)
	assert.Equal(t, "alice@example.com", l.PosterEmail)
	assert.Equal(t, clock.now.UnixMilli(), l.CreatedAt)

	list := svc.List(ctx)
	require.Len(t, list, 4)
	assert.Equal(t, l, list[0])

	assert.True(t, svc.IsOwner(alice, l))
	assert.False(t, svc.IsOwner(bob, l))
	assert.False(t, svc.IsOwner(nil, l))

	got, err := svc.Find(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, l, *got)
}

func TestPost_Rejections(t *testing.T) {
	svc, _ := newJobs(t)
	ctx := context.Background()

	_, err := svc.Post(ctx, nil, models.Draft{Title: "t", Description: "d"})
	require.ErrorIs(t, err, common.ErrNotSignedIn)

	_, err = svc.Post(ctx, alice, models.Draft{Title: "  ", Description: "d"})
	require.ErrorIs(t, err, common.ErrValidationIncomplete)

	_, err = svc.Post(ctx, alice, models.Draft{Title: "t", Description: ""})
	require.ErrorIs(t, err, common.ErrValidationIncomplete)

	_, err = svc.Post(ctx, alice, models.Draft{Title: "t", Description: "d", PriceText: "-1"})
	require.ErrorIs(t, err, common.ErrInvalidPrice)

	assert.Len(t, svc.List(ctx), 3, "nothing stored on rejection")
}

func TestPost_DefaultsCategoryAndNullPrice(t *testing.T) {
	svc, _ := newJobs(t)

	l, err := svc.Post(context.Background(), alice, models.Draft{Title: "t", Description: "d", PriceText: "0"})
	require.NoError(t, err)
	assert.Equal(t, "Other", l.Category)
	assert.Nil(t, l.Price)
}

func TestPost_WriteFailure(t *testing.T) {
	boom := errors.New("backend down")
	kv := kvstore.New(memstore.New(), logging.Discard())
	repo := failingListings{Repository: listings.NewKVRepository(kv, nil), err: boom}
	svc := NewJobService(repo, nil, logging.Discard())

	_, err := svc.Post(context.Background(), alice, models.Draft{Title: "t", Description: "d"})
	require.ErrorIs(t, err, boom)
}

func TestDelete(t *testing.T) {
	svc, _ := newJobs(t)
	ctx := context.Background()

	l, err := svc.Post(ctx, alice, models.Draft{Title: "t", Description: "d"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Delete(ctx, nil, l.ID), common.ErrNotSignedIn)
	require.ErrorIs(t, svc.Delete(ctx, bob, l.ID), common.ErrNotOwner)
	require.ErrorIs(t, svc.Delete(ctx, alice, "sj1"), common.ErrNotOwner, "seed listings have no owner")
	require.NoError(t, svc.Delete(ctx, alice, "missing"))

	require.NoError(t, svc.Delete(ctx, alice, l.ID))
	_, err = svc.Find(ctx, l.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Len(t, svc.List(ctx), 3)
}

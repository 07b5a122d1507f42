package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/listings"
	"github.com/cpower013/quickjobs-site-1/internal/timex"
)

const defaultCategory = "Other"

// JobService posts and deletes listings on behalf of a session.
// The session is always passed in by the caller.
type JobService interface {
	List(ctx context.Context) []models.Listing
	Find(ctx context.Context, id string) (*models.Listing, error)
	Post(ctx context.Context, sess *models.Session, d models.Draft) (models.Listing, error)
	Delete(ctx context.Context, sess *models.Session, id string) error
	IsOwner(sess *models.Session, l models.Listing) bool
}

type jobService struct {
	repo  listings.Repository
	clock timex.Clock
	log   logging.Logger
}

func NewJobService(repo listings.Repository, clock timex.Clock, log logging.Logger) JobService {
	if clock == nil {
		clock = time.Now
	}
	return &jobService{repo: repo, clock: clock, log: log}
}

func (s *jobService) List(ctx context.Context) []models.Listing {
	return s.repo.List(ctx)
}

func (s *jobService) Find(ctx context.Context, id string) (*models.Listing, error) {
	return s.repo.Find(ctx, id)
}

// ParsePrice reads the optional price field. Blank or zero means no
// price; anything else must be a finite, non-negative number. A leading
// euro sign and thousands commas are accepted.
func ParsePrice(text string) (*float64, error) {
	t := strings.TrimSpace(text)
	t = strings.TrimSpace(strings.TrimPrefix(t, "€"))
	t = strings.ReplaceAll(t, ",", "")
	if t == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPrice, text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidPrice, text)
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

func (s *jobService) Post(ctx context.Context, sess *models.Session, d models.Draft) (models.Listing, error) {
	if sess == nil {
		return models.Listing{}, common.ErrNotSignedIn
	}

	title := strings.TrimSpace(d.Title)
	desc := strings.TrimSpace(d.Description)
	if title == "" || desc == "" {
		return models.Listing{}, common.ErrValidationIncomplete
	}

	price, err := ParsePrice(d.PriceText)
	if err != nil {
		return models.Listing{}, err
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = defaultCategory
	}

	l := models.Listing{
		ID:          newID(listingIDPrefix),
		Title:       title,
		Category:    category,
		Description: desc,
		Price:       price,
		Location:    strings.TrimSpace(d.Location),
		PosterName:  sess.Name,
		PosterEmail: sess.Email,
		CreatedAt:   timex.UnixMilli(s.clock()),
	}

	if err := s.repo.Add(ctx, l); err != nil {
		return models.Listing{}, fmt.Errorf("post listing: %w", err)
	}

	s.log.Info(ctx, "listing posted", "listing", l.ID, "account", sess.ID)
	return l, nil
}

// Delete removes a listing owned by sess. Unknown ids are ignored.
func (s *jobService) Delete(ctx context.Context, sess *models.Session, id string) error {
	if sess == nil {
		return common.ErrNotSignedIn
	}

	l, err := s.repo.Find(ctx, id)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !s.IsOwner(sess, *l) {
		return common.ErrNotOwner
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}

	s.log.Info(ctx, "listing deleted", "listing", id, "account", sess.ID)
	return nil
}

func (s *jobService) IsOwner(sess *models.Session, l models.Listing) bool {
	return sess != nil && l.PosterEmail != "" && l.PosterEmail == sess.Email
}

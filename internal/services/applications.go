package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/applications"
	"github.com/cpower013/quickjobs-site-1/internal/repositories/listings"
	"github.com/cpower013/quickjobs-site-1/internal/timex"
)

// ApplicationService records applications sent for listings.
type ApplicationService interface {
	Apply(ctx context.Context, sess *models.Session, listingID, message, contact string) (models.Application, error)
	ForListing(ctx context.Context, listingID string) []models.Application
}

type applicationService struct {
	apps     applications.Repository
	listings listings.Repository
	clock    timex.Clock
	log      logging.Logger
}

func NewApplicationService(apps applications.Repository, ls listings.Repository, clock timex.Clock, log logging.Logger) ApplicationService {
	if clock == nil {
		clock = time.Now
	}
	return &applicationService{apps: apps, listings: ls, clock: clock, log: log}
}

func (s *applicationService) Apply(ctx context.Context, sess *models.Session, listingID, message, contact string) (models.Application, error) {
	if sess == nil {
		return models.Application{}, common.ErrNotSignedIn
	}

	msg := strings.TrimSpace(message)
	if msg == "" {
		return models.Application{}, common.ErrValidationIncomplete
	}

	if _, err := s.listings.Find(ctx, listingID); err != nil {
		return models.Application{}, err
	}

	a := models.Application{
		ID:             newID(applicationIDPrefix),
		ListingID:      listingID,
		Message:        msg,
		Contact:        strings.TrimSpace(contact),
		ApplicantName:  sess.Name,
		ApplicantEmail: sess.Email,
		CreatedAt:      timex.UnixMilli(s.clock()),
	}
	if err := s.apps.Add(ctx, a); err != nil {
		return models.Application{}, fmt.Errorf("apply: %w", err)
	}

	s.log.Info(ctx, "application sent", "listing", listingID, "account", sess.ID)
	return a, nil
}

func (s *applicationService) ForListing(ctx context.Context, listingID string) []models.Application {
	return s.apps.ListForListing(ctx, listingID)
}

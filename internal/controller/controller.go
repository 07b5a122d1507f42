// Package controller holds the listings-page state machine: filter state,
// the signed-in session, the detail and apply views, and the deferred
// deep-link transition. The terminal adapter only forwards events to it
// and prints what it returns.
package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/logging"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/query"
	"github.com/cpower013/quickjobs-site-1/internal/services"
	"github.com/cpower013/quickjobs-site-1/internal/timex"
	"github.com/dustin/go-humanize"
)

const DefaultDeepLinkDelay = 400 * time.Millisecond

const noticeSessionExpired = "Your session has expired, please sign in again"

type Options struct {
	BaseURL string
	Clock   timex.Clock
	Logger  logging.Logger
	// OnDeepLink is called from the timer goroutine after a deep-linked
	// listing has been opened.
	OnDeepLink func(models.DetailView)
}

type Controller struct {
	identity services.IdentityService
	jobs     services.JobService
	apps     services.ApplicationService

	baseURL    string
	clock      timex.Clock
	log        logging.Logger
	onDeepLink func(models.DetailView)

	mu       sync.Mutex
	params   query.Params
	session  *models.Session
	detailID string
	applyID  string
	notice   string
	timer    *time.Timer
}

func New(identity services.IdentityService, jobs services.JobService, apps services.ApplicationService, o Options) *Controller {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
	return &Controller{
		identity:   identity,
		jobs:       jobs,
		apps:       apps,
		baseURL:    o.BaseURL,
		clock:      o.Clock,
		log:        o.Logger,
		onDeepLink: o.OnDeepLink,
		params:     query.Params{Category: common.CategoryAll, Sort: query.SortNewest},
	}
}

// RefreshSession reloads the stored session. A stale one is dropped with
// a notice.
func (c *Controller) RefreshSession(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess, err := c.identity.CurrentSession(ctx)
	if err != nil {
		c.session = nil
		c.notice = noticeSessionExpired
		return
	}
	c.session = sess
}

// revalidate reloads the cached session before an event that acts on the
// user's behalf. It reports whether the session had to be dropped.
func (c *Controller) revalidate(ctx context.Context) bool {
	if c.session == nil {
		return false
	}
	sess, err := c.identity.CurrentSession(ctx)
	if err != nil || sess == nil {
		c.session = nil
		c.applyID = ""
		return true
	}
	c.session = sess
	return false
}

// Session returns a copy of the signed-in session, or nil.
func (c *Controller) Session() *models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Greeting is the header line shown above the listings.
func (c *Controller) Greeting() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return "Not signed in"
	}
	return "Signed in as " + c.session.Name
}

func (c *Controller) Params() query.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// TakeNotice returns the pending notice and clears it.
func (c *Controller) TakeNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.notice
	c.notice = ""
	return n
}

func (c *Controller) fail(err error, notice string) error {
	c.notice = notice
	return err
}

// PriceLabel renders a listing price for display.
func PriceLabel(price *float64) string {
	if price == nil || *price == 0 {
		return "Price: negotiable"
	}
	return "€" + humanize.Commaf(*price)
}

// Render returns the filtered, ordered rows for the current state.
func (c *Controller) Render(ctx context.Context) []models.ViewRow {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	list := query.Apply(c.jobs.List(ctx), c.params)

	rows := make([]models.ViewRow, 0, len(list))
	for _, l := range list {
		rows = append(rows, models.ViewRow{
			ID:         l.ID,
			Title:      l.Title,
			Category:   l.Category,
			Location:   l.Location,
			PriceLabel: PriceLabel(l.Price),
			PosterName: l.PosterName,
			Age:        humanize.RelTime(time.UnixMilli(l.CreatedAt), now, "ago", "from now"),
			CanDelete:  c.jobs.IsOwner(c.session, l),
		})
	}
	return rows
}

func (c *Controller) ChangeFilter(p query.Params) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.Category == "" {
		p.Category = common.CategoryAll
	}
	if p.Sort == "" {
		p.Sort = query.SortNewest
	}
	c.params = p
}

func (c *Controller) SubmitSignup(ctx context.Context, name, email, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	sess, err := c.identity.Signup(ctx, name, email, password)
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return c.fail(err, "Email already used")
	case errors.Is(err, common.ErrValidationIncomplete):
		return c.fail(err, "Please enter your name, email and a password")
	case err != nil:
		c.log.Error(ctx, "signup failed", "err", err)
		return c.fail(err, "Could not create the account, please try again")
	}

	c.session = &sess
	c.notice = "Account created, signed in as " + sess.Name
	return nil
}

func (c *Controller) SubmitLogin(ctx context.Context, email, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))

	sess, err := c.identity.Login(ctx, email, password)
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return c.fail(err, "Invalid email or password")
	case err != nil:
		c.log.Error(ctx, "login failed", "err", err)
		return c.fail(err, "Could not sign in, please try again")
	}

	c.session = &sess
	c.notice = "Logged in as " + sess.Name
	return nil
}

func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.identity.Logout(ctx); err != nil {
		c.log.Error(ctx, "logout failed", "err", err)
		return c.fail(err, "Could not sign out, please try again")
	}

	c.session = nil
	c.applyID = ""
	c.notice = "Signed out"
	return nil
}

func (c *Controller) SubmitPost(ctx context.Context, d models.Draft) (models.Listing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revalidate(ctx) {
		return models.Listing{}, c.fail(common.ErrInvalidSession, noticeSessionExpired)
	}

	l, err := c.jobs.Post(ctx, c.session, d)
	switch {
	case errors.Is(err, common.ErrNotSignedIn):
		return l, c.fail(err, "You must be signed in to post a job.")
	case errors.Is(err, common.ErrValidationIncomplete):
		return l, c.fail(err, "Please complete title and description")
	case errors.Is(err, common.ErrInvalidPrice):
		return l, c.fail(err, "Price must be a number (leave blank if negotiable)")
	case err != nil:
		c.log.Error(ctx, "post failed", "err", err)
		return l, c.fail(err, "Could not post the job, please try again")
	}

	c.notice = "Job posted: " + l.Title
	return l, nil
}

func (c *Controller) DeleteListing(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revalidate(ctx) {
		return c.fail(common.ErrInvalidSession, noticeSessionExpired)
	}

	err := c.jobs.Delete(ctx, c.session, id)
	switch {
	case errors.Is(err, common.ErrNotSignedIn):
		return c.fail(err, "You must be signed in to delete a job.")
	case errors.Is(err, common.ErrNotOwner):
		return c.fail(err, "Only the poster can delete this job")
	case err != nil:
		c.log.Error(ctx, "delete failed", "err", err)
		return c.fail(err, "Could not delete the job, please try again")
	}

	if c.detailID == id {
		c.detailID = ""
	}
	if c.applyID == id {
		c.applyID = ""
	}
	c.notice = "Job deleted"
	return nil
}

func detailOf(l models.Listing) models.DetailView {
	poster := l.PosterName
	if poster == "" {
		poster = "Unknown"
	}
	location := l.Location
	if location == "" {
		location = "Location not stated"
	}
	return models.DetailView{
		ListingID:   l.ID,
		Title:       l.Title,
		Meta:        fmt.Sprintf("%s • %s • %s", poster, location, PriceLabel(l.Price)),
		Description: l.Description,
	}
}

func (c *Controller) openDetail(ctx context.Context, id string) (models.DetailView, error) {
	l, err := c.jobs.Find(ctx, id)
	if err != nil {
		return models.DetailView{}, err
	}
	c.detailID = l.ID
	return detailOf(*l), nil
}

// ViewListing opens the detail view. An unknown id leaves it unchanged.
func (c *Controller) ViewListing(ctx context.Context, id string) (models.DetailView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.openDetail(ctx, id)
	if err != nil {
		return v, c.fail(err, "Job not found")
	}
	return v, nil
}

// Detail returns the open detail view, if any.
func (c *Controller) Detail(ctx context.Context) (models.DetailView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detailID == "" {
		return models.DetailView{}, false
	}
	l, err := c.jobs.Find(ctx, c.detailID)
	if err != nil {
		c.detailID = ""
		return models.DetailView{}, false
	}
	return detailOf(*l), true
}

func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detailID = ""
}

// OpenApply closes the detail view and, for a signed-in user, opens the
// apply form for the listing that was shown.
func (c *Controller) OpenApply(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.detailID
	c.detailID = ""

	if c.revalidate(ctx) {
		return c.fail(common.ErrInvalidSession, noticeSessionExpired)
	}
	if c.session == nil {
		return c.fail(common.ErrNotSignedIn, "Please sign in to apply")
	}
	if id == "" {
		return c.fail(common.ErrNotFound, "Open a job first")
	}
	c.applyID = id
	return nil
}

// ApplyTarget returns the listing id of the open apply form.
func (c *Controller) ApplyTarget() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyID, c.applyID != ""
}

func (c *Controller) CloseApply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyID = ""
}

// SubmitApply stores an application and closes the form. On a validation
// error the form stays open.
func (c *Controller) SubmitApply(ctx context.Context, message, contact string) (models.Application, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.applyID == "" {
		return models.Application{}, c.fail(common.ErrNotFound, "Open a job and choose apply first")
	}
	if c.revalidate(ctx) {
		return models.Application{}, c.fail(common.ErrInvalidSession, noticeSessionExpired)
	}

	a, err := c.apps.Apply(ctx, c.session, c.applyID, message, contact)
	switch {
	case errors.Is(err, common.ErrValidationIncomplete):
		return a, c.fail(err, "Write a short message")
	case errors.Is(err, common.ErrNotSignedIn):
		c.applyID = ""
		return a, c.fail(err, "Please sign in to apply")
	case errors.Is(err, common.ErrNotFound):
		c.applyID = ""
		return a, c.fail(err, "Job not found")
	case err != nil:
		c.log.Error(ctx, "apply failed", "err", err)
		return a, c.fail(err, "Could not send the application, please try again")
	}

	contactLabel := a.Contact
	if contactLabel == "" {
		contactLabel = "not provided"
	}
	c.applyID = ""
	c.notice = "Application sent. Contact: " + contactLabel
	return a, nil
}

// Applications returns the applications received for the open listing.
// Only its poster may read them.
func (c *Controller) Applications(ctx context.Context) ([]models.Application, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.revalidate(ctx) {
		return nil, c.fail(common.ErrInvalidSession, noticeSessionExpired)
	}
	if c.session == nil {
		return nil, c.fail(common.ErrNotSignedIn, "Please sign in to see applications")
	}
	if c.detailID == "" {
		return nil, c.fail(common.ErrNotFound, "Open a job first")
	}
	l, err := c.jobs.Find(ctx, c.detailID)
	if err != nil {
		c.detailID = ""
		return nil, c.fail(err, "Job not found")
	}
	if !c.jobs.IsOwner(c.session, *l) {
		return nil, c.fail(common.ErrNotOwner, "Only the poster can see applications")
	}

	list := c.apps.ForListing(ctx, l.ID)
	switch len(list) {
	case 0:
		c.notice = "No applications yet"
	case 1:
		c.notice = "1 application"
	default:
		c.notice = humanize.Comma(int64(len(list))) + " applications"
	}
	return list, nil
}

// CategoriesInUse returns the categories of the stored listings.
func (c *Controller) CategoriesInUse(ctx context.Context) []string {
	return query.Categories(c.jobs.List(ctx))
}

// ShareLink returns a deep link to the open listing.
func (c *Controller) ShareLink() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detailID == "" {
		return "", c.fail(common.ErrNotFound, "Open a job first")
	}

	link, err := BuildDeepLink(c.baseURL, c.detailID)
	if err != nil {
		return "", c.fail(err, "Could not build a link")
	}
	c.notice = "Share this link: " + link
	return link, nil
}

// BuildDeepLink sets the job parameter on base, dropping any fragment.
func BuildDeepLink(base, id string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set(common.DeepLinkParam, id)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// ParseDeepLink extracts the listing id from a page URL or a bare query
// string such as "job=sj1".
func ParseDeepLink(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err == nil {
		if id := u.Query().Get(common.DeepLinkParam); id != "" {
			return id, true
		}
	}

	q, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return "", false
	}
	id := q.Get(common.DeepLinkParam)
	return id, id != ""
}

// ScheduleDeepLink opens listing id after delay without blocking the
// caller. A missing listing is ignored. A newer call replaces a pending one.
func (c *Controller) ScheduleDeepLink(ctx context.Context, id string, delay time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	ctx = context.WithoutCancel(ctx)
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		c.mu.Lock()
		if c.timer != t {
			c.mu.Unlock()
			return
		}
		c.timer = nil
		v, err := c.openDetail(ctx, id)
		cb := c.onDeepLink
		c.mu.Unlock()

		if err != nil {
			c.log.Debug(ctx, "deep link target not found", "listing", id)
			return
		}
		if cb != nil {
			cb(v)
		}
	})
	c.timer = t
}

// Stop cancels a pending deep-link transition.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

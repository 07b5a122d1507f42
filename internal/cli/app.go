package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/common"
	"github.com/cpower013/quickjobs-site-1/internal/controller"
	"github.com/cpower013/quickjobs-site-1/internal/models"
	"github.com/cpower013/quickjobs-site-1/internal/query"
	"golang.org/x/term"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App binds the controller to a terminal.
type App struct {
	ctrl   *controller.Controller
	reader *bufio.Reader
	// interactive is true when input comes from a terminal; passwords are
	// then read without echo.
	interactive bool

	mu  sync.Mutex
	out renderer

	// linkID is opened linkDelay after the first listing is drawn.
	linkID    string
	linkDelay time.Duration
}

func NewApp(ctrl *controller.Controller, in io.Reader, out io.Writer) *App {
	return &App{
		ctrl:        ctrl,
		reader:      bufio.NewReader(in),
		interactive: isTerminal(in),
		out:         renderer{out: out, styled: isTerminal(out)},
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run refreshes the session, prints the listings and enters the REPL.
// It returns when input ends or the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.ctrl.Stop()

	a.ctrl.RefreshSession(ctx)
	a.say("Welcome to QuickJobs (type 'help' for commands)")
	a.flush(nil)
	_ = a.List(ctx)

	if a.linkID != "" {
		a.ctrl.ScheduleDeepLink(ctx, a.linkID, a.linkDelay)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) say(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.out.info(msg)
}

// write and writeLine print REPL text without styling.
func (a *App) write(s string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprint(a.out.out, s)
}

func (a *App) writeLine(s string) {
	a.write(s + "\n")
}

func (a *App) isLoggedIn() bool {
	return a.ctrl.Session() != nil
}

func (a *App) status() string {
	if s := a.ctrl.Session(); s != nil {
		return s.Name
	}
	return ""
}

// flush prints the pending controller notice, as a warning when err is set.
func (a *App) flush(err error) error {
	msg := a.ctrl.TakeNotice()
	if msg == "" && err != nil {
		msg = err.Error()
	}
	if msg == "" {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.out.warn(msg)
	} else {
		a.out.info(msg)
	}
	return err
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out.out)
}

func (a *App) readPassword() (string, error) {
	if !a.interactive {
		return a.prompt("Enter password")
	}
	pw, err := getPassword(a.out.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) Signup(ctx context.Context) error {
	name, err := a.prompt("Your name")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}
	return a.flush(a.ctrl.SubmitSignup(ctx, name, email, password))
}

func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}
	return a.flush(a.ctrl.SubmitLogin(ctx, email, password))
}

func (a *App) Logout(ctx context.Context) error {
	return a.flush(a.ctrl.Logout(ctx))
}

func (a *App) WhoAmI(ctx context.Context) error {
	a.say(a.ctrl.Greeting())
	return nil
}

// List prints the header line and the listings for the current filter.
func (a *App) List(ctx context.Context) error {
	rows := a.ctrl.Render(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.out.header(a.ctrl.Greeting(), a.ctrl.Params())
	return a.out.rows(rows)
}

func categoryChoices() []string {
	return append([]string{common.CategoryAll}, models.Categories...)
}

// matchCategory resolves user input to a known category, ignoring case.
// Blank input means all categories.
func matchCategory(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return common.CategoryAll, nil
	}
	choices := categoryChoices()
	i := slices.IndexFunc(choices, func(c string) bool { return strings.EqualFold(c, s) })
	if i < 0 {
		return "", fmt.Errorf("unknown category %q, choose one of: %s", s, strings.Join(choices, ", "))
	}
	return choices[i], nil
}

// Filter sets the category filter. An empty category prints the choices
// and the categories that currently have jobs.
func (a *App) Filter(ctx context.Context, category string) error {
	if category == "" {
		a.say("Categories: " + strings.Join(categoryChoices(), ", "))
		if inUse := a.ctrl.CategoriesInUse(ctx); len(inUse) > 0 {
			a.say("With jobs now: " + strings.Join(inUse, ", "))
		}
		return nil
	}

	c, err := matchCategory(category)
	if err != nil {
		return a.flush(err)
	}

	p := a.ctrl.Params()
	p.Category = c
	a.ctrl.ChangeFilter(p)
	return a.List(ctx)
}

func (a *App) Sort(ctx context.Context, key string) error {
	k, err := query.ParseSortKey(key)
	if err != nil {
		return a.flush(fmt.Errorf("unknown sort key %q, use one of: %s", key, joinKeys(query.SortKeys)))
	}

	p := a.ctrl.Params()
	p.Sort = k
	a.ctrl.ChangeFilter(p)
	return a.List(ctx)
}

func joinKeys(keys []query.SortKey) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = string(k)
	}
	return strings.Join(s, ", ")
}

// Search sets the free-text filter; blank text clears it.
func (a *App) Search(ctx context.Context, text string) error {
	p := a.ctrl.Params()
	p.Text = strings.TrimSpace(text)
	a.ctrl.ChangeFilter(p)
	return a.List(ctx)
}

// ClearFilters resets category, text and sort to their defaults.
func (a *App) ClearFilters(ctx context.Context) error {
	a.ctrl.ChangeFilter(query.Params{})
	return a.List(ctx)
}

func (a *App) View(ctx context.Context, id string) error {
	v, err := a.ctrl.ViewListing(ctx, id)
	if err != nil {
		return a.flush(err)
	}
	a.ShowDetail(v)
	return nil
}

// ShowDetail prints an opened listing. It is also the deep-link callback
// and may run on a timer goroutine.
func (a *App) ShowDetail(v models.DetailView) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.out.detail(v)
	a.out.info("Type 'apply' to apply, 'share' for a link or 'close' to go back")
}

func (a *App) Close(ctx context.Context) error {
	a.ctrl.CloseDetail()
	a.ctrl.CloseApply()
	return nil
}

// Apply opens the apply form for the listing on screen and submits it.
// When the message is missing the form stays open and 'apply' retries it.
func (a *App) Apply(ctx context.Context) error {
	if _, open := a.ctrl.ApplyTarget(); !open {
		if err := a.ctrl.OpenApply(ctx); err != nil {
			return a.flush(err)
		}
	}

	message, err := a.prompt("Message to the poster")
	if err != nil {
		return err
	}
	contact, err := a.prompt("Contact phone or email (optional)")
	if err != nil {
		return err
	}

	_, err = a.ctrl.SubmitApply(ctx, message, contact)
	return a.flush(err)
}

// Post prompts for a new listing. A signed-out user is refused before any
// prompt is shown.
func (a *App) Post(ctx context.Context) error {
	if !a.isLoggedIn() {
		_, err := a.ctrl.SubmitPost(ctx, models.Draft{})
		return a.flush(err)
	}

	var d models.Draft
	var err error
	if d.Title, err = a.prompt("Title"); err != nil {
		return err
	}
	if d.Category, err = GetChoice(a.reader, "Category (number or name, blank for Other)", models.Categories, "Other", a.out.out); err != nil {
		return a.flush(err)
	}
	if d.Description, err = a.prompt("Description"); err != nil {
		return err
	}
	if d.PriceText, err = a.prompt("Price in € (blank if negotiable)"); err != nil {
		return err
	}
	if d.Location, err = a.prompt("Location"); err != nil {
		return err
	}

	if _, err := a.ctrl.SubmitPost(ctx, d); err != nil {
		return a.flush(err)
	}
	_ = a.flush(nil)
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.ctrl.DeleteListing(ctx, id); err != nil {
		return a.flush(err)
	}
	_ = a.flush(nil)
	return a.List(ctx)
}

// Applications prints the replies to the open listing for its poster.
func (a *App) Applications(ctx context.Context) error {
	list, err := a.ctrl.Applications(ctx)
	if err != nil {
		return a.flush(err)
	}
	_ = a.flush(nil)
	if len(list) == 0 {
		return nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.out.applications(list)
}

func (a *App) Share(ctx context.Context) error {
	_, err := a.ctrl.ShareLink()
	return a.flush(err)
}

// Show prints a single listing, for the one-shot "show" command.
func (a *App) Show(ctx context.Context, id string) error {
	v, err := a.ctrl.ViewListing(ctx, id)
	if err != nil {
		return a.flush(err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.out.detail(v)
	return nil
}

var errNoLinkTarget = errors.New("link does not name a job")

// OpenLink arranges for the listing named by a shared link to open delay
// after Run has drawn the first listing.
func (a *App) OpenLink(raw string, delay time.Duration) error {
	id, ok := controller.ParseDeepLink(raw)
	if !ok {
		return fmt.Errorf("%w: %s", errNoLinkTarget, raw)
	}
	a.linkID = id
	a.linkDelay = delay
	return nil
}

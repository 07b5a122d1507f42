package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls   []string
	prompts []string
	printed []string
}

func (f *fakeExec) write(s string)     { f.prompts = append(f.prompts, s) }
func (f *fakeExec) writeLine(s string) { f.printed = append(f.printed, s) }

func (f *fakeExec) record(name string, arg ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(arg, " ")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.loggedIn = true
	return f.record("signup")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami") }
func (f *fakeExec) List(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) Filter(ctx context.Context, c string) error { return f.record("filter", c) }
func (f *fakeExec) Sort(ctx context.Context, k string) error { return f.record("sort", k) }
func (f *fakeExec) Search(ctx context.Context, t string) error { return f.record("search", t) }
func (f *fakeExec) ClearFilters(ctx context.Context) error { return f.record("clear") }
func (f *fakeExec) View(ctx context.Context, id string) error { return f.record("view", id) }
func (f *fakeExec) Close(ctx context.Context) error { return f.record("close") }
func (f *fakeExec) Apply(ctx context.Context) error { return f.record("apply") }
func (f *fakeExec) Post(ctx context.Context) error { return f.record("post") }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete", id) }
func (f *fakeExec) Share(ctx context.Context) error { return f.record("share") }
func (f *fakeExec) Applications(ctx context.Context) error { return f.record("applications") }

func TestRunREPL_DispatchesCommandsWithArguments(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"l",
		"filter Yard & Garden",
		"sort   price_desc",
		"search lawn mower",
		"search",
		"clear",
		"view sj1",
		"share",
		"apply",
		"apps",
		"close",
		"post",
		"delete j1",
		"whoami",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login",
		"list",
		"filter Yard & Garden",
		"sort price_desc",
		"search lawn mower",
		"search",
		"clear",
		"view sj1",
		"share",
		"apply",
		"applications",
		"close",
		"post",
		"delete j1",
		"whoami",
		"logout",
	}, exec.calls)

	assert.Equal(t, []string{helpSignedOut, helpSignedIn, "Bye!"}, exec.printed)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	input := "view\ndelete\nfrobnicate\n"
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "Mary" }, bufio.NewReader(strings.NewReader(input)))

	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{"Usage: view <id>", "Usage: delete <id>", "Unknown command: frobnicate"}, exec.printed)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	status := ""
	exec := &fakeExec{}
	input := "signup\nquit\n"
	runREPL(context.Background(), exec, func() string {
		if exec.loggedIn {
			status = "Mary"
		}
		return status
	}, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"qj> ", "qj (Mary)> "}, exec.prompts)
}

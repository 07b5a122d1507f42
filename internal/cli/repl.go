package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	write(s string)
	writeLine(s string)
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Filter(ctx context.Context, category string) error
	Sort(ctx context.Context, key string) error
	Search(ctx context.Context, text string) error
	ClearFilters(ctx context.Context) error
	View(ctx context.Context, id string) error
	Close(ctx context.Context) error
	Apply(ctx context.Context) error
	Post(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context) error
	Applications(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: (l)ist, filter [category], sort <key>, search [text], clear, view <id>, close, share, signup, login, whoami, exit"
	helpSignedIn  = "Available commands: (l)ist, filter [category], sort <key>, search [text], clear, view <id>, close, share, apply, applications, post, delete <id>, logout, whoami, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// The first token is the command; the rest of the line is its argument, so
// "filter Yard & Garden" and "search lawn mower" work without quoting.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are not printed here: handlers report
// their own failures through the controller notice.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			a.write(fmt.Sprintf("qj (%s)> ", s))
		} else {
			a.write("qj> ")
		}

		line, err := readLine(reader)
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch strings.ToLower(cmd) {
		case "help":
			if a.isLoggedIn() {
				a.writeLine(helpSignedIn)
			} else {
				a.writeLine(helpSignedOut)
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "filter", "category":
			_ = a.Filter(ctx, arg)

		case "sort":
			_ = a.Sort(ctx, arg)

		case "search":
			_ = a.Search(ctx, arg)

		case "clear":
			_ = a.ClearFilters(ctx)

		case "view", "show":
			if arg == "" {
				a.writeLine("Usage: view <id>")
				continue
			}
			_ = a.View(ctx, arg)

		case "close":
			_ = a.Close(ctx)

		case "apply":
			_ = a.Apply(ctx)

		case "post":
			_ = a.Post(ctx)

		case "delete":
			if arg == "" {
				a.writeLine("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, arg)

		case "share":
			_ = a.Share(ctx)

		case "applications", "apps":
			_ = a.Applications(ctx)

		case "exit", "quit":
			a.writeLine("Bye!")
			return

		default:
			a.writeLine("Unknown command: " + cmd)
		}
	}
}

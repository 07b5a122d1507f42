package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cpower013/quickjobs-site-1/internal/buildinfo"
	"github.com/cpower013/quickjobs-site-1/internal/query"
	"github.com/spf13/cobra"
)

// DataStore is the storage surface behind the export and reset commands.
type DataStore interface {
	Export(ctx context.Context) (map[string]json.RawMessage, error)
	Reset(ctx context.Context) error
}

// RootOptions holds flags of the interactive root command.
type RootOptions struct {
	Link          string
	DeepLinkDelay time.Duration
}

// NewRootCommand creates the quickjobs command tree around app.
// Storage and session flags are read by the config package and must be
// stripped from the arguments before they reach cobra.
func NewRootCommand(app *App, data DataStore, deepLinkDelay time.Duration) *cobra.Command {
	opts := &RootOptions{DeepLinkDelay: deepLinkDelay}

	cmd := &cobra.Command{
		Use:   "quickjobs",
		Short: "QuickJobs - local odd jobs board",
		Long: `Browse, post and apply for small local jobs.

Without a subcommand an interactive session starts. A shared link opens
the job it names shortly after start-up:

  quickjobs --link "http://localhost:8080/jobs.html?job=sj1"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Link != "" {
				if err := app.OpenLink(opts.Link, opts.DeepLinkDelay); err != nil {
					return err
				}
			}
			app.Run(cmd.Context())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Link, "link", "", "shared job link or query string (e.g. job=sj1)")

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newShowCommand(app))
	cmd.AddCommand(newVersionCommand())
	cmd.AddCommand(newExportCommand(data))
	cmd.AddCommand(newResetCommand(app, data))

	return cmd
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	Text     string
	Category string
	Sort     string
}

func newListCommand(app *App) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print job listings",
		Long: `Print job listings, newest first unless --sort says otherwise.

Example:
  quickjobs list --category Plumbing
  quickjobs list -q lawn --sort price_asc`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sort, err := query.ParseSortKey(opts.Sort)
			if err != nil {
				return err
			}
			category, err := matchCategory(opts.Category)
			if err != nil {
				return err
			}

			app.ctrl.RefreshSession(ctx)
			app.ctrl.ChangeFilter(query.Params{Text: opts.Text, Category: category, Sort: sort})
			return app.List(ctx)
		},
	}

	cmd.Flags().StringVarP(&opts.Text, "query", "q", "", "search text (title, description, poster)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "category filter (All shows everything)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "newest", "sort order (newest|oldest|price_asc|price_desc)")

	return cmd
}

func newShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:          "show <id>",
		Short:        "Print one job",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Show(cmd.Context(), args[0])
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func newExportCommand(data DataStore) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all stored accounts, jobs and applications as JSON",
		Long: `Print every stored document as one JSON object keyed by storage key.

Example:
  quickjobs export > backup.json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := data.Export(cmd.Context())
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(docs, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	Yes bool
}

func newResetCommand(app *App, data DataStore) *cobra.Command {
	opts := &ResetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all accounts, jobs and applications",
		Long: `Delete everything in the store. The sample jobs come back on the next
start.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				answer, err := app.prompt("Type 'yes' to delete all accounts, jobs and applications")
				if err != nil {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
					app.say("Reset cancelled")
					return nil
				}
			}

			if err := data.Reset(cmd.Context()); err != nil {
				return err
			}
			app.say("Store cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "do not ask for confirmation")

	return cmd
}

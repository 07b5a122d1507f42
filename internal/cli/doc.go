// Package cli is the terminal front end of QuickJobs.
//
// It forwards user events to the listings controller and prints what the
// controller returns. Two entry points exist:
//   - one-shot subcommands ("list", "show <id>") that print and exit
//   - an interactive REPL started by the root command, which also accepts
//     a --link flag to open a shared job after a short delay
//
// On a terminal the listings are drawn with pterm tables and coloured
// notices; otherwise plain text is printed (see FormatRows and FormatDetail).
package cli

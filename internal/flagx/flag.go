// Package flagx lets several components share os.Args: each one picks out
// only the flags it owns and parses those with its own flag.FlagSet.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the allowed flags (and their values) from args.
//
// Flag names are given without dashes ("c", "store"); both "-name" and
// "--name" spellings match, with the value either in the same argument
// ("--store=redis") or in the following one ("-s redis"). A following
// argument that starts with "-" is never consumed as a value.
func FilterArgs(args []string, allowed []string) []string {
	kept, _ := split(args, allowed)
	return kept
}

// StripArgs is the complement of FilterArgs: it returns args with the
// named flags and their values removed, keeping positional arguments.
func StripArgs(args []string, names []string) []string {
	_, rest := split(args, names)
	return rest
}

func split(args []string, names []string) (matched, rest []string) {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.TrimLeft(name, "-")] = struct{}{}
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			rest = append(rest, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if _, ok := set[name]; !ok {
			rest = append(rest, arg)
			continue
		}

		matched = append(matched, arg)
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			matched = append(matched, args[i+1])
			i++
		}
	}
	return matched, rest
}

// ConfigFileFlag returns the value of -c / -config in args, or "" when the
// flag is absent. The last occurrence wins.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"c", "config"}))

	return path
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/manifest"
	"github.com/ardnew/pirate/opts"
	"github.com/ardnew/pirate/usage"
)

// helpName is the canonical name of the implicit help option.
const helpName = "help"

// Match matches arguments against the option specs and prints the result.
type Match struct {
	Format string   `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"f"`
	Args   []string `arg:""         help:"Arguments to match (default: manifest args)." optional:"" passthrough:""`
}

// Run executes the match command.
//
// When the arguments request help, usage is printed instead. When matching
// fails, the error and usage are printed to stderr and the process exits
// with status 1.
func (c *Match) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	args := c.Args
	if len(args) == 0 {
		args = m.Args
	}

	matches, err := r.Match(ctx, args)
	if err != nil {
		return fail(ctx, m, r, err)
	}

	out := streamsFrom(ctx).Out

	if matches.Has(helpName) {
		return usage.Write(out, m.Program, r)
	}

	return writeFormatted(out, c.Format, matches, func(w io.Writer) error {
		return writeMatches(w, matches)
	})
}

// writeMatches prints one "name=value" line per match.
func writeMatches(w io.Writer, matches *opts.Matches) error {
	for name, value := range matches.All() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, value); err != nil {
			return err
		}
	}

	return nil
}

// fail reports a matching error with suggestions and usage on stderr, then
// exits with status 1. Without a kong context, the error is returned.
func fail(
	ctx context.Context,
	m *manifest.Manifest,
	r *opts.Registry,
	err error,
) error {
	w := streamsFrom(ctx).Err

	log.DebugContext(ctx, "match failed", slog.Any("error", err))

	fmt.Fprintf(w, "%s: %v\n", m.Program, err)

	var oe *opts.Error
	if errors.As(err, &oe) && oe.Kind() == opts.KindInvalidArgument {
		if hint := didYouMean(usage.Suggest(oe.Offender(), r)); hint != "" {
			fmt.Fprintln(w, hint)
		}
	}

	fmt.Fprintln(w)

	if uerr := usage.Write(w, m.Program, r); uerr != nil {
		return uerr
	}

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return err
	}

	ktx.Exit(1)

	return nil
}

// didYouMean phrases suggested long option names as a hint.
func didYouMean(names []string) string {
	if len(names) == 0 {
		return ""
	}

	flags := make([]string, len(names))
	for i, name := range names {
		flags[i] = "--" + name
	}

	if len(flags) == 1 {
		return "Did you mean " + flags[0] + "?"
	}

	return "Did you mean one of " + strings.Join(flags, ", ") + "?"
}

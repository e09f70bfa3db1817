package opts

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// endOfOptions ends option scanning; every later token is positional.
const endOfOptions = "--"

// Match consumes args, the process arguments without the program name,
// against r.
//
// A token beginning with "--" names one long option. Any other token
// beginning with "-" names one short option per character, so "-xz" is
// "-x -z". An option taking a value consumes the next token, whatever it
// looks like. Every other token fills the next positional in declaration
// order. The bare token "-" is positional, and every token after a bare
// "--" is positional.
//
// Match fails with [ErrInvalidArgument] for an undeclared option name,
// [ErrMissingArgument] for an option without its value or a positional
// never supplied, and [ErrExtraArgument] for a positional token with no
// positional left to fill. No Matches are returned on failure.
//
// Match resets the positional queue before scanning, so a Registry may be
// matched repeatedly, including after a failed match.
func (r *Registry) Match(ctx context.Context, args []string) (*Matches, error) {
	r.Reset()

	m := newMatches()
	options := true

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if options && arg == endOfOptions {
			options = false

			continue
		}

		if !options || !isOption(arg) {
			d, ok := r.NextPositional()
			if !ok {
				return nil, ErrExtraArgument.For(arg)
			}

			m.set(d.Name(), arg)

			continue
		}

		for _, name := range candidates(arg) {
			d, ok := r.Get(name)
			if !ok {
				return nil, ErrInvalidArgument.For(name).
					With(slog.String("token", arg))
			}

			if !d.TakesValue {
				m.set(d.Name(), "")

				continue
			}

			if i+1 >= len(args) {
				return nil, ErrMissingArgument.For(name).
					With(slog.String("token", arg))
			}

			i++
			m.set(d.Name(), args[i])
		}
	}

	if d, ok := r.NextPositional(); ok {
		return nil, ErrMissingArgument.For(d.Name())
	}

	r.logger.TraceContext(ctx, "match complete",
		slog.Int("args", len(args)),
		slog.Int("matches", m.Len()),
	)

	return m, nil
}

// Parse builds a [Registry] from specs and matches args against it.
func Parse(
	ctx context.Context,
	specs []string,
	args []string,
	opts ...Option,
) (*Matches, error) {
	r, err := Build(ctx, specs, opts...)
	if err != nil {
		return nil, err
	}

	return r.Match(ctx, args)
}

// isOption reports whether arg names one or more options.
func isOption(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

// candidates splits an option token into the names it invokes.
func candidates(arg string) []string {
	if long, ok := strings.CutPrefix(arg, "--"); ok {
		return []string{long}
	}

	short := arg[1:]
	names := make([]string, 0, utf8.RuneCountInString(short))

	for _, c := range short {
		names = append(names, string(c))
	}

	return names
}

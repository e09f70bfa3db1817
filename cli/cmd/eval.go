package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/opts"
)

// Eval matches arguments against the option specs and evaluates an
// expression over the result.
//
// Every option and positional is bound by its canonical name: a string when
// matched and nil otherwise. Names that are not identifiers are reachable
// through $env, e.g. $env["dry-run"]. The function has(name) reports whether
// an option was matched, so no option or positional may be named has.
type Eval struct {
	Expr string   `arg:"" help:"Expression to evaluate."                        name:"expr"`
	Args []string `arg:"" help:"Arguments to match (default: manifest args)." name:"args" optional:"" passthrough:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	args := e.Args
	if len(args) == 0 {
		args = m.Args
	}

	matches, err := r.Match(ctx, args)
	if err != nil {
		return fail(ctx, m, r, err)
	}

	result, err := evaluate(e.Expr, r, matches)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "evaluated expression",
		slog.String("expr", e.Expr),
		slog.Any("result", result),
	)

	_, err = fmt.Fprintln(streamsFrom(ctx).Out, result)

	return err
}

// builtinHas is the expression function reporting a matched name.
const builtinHas = "has"

// environment binds the descriptors of r to their matched values.
func environment(r *opts.Registry, matches *opts.Matches) (map[string]any, error) {
	env := map[string]any{}

	for _, d := range r.Descriptors() {
		if d.Header {
			continue
		}

		if d.Name() == builtinHas {
			return nil, ErrEvalReserved.With(slog.String("name", d.Name()))
		}

		env[d.Name()] = nil
	}

	for name, value := range matches.All() {
		env[name] = value
	}

	env[builtinHas] = func(name string) bool { return matches.Has(name) }

	return env, nil
}

// evaluate compiles and runs source against the matches.
func evaluate(source string, r *opts.Registry, matches *opts.Matches) (any, error) {
	env, err := environment(r, matches)
	if err != nil {
		return nil, err
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrEvalCompile.Wrap(err).
			With(slog.String("expr", source))
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return nil, ErrEvalRun.Wrap(err).
			With(slog.String("expr", source))
	}

	return result, nil
}

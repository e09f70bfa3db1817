package cmd

import (
	"context"

	"github.com/ardnew/pirate/cli/cmd/repl"
	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/opts"
)

// Repl starts an interactive session for matching argument lines against
// the option specs.
type Repl struct{}

// Run executes the repl command.
func (Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	streams := streamsFrom(ctx)

	return repl.Run(ctx, repl.Config{
		Program:  m.Program,
		Registry: r,
		Eval: func(source string, matches *opts.Matches) (any, error) {
			return evaluate(source, r, matches)
		},
		CacheDir: cacheDir,
		Logger:   log.Default(),
		Input:    streams.In,
		Output:   streams.Out,
	})
}

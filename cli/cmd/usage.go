package cmd

import (
	"context"

	"github.com/ardnew/pirate/usage"
)

// Usage renders the help text described by the option specs.
type Usage struct {
	Style bool `default:"true" help:"Style output when writing to a terminal." negatable:""`
}

// Run executes the usage command.
func (u *Usage) Run(ctx context.Context) error {
	m, r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	return usage.Write(streamsFrom(ctx).Out, m.Program, r, usage.WithStyle(u.Style))
}

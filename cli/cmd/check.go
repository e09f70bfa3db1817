package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/pirate/opts"
	"github.com/ardnew/pirate/usage"
)

// Check compiles the option specs and lists the resulting descriptors.
type Check struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"f"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	_, r, err := loadRegistry(ctx)
	if err != nil {
		return err
	}

	return writeFormatted(streamsFrom(ctx).Out, c.Format, r.Descriptors(),
		func(w io.Writer) error {
			return writeDescriptors(w, r)
		},
	)
}

// kind names the role of a descriptor.
func kind(d opts.Descriptor) string {
	switch {
	case d.Header:
		return "header"
	case d.Positional:
		return "positional"
	case d.TakesValue:
		return "value"
	default:
		return "flag"
	}
}

// writeDescriptors lists every descriptor of r, one per line.
func writeDescriptors(w io.Writer, r *opts.Registry) error {
	width := usage.Width(r)

	for _, d := range r.Descriptors() {
		line := fmt.Sprintf("%-10s  %-*s  %s", kind(d), width, d.Flags(), d.Description)

		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	return nil
}

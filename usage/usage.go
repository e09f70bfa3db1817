package usage

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/pirate/opts"
)

const (
	indent = "  "
	gutter = "  "
)

type config struct {
	style bool
}

// Option configures rendering.
type Option func(*config)

// WithStyle controls whether output is styled. Styling is also dropped
// when the writer is not a terminal.
func WithStyle(enable bool) Option {
	return func(c *config) {
		c.style = enable
	}
}

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	flags  lipgloss.Style
	desc   lipgloss.Style
}

func makeStyles(w io.Writer, enable bool) styles {
	if !enable {
		plain := lipgloss.NewStyle()

		return styles{plain, plain, plain, plain}
	}

	r := lipgloss.NewRenderer(w)

	return styles{
		title:  r.NewStyle().Bold(true),
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		flags:  r.NewStyle().Foreground(lipgloss.Color("6")),
		desc:   r.NewStyle(),
	}
}

// Synopsis returns the one-line invocation summary of program.
func Synopsis(program string, r *opts.Registry) string {
	var sb strings.Builder

	sb.WriteString(program)
	sb.WriteString(" [OPTIONS]")

	for _, d := range r.Positionals() {
		sb.WriteString(" <" + d.Name() + ">")
	}

	return sb.String()
}

// Width returns the display width of the widest invocation column among
// the descriptors of r.
func Width(r *opts.Registry) int {
	width := 0

	for _, d := range r.Descriptors() {
		width = max(width, lipgloss.Width(d.Flags()))
	}

	return width
}

// Write renders the usage text of program to w.
func Write(w io.Writer, program string, r *opts.Registry, options ...Option) error {
	cfg := config{style: true}
	for _, opt := range options {
		opt(&cfg)
	}

	st := makeStyles(w, cfg.style)
	width := Width(r)

	var sb strings.Builder

	sb.WriteString(st.title.Render("Usage:"))
	sb.WriteString(" " + Synopsis(program, r) + "\n\n")

	for i, d := range r.Descriptors() {
		if d.Header {
			if i > 0 {
				sb.WriteByte('\n')
			}

			sb.WriteString(st.header.Render(d.Description + ":"))
			sb.WriteByte('\n')

			continue
		}

		flags := d.Flags()

		sb.WriteString(indent)
		sb.WriteString(st.flags.Render(flags))

		if d.Description != "" {
			sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(flags)))
			sb.WriteString(gutter)
			sb.WriteString(st.desc.Render(d.Description))
		}

		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

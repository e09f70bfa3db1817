// Package manifest loads the spec strings of a program from a YAML
// document or a plain text file.
//
// A YAML manifest is a mapping with a "specs" sequence. Quote each spec,
// since a trailing ':' would otherwise begin a mapping:
//
//	program: adder
//	description: Add two numbers
//	specs:
//	  - "a/addend(The number to add):"
//	  - "(Required)"
//	  - ":augend(The number to add to)"
//	args: -a 2 3
//
// Any other input is read as plain text: one spec per line, ignoring blank
// lines and lines beginning with '#'.
package manifest

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/shlex"

	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/opts"
	"github.com/ardnew/pirate/pkg"
)

// Manifest describes a program's options.
type Manifest struct {
	Program     string   `json:"program,omitempty"     yaml:"program,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Specs       []string `json:"specs"                 yaml:"specs"`
	// Args is a default invocation, split into words like a shell would.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// document is the YAML form of a Manifest.
type document struct {
	Program     string   `yaml:"program"`
	Description string   `yaml:"description"`
	Specs       []string `yaml:"specs"`
	Args        string   `yaml:"args"`
}

// Load reads a manifest from r.
func Load(ctx context.Context, r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	if isDocument(data) {
		m, err := decode(data)
		if err != nil {
			return nil, err
		}

		log.TraceContext(ctx, "manifest decoded",
			slog.String("program", m.Program),
			slog.Int("specs", len(m.Specs)),
		)

		return m, nil
	}

	specs, err := Lines(data)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Specs: specs}

	log.TraceContext(ctx, "manifest read as text", slog.Int("specs", len(m.Specs)))

	return m, nil
}

// isDocument reports whether data is a YAML mapping with a "specs" key.
func isDocument(data []byte) bool {
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false
	}

	_, ok := probe["specs"]

	return ok
}

func decode(data []byte) (*Manifest, error) {
	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, pkg.ErrDecodeManifest.Wrap(err)
	}

	args, err := Split(doc.Args)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		Program:     doc.Program,
		Description: doc.Description,
		Specs:       doc.Specs,
		Args:        args,
	}, nil
}

// Lines returns the spec strings in data, one per line. Surrounding
// whitespace is trimmed. Blank lines and lines beginning with '#' are
// skipped. A line too long for the scanner fails with [pkg.ErrReadInput].
func Lines(data []byte) ([]string, error) {
	var specs []string

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		specs = append(specs, line)
	}

	if err := sc.Err(); err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}

	return specs, nil
}

// Split splits s into words using shell quoting rules.
func Split(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	words, err := shlex.Split(s)
	if err != nil {
		return nil, pkg.ErrSplitArgs.Wrap(err)
	}

	return words, nil
}

// Merge appends the specs and args of others to m. The program name and
// description of m are kept unless empty.
func (m *Manifest) Merge(others ...*Manifest) *Manifest {
	for _, o := range others {
		if o == nil {
			continue
		}

		if m.Program == "" {
			m.Program = o.Program
		}

		if m.Description == "" {
			m.Description = o.Description
		}

		m.Specs = append(m.Specs, o.Specs...)
		m.Args = append(m.Args, o.Args...)
	}

	return m
}

// Build compiles the specs of m into an [opts.Registry].
func Build(ctx context.Context, m *Manifest, options ...opts.Option) (*opts.Registry, error) {
	var specs []string
	if m != nil {
		specs = m.Specs
	}

	return opts.Build(ctx, specs, options...)
}

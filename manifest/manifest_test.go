package manifest

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/pirate/opts"
	"github.com/ardnew/pirate/pkg"
)

func TestLoad_YAML(t *testing.T) {
	src := `
program: adder
description: Add two numbers
specs:
  - "a/addend(The number to add):"
  - "(Required)"
  - ":augend(The number to add to)"
args: '-a 2 "3"'
`

	m, err := Load(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &Manifest{
		Program:     "adder",
		Description: "Add two numbers",
		Specs: []string{
			"a/addend(The number to add):",
			"(Required)",
			":augend(The number to add to)",
		},
		Args: []string{"-a", "2", "3"},
	}

	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAMLUnknownField(t *testing.T) {
	src := "specs: [\"v\"]\nflags: 3\n"

	_, err := Load(context.Background(), strings.NewReader(src))
	if !errors.Is(err, pkg.ErrDecodeManifest[0]) {
		t.Fatalf("Load error = %v, want invalid manifest", err)
	}
}

func TestLoad_YAMLBadArgs(t *testing.T) {
	src := "specs: [\"v\"]\nargs: '-v \"unterminated'\n"

	_, err := Load(context.Background(), strings.NewReader(src))
	if !errors.Is(err, pkg.ErrSplitArgs[0]) {
		t.Fatalf("Load error = %v, want split error", err)
	}
}

func TestLoad_Text(t *testing.T) {
	src := `# adder options
a/addend(The number to add):

(Required)
   :augend(The number to add to)
`

	m, err := Load(context.Background(), strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{
		"a/addend(The number to add):",
		"(Required)",
		":augend(The number to add to)",
	}

	if diff := cmp.Diff(want, m.Specs); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TextLooksLikeYAML(t *testing.T) {
	// A lone "name:" line is a YAML mapping, but has no specs key.
	m, err := Load(context.Background(), strings.NewReader("verbose:\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if diff := cmp.Diff([]string{"verbose:"}, m.Specs); diff != "" {
		t.Errorf("specs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_TextLineTooLong(t *testing.T) {
	src := "v/verbose\n" + strings.Repeat("x", bufio.MaxScanTokenSize+1) + "\n"

	_, err := Load(context.Background(), strings.NewReader(src))
	if !errors.Is(err, pkg.ErrReadInput[0]) {
		t.Fatalf("Load error = %v, want read error", err)
	}

	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("Load error = %v, want %v in chain", err, bufio.ErrTooLong)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"-a 2 3", []string{"-a", "2", "3"}},
		{`-o "out file" 'x y'`, []string{"-o", "out file", "x y"}},
		{`a\ b`, []string{"a b"}},
	}

	for _, tt := range tests {
		got, err := Split(tt.in)
		if err != nil {
			t.Fatalf("Split(%q): %v", tt.in, err)
		}

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestMerge(t *testing.T) {
	m := (&Manifest{Specs: []string{"a"}}).Merge(
		&Manifest{Program: "p", Specs: []string{"b"}, Args: []string{"-a"}},
		nil,
		&Manifest{Program: "q", Description: "d", Specs: []string{":c"}},
	)

	want := &Manifest{
		Program:     "p",
		Description: "d",
		Specs:       []string{"a", "b", ":c"},
		Args:        []string{"-a"},
	}

	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	r, err := Build(ctx, &Manifest{Specs: []string{"v/verbose", ":file"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !r.Contains("verbose") || r.RemainingPositionals() != 1 {
		t.Errorf("unexpected registry %+v", r.Descriptors())
	}

	if _, err := Build(ctx, &Manifest{Specs: []string{":x:"}}); !errors.Is(err, opts.ErrOptionFormat) {
		t.Errorf("Build error = %v, want OptionFormat", err)
	}

	r, err = Build(ctx, nil)
	if err != nil || !r.Contains("help") {
		t.Errorf("Build(nil) = %v, %v", r, err)
	}
}

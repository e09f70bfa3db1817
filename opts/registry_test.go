package opts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustBuild(t *testing.T, specs ...string) *Registry {
	t.Helper()

	r, err := Build(context.Background(), specs)
	if err != nil {
		t.Fatalf("Build(%q): %v", specs, err)
	}

	return r
}

func TestBuild_DeclarationOrder(t *testing.T) {
	r := mustBuild(t,
		"(General)",
		"v/verbose(Print more)",
		"(Required)",
		":input",
		"o/output:",
	)

	want := []Descriptor{
		{Description: "General", Header: true},
		{Short: "v", Long: "verbose", Description: "Print more"},
		{Description: "Required", Header: true},
		{Long: "input", Positional: true},
		{Short: "o", Long: "output", TakesValue: true},
		helpDescriptor,
	}

	if diff := cmp.Diff(want, r.Descriptors()); diff != "" {
		t.Errorf("Descriptors() mismatch (-want +got):\n%s", diff)
	}

	wantNames := []string{"v", "verbose", "o", "output", "h", "help"}
	if diff := cmp.Diff(wantNames, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Index(t *testing.T) {
	r := mustBuild(t, "a/addend:", ":augend", "(Header)")

	short, ok := r.Get("a")
	if !ok {
		t.Fatal("short name a not indexed")
	}

	long, ok := r.Get("addend")
	if !ok {
		t.Fatal("long name addend not indexed")
	}

	if diff := cmp.Diff(short, long); diff != "" {
		t.Errorf("short and long names disagree:\n%s", diff)
	}

	for _, name := range []string{"augend", "Header", ""} {
		if r.Contains(name) {
			t.Errorf("Contains(%q) = true, want false", name)
		}
	}

	for _, name := range []string{"h", "help"} {
		if !r.Contains(name) {
			t.Errorf("implicit %q not indexed", name)
		}
	}
}

func TestBuild_EmptySpecs(t *testing.T) {
	r := mustBuild(t)

	if diff := cmp.Diff([]Descriptor{helpDescriptor}, r.Descriptors()); diff != "" {
		t.Errorf("Descriptors() mismatch (-want +got):\n%s", diff)
	}

	if n := r.RemainingPositionals(); n != 0 {
		t.Errorf("RemainingPositionals() = %d, want 0", n)
	}
}

func TestBuild_FailFast(t *testing.T) {
	_, err := Build(context.Background(), []string{"a", ":x:", "b/b/b"})

	var oe *Error
	if !errors.As(err, &oe) {
		t.Fatalf("Build error = %v, want *Error", err)
	}

	if oe.Kind() != KindOptionFormat || oe.Offender() != ":x:" {
		t.Errorf("Build error = %v, want OptionFormat for first bad spec", err)
	}
}

func TestBuild_DuplicateOption(t *testing.T) {
	tests := []struct {
		name  string
		specs []string
		want  string
	}{
		{"implicit short help", []string{"h"}, "h"},
		{"implicit long help", []string{"x/help"}, "help"},
		{"short reused", []string{"v", "v/verbose"}, "v"},
		{"long reused", []string{"a/all", "b/all"}, "all"},
		{"positional and option", []string{":file", "f/file:"}, "file"},
		{"positionals", []string{":src", ":src"}, "src"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.specs)
			if !errors.Is(err, ErrDuplicateOption) {
				t.Fatalf("Build(%q) error = %v, want DuplicateOption", tt.specs, err)
			}

			var oe *Error
			if errors.As(err, &oe) && oe.Offender() != tt.want {
				t.Errorf("offender = %q, want %q", oe.Offender(), tt.want)
			}
		})
	}
}

func TestBuild_DuplicateHeadersAllowed(t *testing.T) {
	r := mustBuild(t, "(Options)", "a", "(Options)", "b")

	if got := len(r.Descriptors()); got != 5 {
		t.Errorf("len(Descriptors()) = %d, want 5", got)
	}
}

func TestRegistry_PositionalQueue(t *testing.T) {
	r := mustBuild(t, ":first", "x", ":second")

	if n := r.RemainingPositionals(); n != 2 {
		t.Fatalf("RemainingPositionals() = %d, want 2", n)
	}

	var got []string

	for {
		d, ok := r.NextPositional()
		if !ok {
			break
		}

		got = append(got, d.Name())
	}

	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Errorf("queue order mismatch (-want +got):\n%s", diff)
	}

	if n := r.RemainingPositionals(); n != 0 {
		t.Errorf("drained RemainingPositionals() = %d, want 0", n)
	}

	r.Reset()

	if n := r.RemainingPositionals(); n != 2 {
		t.Errorf("reset RemainingPositionals() = %d, want 2", n)
	}

	if got := len(r.Positionals()); got != 2 {
		t.Errorf("len(Positionals()) = %d, want 2", got)
	}
}

func TestRegistry_Clone(t *testing.T) {
	r := mustBuild(t, ":first", ":second")
	r.NextPositional()

	c := r.Clone()

	if n := c.RemainingPositionals(); n != 2 {
		t.Errorf("clone RemainingPositionals() = %d, want 2", n)
	}

	c.NextPositional()
	c.NextPositional()

	if n := r.RemainingPositionals(); n != 1 {
		t.Errorf("original RemainingPositionals() = %d, want 1", n)
	}

	if diff := cmp.Diff(r.Descriptors(), c.Descriptors()); diff != "" {
		t.Errorf("clone descriptors differ:\n%s", diff)
	}
}

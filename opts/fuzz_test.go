package opts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzCompile checks that Compile never panics and that every accepted
// spec satisfies the descriptor invariants.
func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"a/addend:", "(Required)", ":augend", "b/boop", "n:", ":x:", ":",
		"", "x(a/b (c)", "ab/long", "/long", "é/été(accents)",
		"v/verbose(Be loud (very))", "x/y/z", "t/ti:me",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, spec string) {
		if !utf8.ValidString(spec) {
			t.Skip("invalid UTF-8")
		}

		d, err := Compile(spec)
		if err != nil {
			if !errors.Is(err, ErrOptionFormat) {
				t.Fatalf("Compile(%q) error kind = %v", spec, err)
			}

			return
		}

		if d.Positional && d.TakesValue {
			t.Errorf("Compile(%q) is both positional and takes value", spec)
		}

		if d.Header != (d.Short == "" && d.Long == "") {
			t.Errorf("Compile(%q) header flag disagrees with names: %+v", spec, d)
		}

		if utf8.RuneCountInString(d.Short) > 1 {
			t.Errorf("Compile(%q) short name %q longer than one rune", spec, d.Short)
		}

		for _, name := range []string{d.Short, d.Long} {
			if strings.ContainsAny(name, "/()") {
				t.Errorf("Compile(%q) name %q holds a delimiter", spec, name)
			}
		}
	})
}

// FuzzMatch checks that matching arbitrary arguments never panics and
// that failures never return matches.
func FuzzMatch(f *testing.F) {
	f.Add("-a 2 3")
	f.Add("--help")
	f.Add("-xyz -- -a")
	f.Add("one two three")
	f.Add("-a")

	r, err := Build(context.Background(),
		[]string{"a/addend:", "x", "y", "z/zed", ":augend"})
	if err != nil {
		f.Fatalf("Build: %v", err)
	}

	f.Fuzz(func(t *testing.T, line string) {
		args := strings.Fields(line)

		m, err := r.Match(context.Background(), args)
		if err != nil {
			if m != nil {
				t.Errorf("Match(%q) returned matches with error %v", args, err)
			}

			return
		}

		if !m.Has("augend") {
			t.Errorf("Match(%q) succeeded without required positional", args)
		}
	})
}

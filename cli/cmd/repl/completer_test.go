package repl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ardnew/pirate/opts"
)

func testRegistry(t *testing.T) *opts.Registry {
	t.Helper()

	r, err := opts.Build(context.Background(), []string{
		"a/addend(The number to add):",
		"(Required)",
		":augend(The number to add to)",
		"v/verbose(Print more)",
		"version(Print the version)",
	})
	if err != nil {
		t.Fatalf("opts.Build() error = %v", err)
	}

	return r
}

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"second_word", "-a --ver", 8, "--ver", 3, 8},
		{"mid_word", "--verbose", 4, "--verbose", 0, 9},
		{"at_start", "-v", 0, "-v", 0, 2},
		{"after_space", "-a ", 3, "", 3, 3},
		{"between_spaces", "-a  -b", 3, "", 3, 3},
		{"cursor_past_end", "abc", 10, "abc", 0, 3},
		{"negative_cursor", "abc", -1, "abc", 0, 3},
		{"empty", "", 0, "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestOptionCandidates(t *testing.T) {
	want := []string{
		"--addend", "-a",
		"--verbose", "-v",
		"--version",
		"--help", "-h",
	}

	if diff := cmp.Diff(want, optionCandidates(testRegistry(t))); diff != "" {
		t.Errorf("optionCandidates() mismatch (-want +got):\n%s", diff)
	}

	if got := optionCandidates(nil); got != nil {
		t.Errorf("optionCandidates(nil) = %q, want nil", got)
	}
}

func TestComputeMatches(t *testing.T) {
	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"option_prefix", modeMatch, "-a 2 --ver", []string{"--verbose", "--version"}},
		{"positional_word", modeMatch, "-a 2 ver", nil},
		{"empty_word", modeMatch, "-a ", nil},
		{"expression", modeMatch, "= has(--ver", nil},
		{"command", modeCtrl, "us", []string{"usage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(context.Background(),
				Config{Registry: testRegistry(t)}, NewHistory(""))
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.CursorEnd()

			matches, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			less := func(a, b string) bool { return a < b }
			if diff := cmp.Diff(tt.want, got, cmpopts.SortSlices(less)); diff != "" {
				t.Errorf("computeMatches(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

package repl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pirate/opts"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "usage", "clear", "quit"}

// wordBounds returns the whitespace-delimited word at the cursor position and
// its byte boundaries within input. The word is empty when the cursor sits
// between spaces or at either end of a blank line.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if unicode.IsSpace(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if unicode.IsSpace(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// optionCandidates returns every invocation form of the options in r:
// "--long" before "-s" for each descriptor.
func optionCandidates(r *opts.Registry) []string {
	if r == nil {
		return nil
	}

	var candidates []string

	for _, d := range r.Descriptors() {
		if d.Header || d.Positional {
			continue
		}

		if d.Long != "" {
			candidates = append(candidates, "--"+d.Long)
		}

		if d.Short != "" {
			candidates = append(candidates, "-"+d.Short)
		}
	}

	return candidates
}

// computeMatches returns the fuzzy matches for the word at the cursor,
// ranked best-first, and the word boundaries.
//
// In match mode only words beginning with '-' are completed. Expression
// lines, which begin with '=', are never completed.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	var candidates []string

	switch {
	case m.mode == modeCtrl:
		candidates = ctrlCommands

	case strings.HasPrefix(strings.TrimSpace(input), exprPrefix):
		return nil, wordStart, wordEnd

	case strings.HasPrefix(word, "-"):
		candidates = m.candidates
	}

	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, suggestionStyle.Bold(true)
	if selected {
		base, highlight = selectedStyle, selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

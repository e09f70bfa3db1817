package usage

import (
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/pirate/opts"
)

// MaxSuggestions is the most names returned by [Suggest].
const MaxSuggestions = 3

// Suggest returns up to [MaxSuggestions] declared long option names that
// fuzzy-match name, best match first.
func Suggest(name string, r *opts.Registry) []string {
	if name == "" {
		return nil
	}

	var candidates []string

	for _, d := range r.Descriptors() {
		if !d.Header && !d.Positional && d.Long != "" {
			candidates = append(candidates, d.Long)
		}
	}

	found := fuzzy.Find(name, candidates)

	names := make([]string, 0, min(len(found), MaxSuggestions))
	for _, m := range found[:min(len(found), MaxSuggestions)] {
		names = append(names, m.Str)
	}

	return names
}

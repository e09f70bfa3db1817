package opts

import (
	"iter"

	"github.com/goccy/go-yaml"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Matches maps the canonical name of every option or positional supplied to
// one [Registry.Match] call to its captured value. Flags that take no value
// capture "". Names are kept in the order they were first seen.
//
// Matches is immutable once returned.
type Matches struct {
	values *orderedmap.OrderedMap[string, string]
}

func newMatches() *Matches {
	return &Matches{values: orderedmap.New[string, string]()}
}

// set records value for name, replacing any earlier value.
func (m *Matches) set(name, value string) {
	m.values.Set(name, value)
}

// Get returns the value captured for name.
func (m *Matches) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}

	return m.values.Get(name)
}

// Has reports whether name was supplied.
func (m *Matches) Has(name string) bool {
	_, ok := m.Get(name)

	return ok
}

// Len returns the number of names supplied.
func (m *Matches) Len() int {
	if m == nil {
		return 0
	}

	return m.values.Len()
}

// All returns an iterator over the supplied names and their values.
func (m *Matches) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if m == nil {
			return
		}

		for p := m.values.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Names returns the supplied names in order.
func (m *Matches) Names() []string {
	names := make([]string, 0, m.Len())
	for name := range m.All() {
		names = append(names, name)
	}

	return names
}

// ToMap returns the matches as an unordered map.
func (m *Matches) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	for name, value := range m.All() {
		out[name] = value
	}

	return out
}

// MarshalJSON encodes the matches as a JSON object with keys in order.
func (m *Matches) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	return m.values.MarshalJSON()
}

// MarshalYAML encodes the matches as a YAML mapping with keys in order.
func (m *Matches) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, m.Len())
	for name, value := range m.All() {
		ms = append(ms, yaml.MapItem{Key: name, Value: value})
	}

	return ms, nil
}

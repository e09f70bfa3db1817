package opts

import (
	"strings"
	"unicode/utf8"
)

// phase is the active buffer of the spec scanner.
type phase int

const (
	phaseShort phase = iota
	phaseLong
	phaseDescription
)

const (
	marker           = ':'
	sepLong          = '/'
	openDescription  = '('
	closeDescription = ')'
)

// Compile parses one spec string into a [Descriptor].
//
//	spec        := [":"] body [":"]
//	body        := namepart ["/" namepart] ["(" description ")"]
//
// A leading ':' marks a positional argument and a trailing ':' marks an
// option taking a value. A spec with neither a short nor a long name is a
// group header, used only by usage rendering.
//
// Every ')' is dropped. Inside a description '/' and '(' are kept as text,
// and any other character goes to the active buffer, so a repeated '/'
// stays in the long name and text after ')' extends the description.
//
// Compile fails with [ErrOptionFormat] when the spec is empty, carries
// both markers, is a header carrying either marker, or pairs a short name
// longer than one character with an explicit long name. A lone name part
// longer than one character is taken as the long name.
func Compile(spec string) (Descriptor, error) {
	fail := ErrOptionFormat.For(spec)

	if spec == "" {
		return Descriptor{}, fail
	}

	d := Descriptor{
		Positional: spec[0] == marker,
		TakesValue: spec[len(spec)-1] == marker,
	}

	if d.Positional && d.TakesValue {
		return Descriptor{}, fail
	}

	body := spec
	if d.Positional {
		body = body[1:]
	}

	if d.TakesValue {
		body = body[:len(body)-1]
	}

	var short, long, desc strings.Builder

	state := phaseShort

	for _, c := range body {
		switch {
		case c == closeDescription:
		case c == sepLong && state != phaseDescription:
			state = phaseLong
		case c == openDescription && state != phaseDescription:
			state = phaseDescription
		case state == phaseShort:
			short.WriteRune(c)
		case state == phaseLong:
			long.WriteRune(c)
		default:
			desc.WriteRune(c)
		}
	}

	d.Short, d.Long, d.Description = short.String(), long.String(), desc.String()

	if utf8.RuneCountInString(d.Short) > 1 {
		if d.Long != "" {
			return Descriptor{}, fail
		}

		d.Short, d.Long = "", d.Short
	}

	if d.Short == "" && d.Long == "" {
		if d.Positional || d.TakesValue {
			return Descriptor{}, fail
		}

		d.Header = true
	}

	return d, nil
}

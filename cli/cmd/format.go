package cmd

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/pirate/pkg"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// defaultIndent is the indent width of structured output.
const defaultIndent = 2

// formats lists the valid --format values.
var formats = []string{FormatText, FormatJSON, FormatYAML}

// writeFormatted writes v to w in the given format. Text output is produced
// by text.
func writeFormatted(
	w io.Writer,
	format string,
	v any,
	text func(io.Writer) error,
) error {
	switch format {
	case FormatText, "":
		return text(w)

	case FormatJSON:
		data, err := json.MarshalIndent(v, "", strings.Repeat(" ", defaultIndent))
		if err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		_, err = w.Write(append(data, '\n'))

		return err

	case FormatYAML:
		data, err := yaml.MarshalWithOptions(v, yaml.Indent(defaultIndent))
		if err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		return pkg.ErrInvalidFormat.Wrapf("%q (valid: %s)",
			format, strings.Join(formats, ", "))
	}
}

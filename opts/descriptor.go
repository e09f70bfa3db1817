package opts

import "strings"

// Descriptor is the compiled form of one spec string.
type Descriptor struct {
	Short       string `json:"short,omitempty"       yaml:"short,omitempty"`
	Long        string `json:"long,omitempty"        yaml:"long,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Positional  bool   `json:"positional,omitempty"  yaml:"positional,omitempty"`
	TakesValue  bool   `json:"takes_value,omitempty" yaml:"takes_value,omitempty"`
	Header      bool   `json:"header,omitempty"      yaml:"header,omitempty"`
}

// Name returns the canonical name of d: the long name when declared,
// otherwise the short name. Group headers have no name.
func (d Descriptor) Name() string {
	if d.Long != "" {
		return d.Long
	}

	return d.Short
}

// Flags renders the invocation column of d as shown in usage text.
//
//	-x, --long
//	-x
//	    --long
//	<name>
//
// Group headers render as "".
func (d Descriptor) Flags() string {
	switch {
	case d.Header:
		return ""
	case d.Positional:
		return "<" + d.Name() + ">"
	}

	var sb strings.Builder

	switch {
	case d.Short != "" && d.Long != "":
		sb.WriteString("-" + d.Short + ", --" + d.Long)
	case d.Short != "":
		sb.WriteString("-" + d.Short)
	default:
		sb.WriteString("    --" + d.Long)
	}

	if d.TakesValue {
		sb.WriteString(" <" + strings.ToUpper(d.Name()) + ">")
	}

	return sb.String()
}

// helpDescriptor is appended to every [Registry].
var helpDescriptor = Descriptor{
	Short:       "h",
	Long:        "help",
	Description: "Display this help message",
}

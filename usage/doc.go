// Package usage renders help text for an [opts.Registry] and suggests
// declared option names for misspelled ones.
//
//	Usage: adder [OPTIONS] <augend>
//
//	  -a, --addend <ADDEND>  The number to add
//
//	Required:
//	  <augend>               The number to add to
//	  -h, --help             Display this help message
//
// Entries appear in declaration order. Group headers render as
// "{description}:" and descriptions are aligned on the widest invocation
// column.
package usage

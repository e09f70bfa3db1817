// Package opts compiles a small declarative language describing
// command-line options into a [Registry], then matches process arguments
// against it.
//
// # Spec strings
//
// Each spec string declares one option, positional argument, or group
// header:
//
//	spec        → [':'] body [':']
//	body        → namepart ['/' namepart] ['(' description ')']
//	namepart    → <any characters except '/', '(', ')'>
//	description → <any characters; every ')' is dropped>
//
// A leading ':' declares a positional argument and a trailing ':' declares
// an option that takes a value. A spec may not carry both. A spec with no
// name at all is a group header, used only to organize usage text.
//
// # Example
//
//	specs := []string{
//		"a/addend(The number to add):",
//		"(Required)",
//		":augend(The number to add to)",
//	}
//
//	m, err := opts.Parse(ctx, specs, os.Args[1:])
//	if err != nil {
//		// err is an *opts.Error; see errors.Is(err, opts.ErrMissingArgument)
//	}
//
//	addend, _ := m.Get("addend")
//	augend, _ := m.Get("augend")
//
// # Matching
//
// Arguments are scanned once, left to right. "--name" invokes one long
// option, and "-xyz" invokes the short options x, y and z in turn. An
// option taking a value consumes the next argument. Every other argument
// fills the next positional in declaration order, regardless of where it
// appears among the options.
//
// Matches are keyed by canonical name: the long name when one is declared,
// otherwise the short name. A repeated option keeps its last value.
//
// Every Registry declares "-h, --help". Rendering help text is left to the
// caller; see package usage.
package opts

package opts

import (
	"errors"
	"log/slog"
	"strings"
)

// Kind classifies the errors raised while compiling specs or matching
// arguments.
type Kind int

const (
	KindUnknown Kind = iota
	KindOptionFormat
	KindInvalidArgument
	KindMissingArgument
	KindExtraArgument
	KindDuplicateOption
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindOptionFormat:
		return "OptionFormat"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindMissingArgument:
		return "MissingArgument"
	case KindExtraArgument:
		return "ExtraArgument"
	case KindDuplicateOption:
		return "DuplicateOption"
	default:
		return "Unknown"
	}
}

// Predefined errors (sentinel values). Compare with [errors.Is].
var (
	ErrOptionFormat = newError(
		KindOptionFormat, "An option was defined in the wrong format",
	)
	ErrInvalidArgument = newError(
		KindInvalidArgument, "An invalid option was passed to the program",
	)
	ErrMissingArgument = newError(
		KindMissingArgument, "A required argument is missing",
	)
	ErrExtraArgument = newError(
		KindExtraArgument, "An unexpected argument was passed to the program",
	)
	ErrDuplicateOption = newError(
		KindDuplicateOption, "An option name was defined more than once",
	)
)

// Error is returned by every failing operation of this package. It carries
// the [Kind] of failure, the offending name, token, or spec string, and
// optional attributes for structured logging.
type Error struct {
	kind     Kind
	msg      string
	offender string
	err      error       // Wrapped error (for errors.Unwrap)
	attrs    []slog.Attr // Attributes for structured logging
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Error implements the error interface.
//
//	"<msg>: <offender>: <err>"
//
// Empty parts are omitted.
func (e *Error) Error() string {
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.offender != "" {
		part = append(part, e.offender)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Kind returns the classification of the error.
func (e *Error) Kind() Kind { return e.kind }

// Offender returns the name, token, or spec string that caused the error.
func (e *Error) Offender() string { return e.offender }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.kind == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)
	attrs = append(attrs,
		slog.String("kind", e.kind.String()),
		slog.String("error", e.msg),
	)

	if e.offender != "" {
		attrs = append(attrs, slog.String("offender", e.offender))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// For returns a copy of the error naming the given offender.
func (e *Error) For(offender string) *Error {
	c := *e
	c.offender = offender

	return &c
}

// Wrap returns a copy of the error wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.err = err

	return &c
}

// With returns a copy of the error with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := *e
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return &c
}

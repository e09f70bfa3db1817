package cmd

import (
	"log/slog"
	"slices"
	"strings"
)

// Error is a command failure: a fixed message, an optional cause, and the
// slog attributes describing what the command was doing.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError returns a sentinel with message msg.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Error joins the non-empty message and cause with ": ".
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(e.msg)

	if e.err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.err.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error { return e.err }

// Is matches any *Error carrying the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

// LogValue groups the message, the cause and the attached attributes.
func (e *Error) LogValue() slog.Value {
	group := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		group = append(group, slog.String("error", e.msg))
	}

	switch cause := e.err.(type) {
	case nil:
	case slog.LogValuer:
		group = append(group, slog.Any("cause", cause))
	default:
		group = append(group, slog.String("cause", cause.Error()))
	}

	return slog.GroupValue(append(group, e.attrs...)...)
}

// Wrap returns a copy of e caused by err.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With returns a copy of e with attrs appended; e is left unchanged.
func (e *Error) With(attrs ...slog.Attr) *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: append(slices.Clip(e.attrs), attrs...),
	}
}

var (
	ErrReadSource   = NewError("read source")
	ErrNoSpecs      = NewError("no option specs (use --source or --spec)")
	ErrBuild        = NewError("build registry")
	ErrEvalCompile  = NewError("compile expression")
	ErrEvalRun      = NewError("evaluate expression")
	ErrEvalReserved = NewError("option name is reserved in expressions")
	ErrWriteConfig  = NewError("write configuration file")
	ErrFileExists   = NewError("file exists (use --force to overwrite)")
)

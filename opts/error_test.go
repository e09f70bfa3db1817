package opts

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{
			ErrInvalidArgument.For("z"),
			"An invalid option was passed to the program: z",
		},
		{
			ErrMissingArgument.For("n"),
			"A required argument is missing: n",
		},
		{
			ErrOptionFormat.For(":x:"),
			"An option was defined in the wrong format: :x:",
		},
		{
			ErrExtraArgument,
			"An unexpected argument was passed to the program",
		},
		{
			ErrDuplicateOption.For("h").Wrap(io.EOF),
			"An option name was defined more than once: h: EOF",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestError_Is(t *testing.T) {
	err := ErrInvalidArgument.For("z").With(slog.String("token", "-z"))

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is should match sentinel of same kind")
	}

	if errors.Is(err, ErrMissingArgument) {
		t.Error("errors.Is should not match sentinel of another kind")
	}

	if errors.Is(err, io.EOF) {
		t.Error("errors.Is should not match unrelated error")
	}

	wrapped := ErrOptionFormat.Wrap(io.EOF)
	if !errors.Is(wrapped, io.EOF) {
		t.Error("errors.Is should find wrapped cause")
	}
}

func TestError_DoesNotMutateSentinel(t *testing.T) {
	_ = ErrMissingArgument.For("x").With(slog.Int("n", 1))

	if ErrMissingArgument.Offender() != "" || len(ErrMissingArgument.attrs) != 0 {
		t.Error("sentinel was modified")
	}
}

func TestError_LogValue(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Error("match failed", slog.Any("error",
		ErrInvalidArgument.For("z").With(slog.String("token", "-xz")),
	))

	out := buf.String()
	for _, want := range []string{
		"error.kind=InvalidArgument",
		"error.offender=z",
		"error.token=-xz",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindOptionFormat:    "OptionFormat",
		KindInvalidArgument: "InvalidArgument",
		KindMissingArgument: "MissingArgument",
		KindExtraArgument:   "ExtraArgument",
		KindDuplicateOption: "DuplicateOption",
		KindUnknown:         "Unknown",
	}

	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

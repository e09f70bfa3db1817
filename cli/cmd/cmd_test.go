package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testContext returns a context carrying specs, sources, and buffered
// streams.
func testContext(t *testing.T, specs, sources []string, stdin string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var out, errw bytes.Buffer

	ctx := WithStreams(context.Background(), Streams{
		In:  strings.NewReader(stdin),
		Out: &out,
		Err: &errw,
	})
	ctx = WithSpecs(ctx, specs)
	ctx = WithSourceFiles(ctx, sources)

	return ctx, &out, &errw
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func readSources(t *testing.T, ctx context.Context) []string {
	t.Helper()

	srcs, closeAll, err := openSourceFiles(ctx)
	if err != nil {
		t.Fatalf("openSourceFiles() error = %v", err)
	}
	defer closeAll()

	var got []string

	for _, src := range srcs {
		data, err := io.ReadAll(src.r)
		if err != nil {
			t.Fatalf("reading %s: %v", src.name, err)
		}

		got = append(got, string(data))
	}

	return got
}

func TestOpenSourceFilesEmpty(t *testing.T) {
	ctx, _, _ := testContext(t, nil, nil, "")

	if got := readSources(t, ctx); len(got) != 0 {
		t.Errorf("openSourceFiles() = %q, want none", got)
	}
}

func TestOpenSourceFilesOrder(t *testing.T) {
	dir := t.TempDir()
	file1 := writeFile(t, dir, "file1.txt", "first")
	file2 := writeFile(t, dir, "file2.txt", "second")

	ctx, _, _ := testContext(t, nil, []string{file2, file1}, "")

	want := []string{"second", "first"}
	if diff := cmp.Diff(want, readSources(t, ctx)); diff != "" {
		t.Errorf("openSourceFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSourceFilesDedup(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "file.txt", "content")

	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(file, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	rel, err := filepath.Rel(mustGetwd(t), file)
	if err != nil {
		rel = file
	}

	ctx, _, _ := testContext(t, nil, []string{file, link, rel}, "")

	want := []string{"content"}
	if diff := cmp.Diff(want, readSources(t, ctx)); diff != "" {
		t.Errorf("openSourceFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSourceFilesStdinLast(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "file.txt", "file")

	ctx, _, _ := testContext(t, nil, []string{"-", file, "-"}, "stdin")

	want := []string{"file", "stdin"}
	if diff := cmp.Diff(want, readSources(t, ctx)); diff != "" {
		t.Errorf("openSourceFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSourceFilesMissing(t *testing.T) {
	ctx, _, _ := testContext(t, nil,
		[]string{filepath.Join(t.TempDir(), "missing.txt")}, "")

	_, closeAll, err := openSourceFiles(ctx)
	defer closeAll()

	if !errors.Is(err, ErrReadSource) {
		t.Errorf("openSourceFiles() error = %v, want %v", err, ErrReadSource)
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	return wd
}

func TestStreamsDefaults(t *testing.T) {
	s := streamsFrom(context.Background())

	if s.In != os.Stdin || s.Out != os.Stdout || s.Err != os.Stderr {
		t.Error("streamsFrom() without streams should use the process streams")
	}

	var out bytes.Buffer

	s = streamsFrom(WithStreams(context.Background(), Streams{Out: &out}))

	if s.Out != &out {
		t.Error("streamsFrom() should keep the stored stdout")
	}

	if s.In != os.Stdin || s.Err != os.Stderr {
		t.Error("streamsFrom() should default unset streams")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "adder.yaml", strings.Join([]string{
		"program: adder",
		"specs:",
		`  - "a/addend(The number to add):"`,
		"args: -a 2",
	}, "\n"))

	ctx, _, _ := testContext(t, []string{":augend"}, []string{file}, "")

	m, err := loadManifest(ctx)
	if err != nil {
		t.Fatalf("loadManifest() error = %v", err)
	}

	if m.Program != "adder" {
		t.Errorf("Program = %q, want %q", m.Program, "adder")
	}

	if diff := cmp.Diff([]string{"a/addend(The number to add):", ":augend"}, m.Specs); diff != "" {
		t.Errorf("Specs mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"-a", "2"}, m.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	ctx, _, _ := testContext(t, []string{"v/verbose"}, nil, "")

	m, err := loadManifest(ctx)
	if err != nil {
		t.Fatalf("loadManifest() error = %v", err)
	}

	if m.Program != defaultProgram {
		t.Errorf("Program = %q, want %q", m.Program, defaultProgram)
	}
}

func TestLoadManifestNoSpecs(t *testing.T) {
	ctx, _, _ := testContext(t, nil, nil, "")

	if _, err := loadManifest(ctx); !errors.Is(err, ErrNoSpecs) {
		t.Errorf("loadManifest() error = %v, want %v", err, ErrNoSpecs)
	}
}

func TestLoadRegistryBuildError(t *testing.T) {
	ctx, _, _ := testContext(t, []string{"v/verbose", "v/version"}, nil, "")

	if _, _, err := loadRegistry(ctx); !errors.Is(err, ErrBuild) {
		t.Errorf("loadRegistry() error = %v, want %v", err, ErrBuild)
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrBuild.Wrap(io.EOF)

	if !errors.Is(err, ErrBuild) {
		t.Error("wrapped error should match its sentinel")
	}

	if !errors.Is(err, io.EOF) {
		t.Error("wrapped error should match its cause")
	}

	if errors.Is(err, ErrNoSpecs) {
		t.Error("wrapped error should not match another sentinel")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message", ErrBuild, "build registry"},
		{"message and cause", ErrBuild.Wrap(io.EOF), "build registry: EOF"},
		{"cause only", NewError("").Wrap(io.EOF), "EOF"},
		{"empty", NewError(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorWithCopies(t *testing.T) {
	base := NewError("base").With(slog.String("a", "1"))
	first := base.With(slog.String("b", "2"))
	second := base.With(slog.String("c", "3"))

	if len(base.attrs) != 1 {
		t.Errorf("base attrs = %d, want 1", len(base.attrs))
	}

	if got := first.attrs[1].Key; got != "b" {
		t.Errorf("first attr key = %q, want %q", got, "b")
	}

	if got := second.attrs[1].Key; got != "c" {
		t.Errorf("second attr key = %q, want %q", got, "c")
	}
}

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard streams used by commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// DefaultStreams returns the process standard streams.
func DefaultStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

type streamsKey struct{}

// WithStreams returns a new context.Context carrying the given streams.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

// streamsFrom returns the streams stored in ctx by WithStreams, with any
// unset stream replaced by its process default.
func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)
	d := DefaultStreams()

	if s.In == nil {
		s.In = d.In
	}

	if s.Out == nil {
		s.Out = d.Out
	}

	if s.Err == nil {
		s.Err = d.Err
	}

	return s
}

type (
	sourceFilesKey struct{}
	specsKey       struct{}
)

// source is one opened manifest source.
type source struct {
	name string
	r    io.Reader
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// WithSourceFiles returns a new context.Context containing the manifest
// source paths. "-" names stdin.
func WithSourceFiles(ctx context.Context, sources []string) context.Context {
	return context.WithValue(ctx, sourceFilesKey{}, sources)
}

// WithSpecs returns a new context.Context containing inline spec strings,
// which follow the specs of every source file.
func WithSpecs(ctx context.Context, specs []string) context.Context {
	return context.WithValue(ctx, specsKey{}, specs)
}

func specsFrom(ctx context.Context) []string {
	s, _ := ctx.Value(specsKey{}).([]string)

	return s
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSourceFiles opens the source files stored in ctx, in order.
//
// Duplicate files are opened once, whether named by symlink, relative or
// absolute path. Every "-" collapses to a single stdin reader placed last.
// The returned close function closes every opened file.
func openSourceFiles(ctx context.Context) ([]source, func(), error) {
	paths, _ := ctx.Value(sourceFilesKey{}).([]string)

	var (
		srcs     []source
		files    []*os.File
		hasStdin bool
	)

	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	seen := make(map[fileKey]struct{})

	for _, path := range paths {
		if path == stdinSource {
			hasStdin = true

			continue
		}

		file, err := openUniqueFile(path, seen)
		if err != nil {
			closeAll()

			return nil, func() {}, ErrReadSource.Wrap(err)
		}

		if file == nil {
			continue
		}

		files = append(files, file)
		srcs = append(srcs, source{name: path, r: file})
	}

	if hasStdin {
		srcs = append(srcs, source{name: stdinSource, r: streamsFrom(ctx).In})
	}

	return srcs, closeAll, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// A duplicate returns a nil file and nil error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/pirate/log"
	"github.com/ardnew/pirate/manifest"
	"github.com/ardnew/pirate/opts"
)

// defaultProgram names the program in usage text when no manifest does.
const defaultProgram = "program"

// loadManifest merges the manifests of every source file stored in ctx,
// followed by the inline specs.
func loadManifest(ctx context.Context) (*manifest.Manifest, error) {
	srcs, closeAll, err := openSourceFiles(ctx)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	inline := specsFrom(ctx)

	if len(srcs) == 0 && len(inline) == 0 {
		return nil, ErrNoSpecs
	}

	m := new(manifest.Manifest)

	for _, src := range srcs {
		mm, err := manifest.Load(ctx, src.r)
		if err != nil {
			return nil, ErrReadSource.Wrap(err).
				With(slog.String("source", src.name))
		}

		m.Merge(mm)
	}

	m.Merge(&manifest.Manifest{Specs: inline})

	if m.Program == "" {
		m.Program = defaultProgram
	}

	log.DebugContext(ctx, "manifest loaded",
		slog.Int("sources", len(srcs)),
		slog.Int("specs", len(m.Specs)),
	)

	return m, nil
}

// loadRegistry loads the manifest and compiles its registry.
func loadRegistry(ctx context.Context) (*manifest.Manifest, *opts.Registry, error) {
	m, err := loadManifest(ctx)
	if err != nil {
		return nil, nil, err
	}

	r, err := manifest.Build(ctx, m, opts.WithLogger(log.Default()))
	if err != nil {
		return nil, nil, ErrBuild.Wrap(err)
	}

	return m, r, nil
}

package opts

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ef-ds/deque"

	"github.com/ardnew/pirate/log"
)

// Registry holds the descriptors compiled from an ordered list of spec
// strings.
//
// Descriptors live in an arena in declaration order. The name index and the
// positional queue refer to descriptors by arena position, so a descriptor
// with both a short and a long name is stored once.
//
// The positional queue is drained by [Registry.NextPositional] and by
// [Registry.Match]. A Registry is not safe for concurrent use; use
// [Registry.Clone] to give each goroutine its own copy.
type Registry struct {
	arena      []Descriptor
	index      map[string]int
	positional []int
	queue      *deque.Deque
	logger     log.Logger
}

// Build compiles specs in order and returns the resulting [Registry].
//
// Build stops at the first spec that fails to compile. A name declared more
// than once, including the implicit "h" and "help", fails with
// [ErrDuplicateOption].
func Build(ctx context.Context, specs []string, opts ...Option) (*Registry, error) {
	r := &Registry{
		arena: make([]Descriptor, 0, len(specs)+1),
		index: make(map[string]int, 2*len(specs)+2),
		queue: deque.New(),
	}

	for _, opt := range opts {
		opt(r)
	}

	// Positional names cannot be invoked, but they key the same Matches.
	names := make(map[string]struct{}, len(specs))

	for _, spec := range specs {
		d, err := Compile(spec)
		if err != nil {
			r.logger.DebugContext(ctx, "spec rejected",
				slog.String("spec", spec), slog.Any("error", err))

			return nil, err
		}

		r.logger.TraceContext(ctx, "spec compiled",
			slog.String("spec", spec), slog.String("name", d.Name()))

		if err := r.add(d, names); err != nil {
			return nil, err.With(slog.String("spec", spec))
		}
	}

	if err := r.add(helpDescriptor, names); err != nil {
		return nil, err
	}

	r.Reset()

	r.logger.TraceContext(ctx, "registry built",
		slog.Int("descriptors", len(r.arena)),
		slog.Int("options", len(r.index)),
		slog.Int("positionals", len(r.positional)),
	)

	return r, nil
}

// add appends d to the arena and records its names.
func (r *Registry) add(d Descriptor, names map[string]struct{}) *Error {
	at := len(r.arena)

	if !d.Header {
		for _, name := range []string{d.Short, d.Long} {
			if name == "" {
				continue
			}

			if _, dup := names[name]; dup {
				return ErrDuplicateOption.For(name)
			}

			names[name] = struct{}{}

			if !d.Positional {
				r.index[name] = at
			}
		}

		if d.Positional {
			r.positional = append(r.positional, at)
		}
	}

	r.arena = append(r.arena, d)

	return nil
}

// Get returns the option descriptor indexed by name.
// Positionals and group headers are never indexed.
func (r *Registry) Get(name string) (Descriptor, bool) {
	at, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}

	return r.arena[at], true
}

// Contains reports whether name is an indexed option name.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]

	return ok
}

// NextPositional pops the head of the positional queue.
func (r *Registry) NextPositional() (Descriptor, bool) {
	v, ok := r.queue.PopFront()
	if !ok {
		return Descriptor{}, false
	}

	return r.arena[v.(int)], true
}

// RemainingPositionals returns the number of positionals left in the queue.
func (r *Registry) RemainingPositionals() int {
	return r.queue.Len()
}

// Reset restores the positional queue to every declared positional, in
// declaration order.
func (r *Registry) Reset() {
	r.queue.Init()

	for _, at := range r.positional {
		r.queue.PushBack(at)
	}
}

// Descriptors returns every descriptor in declaration order, group headers
// included and the implicit help descriptor last.
func (r *Registry) Descriptors() []Descriptor {
	return append([]Descriptor(nil), r.arena...)
}

// Positionals returns the positional descriptors in declaration order,
// regardless of the state of the queue.
func (r *Registry) Positionals() []Descriptor {
	ds := make([]Descriptor, len(r.positional))
	for i, at := range r.positional {
		ds[i] = r.arena[at]
	}

	return ds
}

// Names returns every indexed option name in declaration order, short
// before long.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.index))

	for _, d := range r.arena {
		if d.Header || d.Positional {
			continue
		}

		if d.Short != "" {
			names = append(names, d.Short)
		}

		if d.Long != "" {
			names = append(names, d.Long)
		}
	}

	return names
}

// Clone returns an independent copy of r with a freshly reset queue.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		arena:      append([]Descriptor(nil), r.arena...),
		index:      maps.Clone(r.index),
		positional: append([]int(nil), r.positional...),
		queue:      deque.New(),
		logger:     r.logger,
	}

	c.Reset()

	return c
}

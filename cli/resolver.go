package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pirate/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads a flat YAML
// mapping of flag names to values:
//
//	log-level: debug
//	log_format: text
//	source:
//	  - ~/adder.yaml
//
// Keys may spell flag names with hyphens or underscores. Command-line flags
// override configuration values. A document that cannot be decoded is logged
// and ignored.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var values map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &values)
		if err != nil && err != io.EOF {
			log.DebugContext(ctx, "ignoring configuration",
				slog.String("error", err.Error()),
			)

			return config{}, nil
		}

		cfg := make(config, len(values))
		for key, value := range values {
			cfg[strings.ReplaceAll(key, "_", "-")] = normalize(value)
		}

		return cfg, nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// normalize converts decoded YAML numbers to strings, which kong parses
// into the flag's type.
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}

		return out
	default:
		return v
	}
}

// Package cli contains the command line interface for pirate.
//
// # Usage
//
// Option specs come from manifest files named with --source and from
// inline --spec flags, in that order. The default command matches the
// arguments following "--" against them:
//
//	pirate -o 'a/addend(The number to add):' -o ':augend' -- -a 2 3
//	pirate --source adder.yaml match --format json -- -a 2 3
//	pirate --source adder.yaml eval 'int(addend) + int(augend)' -- -a 2 3
//
// # Commands
//
//   - match: print the matched options (default)
//   - check: compile the specs and list their descriptors
//   - usage: print the usage text
//   - eval: evaluate an expression over the matched options
//   - repl: match argument lines interactively
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flag defaults are read from config.yaml (or config.json) in the user
// configuration directory, for example ~/.config/pirate/config.yaml:
//
//	log-level: debug
//	log-format: text
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pirate .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/pirate/pprof)
package cli

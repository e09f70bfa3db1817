// Package cmd implements the subcommands of the pirate command line.
//
// Every command reads its option specs from the manifest sources and
// inline specs stored in its context, then writes to the streams stored
// there by [WithStreams].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)

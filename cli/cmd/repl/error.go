package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrNoRegistry  = errors.New("no option registry")
	ErrNoMatches   = errors.New("no arguments matched yet")
	ErrNoEvaluator = errors.New("expressions unavailable")
)

package gpucmd

import "errors"

// Errors returned by gpucmd and its sub-packages. These cover the
// resource-exhaustion and environment failures that are expected in
// production and therefore surface as values; broken recording invariants
// (mismatched begin/end, oversized records, unknown tags) are programmer
// errors and panic instead.
var (
	// ErrStorageExhausted is reported when a recording runs out of command
	// storage because the backing arena's block budget is spent. The
	// recording is incomplete and must be reset before reuse.
	ErrStorageExhausted = errors.New("gpucmd: command storage exhausted")

	// ErrUnknownBackend is returned by NewCommandBuffer when no backend
	// with the requested name has been registered.
	ErrUnknownBackend = errors.New("gpucmd: unknown backend")
)

// In file: internal/bridge/errors.go
package bridge

import "errors"

// Per-query failure kinds. Both abort only the query in flight: the session
// and its tool host connection stay usable for the next query.
var (
	// ErrModelService marks a failed call to the language model service.
	ErrModelService = errors.New("model service call failed")

	// ErrToolHost marks a failed tools/call invocation against the tool host.
	ErrToolHost = errors.New("tool host call failed")
)

// In file: internal/mcp/errors.go
package mcp

import "errors"

var (
	// ErrInvalidScriptType is returned when the tool host entry point is
	// neither a .py nor a .js file. Fatal at startup: no process is spawned.
	ErrInvalidScriptType = errors.New("server script must be a .py or .js file")

	// ErrConnection covers transport establishment and tool-listing failures.
	// Fatal at startup: the bridge refuses to serve without a connected host.
	ErrConnection = errors.New("tool host connection failed")
)

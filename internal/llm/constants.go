// In file: internal/llm/constants.go
package llm

import "time"

// This file centralizes constants shared across the provider clients
// in the llm package to avoid redeclaration errors.
const (
	defaultTimeout   = 120 * time.Second
	defaultMaxTokens = 1000
)

// In file: internal/bridge/session.go

// Package bridge contains the core of the system: the query orchestrator
// that turns one natural-language query into a sequence of model calls and
// tool calls, and the session that scopes a tool host connection.
package bridge

import (
	"context"
	"encoding/json"
	"log"

	"github.com/dileep-u-k/mcp-bridge/internal/llm"
	"github.com/dileep-u-k/mcp-bridge/internal/mcp"
)

// ToolHost is the slice of the tool host client the orchestrator consumes.
type ToolHost interface {
	// CallTool invokes a named tool with raw JSON arguments and returns the
	// result as text.
	CallTool(ctx context.Context, name string, args json.RawMessage) (string, error)

	// Close tears the host channel down; it must tolerate repeated calls.
	Close() error
}

// Session binds one tool host connection, its cached catalog and a model
// client together for the connection's lifetime. All fields are set at
// construction and never mutated, so concurrent reads are safe; queries
// themselves are handled one at a time.
type Session struct {
	host    ToolHost
	model   llm.ModelClient
	catalog []llm.ToolDefinition
	config  *llm.GenerationConfig
}

// NewSession assembles a session from already-connected collaborators.
func NewSession(host ToolHost, model llm.ModelClient, catalog []llm.ToolDefinition, config *llm.GenerationConfig) *Session {
	return &Session{
		host:    host,
		model:   model,
		catalog: catalog,
		config:  config,
	}
}

// Connect spawns and initializes the tool host for the given entry-point
// script, fetches its catalog once, and returns the ready session. Every
// failure path here is fatal to startup by contract: no query can be served
// without a connected host and its catalog.
func Connect(ctx context.Context, scriptPath string, model llm.ModelClient, config *llm.GenerationConfig) (*Session, error) {
	host, err := mcp.Connect(ctx, scriptPath)
	if err != nil {
		return nil, err
	}
	tools, err := host.ListTools(ctx)
	if err != nil {
		_ = host.Close()
		return nil, err
	}
	catalog := BuildCatalog(tools)
	for _, t := range catalog {
		log.Printf("🔧 Tool available: %s", t.Name)
	}
	return NewSession(host, model, catalog, config), nil
}

// Catalog exposes the cached tool catalog.
func (s *Session) Catalog() []llm.ToolDefinition {
	return s.catalog
}

// Close releases the tool host channel. Closing an already-closed session is
// a no-op.
func (s *Session) Close() error {
	return s.host.Close()
}

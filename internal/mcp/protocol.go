// In file: internal/mcp/protocol.go

// Package mcp implements a client for tool host processes speaking the Model
// Context Protocol: JSON-RPC 2.0 over the child process's stdin/stdout, one
// message per line. The bridge only consumes the tool surface of the protocol
// (initialize, tools/list, tools/call).
package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"

	methodInitialize  = "initialize"
	methodInitialized = "notifications/initialized"
	methodListTools   = "tools/list"
	methodCallTool    = "tools/call"
)

// --- JSON-RPC Framing ---

// ErrorPayload is the 'error' object of a JSON-RPC response.
type ErrorPayload struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Request is a standard JSON-RPC request object.
type Request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// Response is a standard JSON-RPC response object.
type Response struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      string        `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
}

// Notification is a JSON-RPC notification: a request without an ID, to which
// the host never replies.
type Notification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// --- MCP Payloads ---

// Tool is one tool descriptor advertised by the host. Immutable once fetched.
type Tool struct {
	Name        string                 `json:"name" mapstructure:"name"`
	Description string                 `json:"description,omitempty" mapstructure:"description"`
	InputSchema map[string]interface{} `json:"inputSchema" mapstructure:"inputSchema"`
}

type clientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type initializeParams struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ClientInfo      clientInfo             `json:"clientInfo"`
}

type serverInfo struct {
	Name    string `json:"name" mapstructure:"name"`
	Version string `json:"version" mapstructure:"version"`
}

type initializeResult struct {
	ProtocolVersion string     `json:"protocolVersion" mapstructure:"protocolVersion"`
	ServerInfo      serverInfo `json:"serverInfo" mapstructure:"serverInfo"`
}

type listToolsResult struct {
	Tools []Tool `json:"tools" mapstructure:"tools"`
}

type callToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Content is one fragment of a tool result. Hosts may return several content
// types; the bridge flattens everything to its textual representation.
type Content struct {
	Type string `json:"type" mapstructure:"type"`
	Text string `json:"text,omitempty" mapstructure:"text"`
}

type callToolResult struct {
	Content []Content `json:"content" mapstructure:"content"`
	IsError bool      `json:"isError,omitempty" mapstructure:"isError"`
}

// decodeResult maps the untyped 'result' field of a JSON-RPC response onto a
// typed payload struct.
func decodeResult(result interface{}, target interface{}) error {
	if result == nil {
		return fmt.Errorf("response carried no result payload")
	}
	if err := mapstructure.Decode(result, target); err != nil {
		return fmt.Errorf("failed to decode result into %T: %w", target, err)
	}
	return nil
}

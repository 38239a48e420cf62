// In file: internal/llm/client.go

// Package llm contains the clients for the external language model services
// the bridge can talk to, together with the provider-agnostic message and
// content-block types they all share.
package llm

import (
	"context"
	"encoding/json"
)

// =================================================================================
// Core Data Structures
// =================================================================================

// Role represents the originator of a message in a conversation.
// Using a defined type and constants prevents typos and improves code clarity.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single turn in a conversation history. The history is
// append-only while a query is being resolved and is discarded afterwards.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Block type discriminators for ContentBlock.
const (
	BlockTypeText    = "text"
	BlockTypeToolUse = "tool_use"
)

// ContentBlock is one fragment of a model response. A response is an ordered
// sequence of blocks, each either plain text or a request to invoke a tool.
// The order matters: callers dispatch blocks strictly in the order the model
// emitted them.
type ContentBlock struct {
	// Type is either BlockTypeText or BlockTypeToolUse.
	Type string
	// Text carries the fragment content for text blocks.
	Text string
	// Name is the tool the model wants to invoke, for tool_use blocks.
	Name string
	// Input holds the tool arguments as raw JSON, exactly as the provider
	// returned them. Key order is preserved by never re-marshalling.
	Input json.RawMessage
}

// ToolDefinition describes one callable tool in the shape every provider
// client understands: a name, a description the model uses to decide when to
// call it, and a JSON-schema-like input schema. Definitions are produced once
// per connection by the catalog adapter and never mutated afterwards.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// GenerationConfig holds the parameters that control a generation request.
// MaxTokens is configuration, not logic: the orchestrator never branches on it.
type GenerationConfig struct {
	// Model is the provider-specific model identifier (e.g. "claude-3-5-sonnet-20241022").
	Model string
	// MaxTokens is the upper bound on generated tokens for each model call.
	MaxTokens int
}

// Usage holds token accounting for a single generation request.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// GenerationResult is the complete output of one model call: the ordered
// content blocks plus token usage.
type GenerationResult struct {
	Blocks []ContentBlock
	Usage  Usage
}

// =================================================================================
// Model Client Interface
// =================================================================================

// ModelClient is the interface every provider client (Anthropic, Gemini)
// implements. A call is a single blocking request: the bridge performs no
// retries and no streaming, so one invocation maps to exactly one upstream
// request.
type ModelClient interface {
	// Generate sends the conversation to the model and returns its ordered
	// response blocks. When tools is nil the model can only answer with text.
	Generate(
		ctx context.Context,
		messages []Message,
		config *GenerationConfig,
		tools []ToolDefinition,
	) (*GenerationResult, error)
}

// In file: internal/llm/anthropic_client.go
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

const (
	anthropicAPIURL  = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
)

// --- API Data Structures ---

type anthropicUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
	MaxTokens int                `json:"max_tokens"`
}
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
type anthropicTool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}
type anthropicContentBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}
type anthropicResponse struct {
	Content []anthropicContentBlock `json:"content"`
	Usage   anthropicUsage          `json:"usage"`
}

// --- Main Client ---

// AnthropicClient talks to the Anthropic Messages API over plain HTTP.
// Each Generate call is exactly one request: failures surface immediately
// to the caller, which owns the decision of what to do next.
type AnthropicClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ ModelClient = (*AnthropicClient)(nil)

func NewAnthropicClient(apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic API key cannot be empty")
	}
	return &AnthropicClient{
		apiKey:     apiKey,
		baseURL:    anthropicAPIURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

func (c *AnthropicClient) Generate(ctx context.Context, messages []Message, config *GenerationConfig, tools []ToolDefinition) (*GenerationResult, error) {
	payload, err := c.buildRequestPayload(messages, config, tools)
	if err != nil {
		return nil, fmt.Errorf("failed to build anthropic request payload: %w", err)
	}
	respBody, err := c.doRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	return parseAnthropicResponse(respBody)
}

// --- Helper Functions ---

func (c *AnthropicClient) buildRequestPayload(messages []Message, config *GenerationConfig, tools []ToolDefinition) (*bytes.Buffer, error) {
	req := anthropicRequest{
		Model:     config.Model,
		Messages:  toAnthropicMessages(messages),
		Tools:     toAnthropicTools(tools),
		MaxTokens: defaultMaxTokens,
	}
	if config.MaxTokens > 0 {
		req.MaxTokens = config.MaxTokens
	}
	payloadBytes, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}
	return bytes.NewBuffer(payloadBytes), nil
}

func toAnthropicMessages(messages []Message) []anthropicMessage {
	anthropicMsgs := make([]anthropicMessage, 0, len(messages))
	for _, msg := range messages {
		anthropicMsgs = append(anthropicMsgs, anthropicMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return anthropicMsgs
}

func toAnthropicTools(toolsToConvert []ToolDefinition) []anthropicTool {
	if len(toolsToConvert) == 0 {
		return nil
	}
	anthropicTools := make([]anthropicTool, 0, len(toolsToConvert))
	for _, t := range toolsToConvert {
		anthropicTools = append(anthropicTools, anthropicTool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return anthropicTools
}

// parseAnthropicResponse keeps the content blocks in the exact order the API
// returned them; the orchestrator depends on that ordering when it interleaves
// text and tool dispatch.
func parseAnthropicResponse(body []byte) (*GenerationResult, error) {
	var anthropicResp anthropicResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal anthropic response: %w", err)
	}
	if len(anthropicResp.Content) == 0 {
		return nil, errors.New("no content returned from Anthropic")
	}
	blocks := make([]ContentBlock, 0, len(anthropicResp.Content))
	for _, block := range anthropicResp.Content {
		switch block.Type {
		case "text":
			blocks = append(blocks, ContentBlock{Type: BlockTypeText, Text: block.Text})
		case "tool_use":
			blocks = append(blocks, ContentBlock{
				Type:  BlockTypeToolUse,
				Name:  block.Name,
				Input: block.Input,
			})
		}
	}
	return &GenerationResult{
		Blocks: blocks,
		Usage: Usage{
			InputTokens:  anthropicResp.Usage.InputTokens,
			OutputTokens: anthropicResp.Usage.OutputTokens,
		},
	}, nil
}

func (c *AnthropicClient) doRequest(ctx context.Context, payload *bytes.Buffer) ([]byte, error) {
	req, err := c.createRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic request failed: %w", err)
	}
	body, readErr := io.ReadAll(resp.Body)
	if err := resp.Body.Close(); err != nil {
		log.Printf("Warning: Failed to close response body: %v", err)
	}
	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("anthropic API error: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (c *AnthropicClient) createRequest(ctx context.Context, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")
	return req, nil
}

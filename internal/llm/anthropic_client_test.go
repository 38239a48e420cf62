// In file: internal/llm/anthropic_client_test.go
package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicClient(t *testing.T, handler http.HandlerFunc) *AnthropicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewAnthropicClient("test-key")
	require.NoError(t, err)
	client.baseURL = srv.URL
	return client
}

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("")
	assert.Error(t, err)
}

func TestAnthropicGenerateRequestShape(t *testing.T) {
	var captured anthropicRequest
	var headers http.Header
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}],"usage":{"input_tokens":12,"output_tokens":3}}`))
	})

	tools := []ToolDefinition{{
		Name:        "get_forecast",
		Description: "Get the weather forecast",
		InputSchema: map[string]interface{}{"type": "object"},
	}}
	messages := []Message{{Role: RoleUser, Content: "weather in Oslo?"}}

	result, err := client.Generate(context.Background(), messages, &GenerationConfig{Model: "claude-test", MaxTokens: 500}, tools)
	require.NoError(t, err)

	assert.Equal(t, "test-key", headers.Get("x-api-key"))
	assert.Equal(t, anthropicVersion, headers.Get("anthropic-version"))

	assert.Equal(t, "claude-test", captured.Model)
	assert.Equal(t, 500, captured.MaxTokens)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
	require.Len(t, captured.Tools, 1)
	assert.Equal(t, "get_forecast", captured.Tools[0].Name)

	assert.Equal(t, 12, result.Usage.InputTokens)
	assert.Equal(t, 3, result.Usage.OutputTokens)
}

func TestAnthropicGenerateDefaultsMaxTokens(t *testing.T) {
	var captured anthropicRequest
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	_, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "claude-test"}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxTokens, captured.MaxTokens)
	assert.Nil(t, captured.Tools, "tools key omitted on follow-up calls")
}

func TestAnthropicGenerateKeepsBlockOrder(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[
			{"type":"text","text":"Checking the weather."},
			{"type":"tool_use","id":"tu_1","name":"get_forecast","input":{"city":"Oslo","days":2}},
			{"type":"text","text":"One moment."}
		],"usage":{"input_tokens":1,"output_tokens":1}}`))
	})

	result, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "weather?"}}, &GenerationConfig{Model: "claude-test"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Blocks, 3)
	assert.Equal(t, BlockTypeText, result.Blocks[0].Type)
	assert.Equal(t, "Checking the weather.", result.Blocks[0].Text)

	assert.Equal(t, BlockTypeToolUse, result.Blocks[1].Type)
	assert.Equal(t, "get_forecast", result.Blocks[1].Name)
	assert.JSONEq(t, `{"city":"Oslo","days":2}`, string(result.Blocks[1].Input))

	assert.Equal(t, BlockTypeText, result.Blocks[2].Type)
}

func TestAnthropicGenerateAPIError(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	})

	_, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "claude-test"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAnthropicGenerateEmptyContent(t *testing.T) {
	client := newTestAnthropicClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	})

	_, err := client.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "claude-test"}, nil)
	assert.Error(t, err)
}

func TestNewClientSelectsProvider(t *testing.T) {
	client, err := NewClient("claude-3-5-sonnet-20241022", "key")
	require.NoError(t, err)
	assert.IsType(t, &AnthropicClient{}, client)

	_, err = NewClient("mistral-large", "key")
	assert.Error(t, err)
}

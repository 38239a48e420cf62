// In file: internal/llm/gemini_client_test.go
package llm

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGeminiSchema(t *testing.T) {
	schema := toGeminiSchema(map[string]interface{}{
		"type":        "object",
		"description": "forecast arguments",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{"type": "string", "description": "city name"},
			"days": map[string]interface{}{"type": "integer"},
		},
		"required": []interface{}{"city"},
	})

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, "forecast arguments", schema.Description)
	assert.Equal(t, []string{"city"}, schema.Required)

	require.Contains(t, schema.Properties, "city")
	assert.Equal(t, genai.TypeString, schema.Properties["city"].Type)
	assert.Equal(t, "city name", schema.Properties["city"].Description)
	require.Contains(t, schema.Properties, "days")
	assert.Equal(t, genai.TypeInteger, schema.Properties["days"].Type)
}

func TestToGeminiSchemaNilDefaultsToObject(t *testing.T) {
	schema := toGeminiSchema(nil)
	assert.Equal(t, genai.TypeObject, schema.Type)
}

func TestToGeminiContentHistory(t *testing.T) {
	history := toGeminiContentHistory([]Message{
		{Role: RoleUser, Content: "list files"},
		{Role: RoleAssistant, Content: "which directory?"},
		{Role: RoleUser, Content: "/tmp"},
	})

	// The trailing message is the live prompt, not history.
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
}

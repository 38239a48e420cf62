// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the client for interacting with Google's Gemini models.
type GeminiClient struct {
	client *genai.GenerativeModel
}

var _ ModelClient = (*GeminiClient)(nil)

func NewGeminiClient(apiKey, modelID string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel(modelID)
	return &GeminiClient{client: model}, nil
}

// Generate performs a standard, blocking request to the Gemini API.
func (c *GeminiClient) Generate(
	ctx context.Context,
	messages []Message,
	config *GenerationConfig,
	tools []ToolDefinition,
) (*GenerationResult, error) {
	c.configureModel(config, tools)
	chat := c.client.StartChat()
	chat.History = toGeminiContentHistory(messages)

	lastMessage := messages[len(messages)-1]
	resp, err := chat.SendMessage(ctx, genai.Text(lastMessage.Content))
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

// configureModel applies dynamic settings using the SDK's setter methods for safety.
func (c *GeminiClient) configureModel(config *GenerationConfig, tools []ToolDefinition) {
	if config != nil && config.MaxTokens > 0 {
		c.client.SetMaxOutputTokens(int32(config.MaxTokens))
	} else {
		c.client.SetMaxOutputTokens(defaultMaxTokens)
	}

	if len(tools) > 0 {
		c.client.Tools = toGeminiTools(tools)
	} else {
		c.client.Tools = nil
	}
}

// toGeminiTools converts our internal tool definition to the Gemini SDK's format.
func toGeminiTools(toolsToConvert []ToolDefinition) []*genai.Tool {
	var geminiTools []*genai.Tool
	for _, t := range toolsToConvert {
		funcDecl := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  toGeminiSchema(t.InputSchema),
		}
		geminiTools = append(geminiTools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{funcDecl},
		})
	}
	return geminiTools
}

// toGeminiSchema converts a JSON-schema-like map into the Gemini SDK's typed
// schema. Only the subset the tool host actually advertises (type, description,
// properties, required) is translated.
func toGeminiSchema(s map[string]interface{}) *genai.Schema {
	if s == nil {
		return &genai.Schema{Type: genai.TypeObject}
	}
	genaiSchema := &genai.Schema{}
	if desc, ok := s["description"].(string); ok {
		genaiSchema.Description = desc
	}
	switch s["type"] {
	case "object":
		genaiSchema.Type = genai.TypeObject
	case "string":
		genaiSchema.Type = genai.TypeString
	case "number":
		genaiSchema.Type = genai.TypeNumber
	case "integer":
		genaiSchema.Type = genai.TypeInteger
	case "boolean":
		genaiSchema.Type = genai.TypeBoolean
	case "array":
		genaiSchema.Type = genai.TypeArray
	default:
		genaiSchema.Type = genai.TypeObject
	}
	if required, ok := s["required"].([]interface{}); ok {
		for _, r := range required {
			if name, ok := r.(string); ok {
				genaiSchema.Required = append(genaiSchema.Required, name)
			}
		}
	}
	if properties, ok := s["properties"].(map[string]interface{}); ok {
		genaiSchema.Properties = make(map[string]*genai.Schema, len(properties))
		for k, v := range properties {
			if propMap, ok := v.(map[string]interface{}); ok {
				genaiSchema.Properties[k] = toGeminiSchema(propMap)
			}
		}
	}
	return genaiSchema
}

// toGeminiContentHistory converts our message history to the Gemini SDK's format.
func toGeminiContentHistory(messages []Message) []*genai.Content {
	var history []*genai.Content
	// The last message is the new prompt, so we exclude it from history
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return history
}

// parseGeminiResponse converts a Gemini API response into our internal
// GenerationResult, keeping the parts in the order the model emitted them.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*GenerationResult, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	candidate := resp.Candidates[0]
	blocks := make([]ContentBlock, 0, len(candidate.Content.Parts))

	for _, part := range candidate.Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			blocks = append(blocks, ContentBlock{Type: BlockTypeText, Text: string(v)})
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				log.Printf("Warning: could not marshal tool call args: %v", err)
				continue
			}
			blocks = append(blocks, ContentBlock{
				Type:  BlockTypeToolUse,
				Name:  v.Name,
				Input: args,
			})
		}
	}

	result := &GenerationResult{Blocks: blocks}
	if resp.UsageMetadata != nil {
		result.Usage.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.Usage.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return result, nil
}

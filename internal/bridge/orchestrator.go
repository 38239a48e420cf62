// In file: internal/bridge/orchestrator.go
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/dileep-u-k/mcp-bridge/internal/llm"
)

// ProcessQuery resolves one natural-language query into a final answer.
//
// The flow is strictly sequential: one model call with the full tool catalog
// attached, then the response blocks are dispatched in order. Text blocks are
// collected verbatim; each tool_use block is resolved against the tool host
// immediately, its result fed back to the model as a fresh user turn, and the
// follow-up's leading text collected — all before the next block is touched.
// The follow-up carries no catalog, so it can only answer with text; if it
// nevertheless opens with something else, an empty fragment is recorded. A
// follow-up requesting another tool is deliberately not expanded.
//
// On any failure no partial text is returned: the caller gets the error kind
// (ErrModelService or ErrToolHost) and the session stays usable.
func (s *Session) ProcessQuery(ctx context.Context, query string) (string, error) {
	conversation := []llm.Message{{Role: llm.RoleUser, Content: query}}
	var finalText []string

	result, err := s.model.Generate(ctx, conversation, s.config, s.catalog)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelService, err)
	}

	for _, block := range result.Blocks {
		switch block.Type {
		case llm.BlockTypeText:
			finalText = append(finalText, block.Text)

		case llm.BlockTypeToolUse:
			args := compactArgs(block.Input)
			log.Printf("🛠️  Calling tool %s with args %s", block.Name, args)

			toolResult, err := s.host.CallTool(ctx, block.Name, block.Input)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrToolHost, err)
			}
			finalText = append(finalText, fmt.Sprintf("[Calling tool %s with args %s]", block.Name, args))

			// The tool result re-enters the conversation as a user turn, so
			// the history still ends on a user role before the next call.
			conversation = append(conversation, llm.Message{Role: llm.RoleUser, Content: toolResult})

			followUp, err := s.model.Generate(ctx, conversation, s.config, nil)
			if err != nil {
				return "", fmt.Errorf("%w: %v", ErrModelService, err)
			}
			finalText = append(finalText, firstText(followUp))
		}
	}

	return strings.Join(finalText, "\n"), nil
}

// compactArgs renders tool arguments for the trace line: the raw JSON exactly
// as the model produced it, whitespace squeezed, key order untouched.
func compactArgs(input json.RawMessage) string {
	if len(input) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, input); err != nil {
		return string(input)
	}
	return buf.String()
}

// firstText extracts the text of a follow-up response's first block, or the
// empty string when the follow-up opened with anything else.
func firstText(result *llm.GenerationResult) string {
	if len(result.Blocks) > 0 && result.Blocks[0].Type == llm.BlockTypeText {
		return result.Blocks[0].Text
	}
	return ""
}

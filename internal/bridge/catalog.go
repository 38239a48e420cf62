// In file: internal/bridge/catalog.go
package bridge

import (
	"github.com/dileep-u-k/mcp-bridge/internal/llm"
	"github.com/dileep-u-k/mcp-bridge/internal/mcp"
)

// BuildCatalog normalizes the tool descriptors advertised by the tool host
// into the shape the model clients expect. It runs once per connection; the
// result is cached on the Session and shared read-only across queries.
func BuildCatalog(tools []mcp.Tool) []llm.ToolDefinition {
	catalog := make([]llm.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		catalog = append(catalog, llm.ToolDefinition{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return catalog
}

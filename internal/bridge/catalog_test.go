// In file: internal/bridge/catalog_test.go
package bridge

import (
	"testing"

	"github.com/dileep-u-k/mcp-bridge/internal/llm"
	"github.com/dileep-u-k/mcp-bridge/internal/mcp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{"type": "string"},
		},
		"required": []interface{}{"path"},
	}
	tools := []mcp.Tool{
		{Name: "list_files", Description: "List files in a directory", InputSchema: schema},
		{Name: "read_file", Description: "Read one file"},
	}

	catalog := BuildCatalog(tools)
	require.Len(t, catalog, 2)

	assert.Equal(t, "list_files", catalog[0].Name)
	assert.Equal(t, "List files in a directory", catalog[0].Description)
	assert.Equal(t, schema, catalog[0].InputSchema)

	assert.Equal(t, "read_file", catalog[1].Name)
	assert.Nil(t, catalog[1].InputSchema)
}

func TestBuildCatalogEmpty(t *testing.T) {
	assert.Empty(t, BuildCatalog(nil))
}

func TestSessionCloseDelegatesOnce(t *testing.T) {
	host := &fakeHost{}
	session := NewSession(host, &scriptedModel{}, nil, &llm.GenerationConfig{Model: "claude-test"})

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())
	assert.Equal(t, 2, host.closeCalls, "session close always delegates; idempotence lives in the host client")
}

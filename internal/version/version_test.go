// In file: internal/version/version_test.go
package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateVersionedCacheKey(t *testing.T) {
	key := GenerateVersionedCacheKey("bridgecache", "what is 2+2")

	parts := strings.Split(key, ":")
	assert.Len(t, parts, 3)
	assert.Equal(t, "bridgecache", parts[0])
	assert.Len(t, parts[1], 64, "prompt hash is hex-encoded SHA-256")

	// Same query, same key; different query, different key.
	assert.Equal(t, key, GenerateVersionedCacheKey("bridgecache", "what is 2+2"))
	assert.NotEqual(t, key, GenerateVersionedCacheKey("bridgecache", "what is 3+3"))
}

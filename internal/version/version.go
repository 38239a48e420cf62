// In file: internal/version/version.go

// Package version centralizes the versioning for the logical components of
// the bridge whose behavior shapes cached answers.
//
// Including these version strings in cache keys automatically invalidates
// stale cached entries when the underlying logic changes: bump Catalog after
// the tool host's tool set or semantics change, and PromptLogic after the
// orchestration flow changes, and any answer cached under the old behavior
// will simply never be matched again.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the cache-relevant parts of
// the application. Manually increment a version here before deploying a
// change to that component.
var ComponentVersions = struct {
	// Catalog tracks the tool host's advertised tool set and tool behavior.
	Catalog string

	// PromptLogic tracks the query-resolution flow itself, including the
	// trace-line format and follow-up policy.
	PromptLogic string
}{
	Catalog:     "v1.0",
	PromptLogic: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware key for
// caching resolved answers: a prefix, a SHA-256 hash of the query, and the
// current component versions.
//
// Example output: "bridgecache:a1b2c3d4...:cv1.0_pv1.0"
func GenerateVersionedCacheKey(prefix, query string) string {
	hasher := sha256.New()
	hasher.Write([]byte(query))
	queryHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("cv%s_pv%s",
		ComponentVersions.Catalog,
		ComponentVersions.PromptLogic,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, queryHash, versionString)
}

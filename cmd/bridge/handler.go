// In file: cmd/bridge/handler.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dileep-u-k/mcp-bridge/internal/bridge"
	cacheversion "github.com/dileep-u-k/mcp-bridge/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const responseCacheTTL = 24 * time.Hour

// QueryProcessor is the slice of the session the HTTP surface consumes.
type QueryProcessor interface {
	ProcessQuery(ctx context.Context, query string) (string, error)
}

// QueryRequest is the inbound payload of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryResponse is the outbound payload of a successfully resolved query. A
// failed query never produces this shape: failures are {"error": ...} with a
// non-2xx status, so callers can always tell the two apart even when the
// answer text is empty.
type QueryResponse struct {
	Result      string `json:"result"`
	ModelUsed   string `json:"model_used"`
	LatencyMS   int64  `json:"latency_ms"`
	CacheStatus string `json:"cache_status"`
}

// BridgeHandler wires the HTTP surface to the query orchestrator, with an
// optional redis memo of resolved answers in front of it.
type BridgeHandler struct {
	session QueryProcessor
	modelID string
	rdb     *redis.Client
}

func NewBridgeHandler(session QueryProcessor, modelID string, rdb *redis.Client) *BridgeHandler {
	return &BridgeHandler{
		session: session,
		modelID: modelID,
		rdb:     rdb,
	}
}

func (h *BridgeHandler) HandleQuery(c *gin.Context) {
	startTime := time.Now()
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	log.Printf("--- New Query ('%.40s...') ---", req.Query)

	cacheKey := cacheversion.GenerateVersionedCacheKey("bridgecache", req.Query)
	if cachedVal, found := h.checkCache(c.Request.Context(), cacheKey); found {
		var cachedResp QueryResponse
		if json.Unmarshal([]byte(cachedVal), &cachedResp) == nil {
			log.Println("✅ Cache HIT")
			cachedResp.LatencyMS = time.Since(startTime).Milliseconds()
			cachedResp.CacheStatus = "HIT"
			c.JSON(http.StatusOK, cachedResp)
			return
		}
	}

	result, err := h.session.ProcessQuery(c.Request.Context(), req.Query)
	if err != nil {
		log.Printf("❌ Query failed: %v", err)
		status := http.StatusInternalServerError
		if errors.Is(err, bridge.ErrModelService) || errors.Is(err, bridge.ErrToolHost) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	finalResponse := QueryResponse{
		Result:      result,
		ModelUsed:   h.modelID,
		LatencyMS:   time.Since(startTime).Milliseconds(),
		CacheStatus: "MISS",
	}

	if respBytes, err := json.Marshal(finalResponse); err == nil {
		h.setCache(c.Request.Context(), cacheKey, string(respBytes))
	}

	c.JSON(http.StatusOK, finalResponse)
}

// HandleHealth reports liveness; the session itself has no health probe, so a
// connected process answers healthy.
func (h *BridgeHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": h.modelID})
}

// checkCache looks a resolved answer up in redis. Cache use is best-effort:
// any redis failure degrades to a miss.
func (h *BridgeHandler) checkCache(ctx context.Context, key string) (string, bool) {
	if h.rdb == nil {
		return "", false
	}
	val, err := h.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (h *BridgeHandler) setCache(ctx context.Context, key, value string) {
	if h.rdb == nil {
		return
	}
	if err := h.rdb.Set(ctx, key, value, responseCacheTTL).Err(); err != nil {
		log.Printf("WARNING: Failed to cache response: %v", err)
	}
}

// In file: cmd/bridge/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dileep-u-k/mcp-bridge/internal/bridge"
	"github.com/dileep-u-k/mcp-bridge/internal/llm"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the entry point for the application.
// Its primary role is the "Composition Root": it loads configuration,
// connects the tool host, injects dependencies, and starts the server.
func main() {
	interactive := flag.Bool("i", false, "run an interactive query loop instead of the HTTP server")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting MCP Bridge | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	modelClient, err := llm.NewClient(cfg.ModelID, cfg.APIKey)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create model client: %v", err)
	}

	// A startup failure here (bad script extension, spawn failure, listing
	// failure) is fatal by contract: no query can be served without a
	// connected tool host and its catalog.
	session, err := bridge.Connect(context.Background(), cfg.ServerScript, modelClient, &llm.GenerationConfig{
		Model:     cfg.ModelID,
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		log.Fatalf("❌ FATAL: Could not connect to tool host: %v", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("WARNING: session close: %v", err)
		}
	}()
	log.Printf("✅ Session established with %d tools.", len(session.Catalog()))

	if *interactive {
		runQueryLoop(session)
		return
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
		}
		log.Println("✅ Response cache connected.")
	}

	bridgeHandler := NewBridgeHandler(session, cfg.ModelID, rdb)

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	engine.GET("/healthz", bridgeHandler.HandleHealth)
	v1 := engine.Group("/api/v1")
	{
		v1.POST("/query", bridgeHandler.HandleQuery)
	}

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Bridge is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}

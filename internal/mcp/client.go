// In file: internal/mcp/client.go
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Client is a connected MCP tool host. It owns the child process and the
// stdio channel, and serializes nothing itself: callers are expected to issue
// one call at a time, which is how the bridge drives it.
type Client struct {
	transport *stdioTransport
	cmd       *exec.Cmd
	server    serverInfo

	pending sync.Map // request ID -> chan *Response
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// serverCommand resolves the interpreter for a tool host entry point from its
// file extension.
func serverCommand(scriptPath string) (string, error) {
	switch filepath.Ext(scriptPath) {
	case ".py":
		return "python3", nil
	case ".js":
		return "node", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScriptType, scriptPath)
	}
}

// Connect spawns the tool host subprocess, establishes the stdio channel and
// completes the MCP initialize handshake. Any failure is fatal: the partially
// started process is torn down and no Client is returned.
func Connect(ctx context.Context, scriptPath string) (*Client, error) {
	interpreter, err := serverCommand(scriptPath)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(interpreter, scriptPath)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create stdin pipe: %v", ErrConnection, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create stdout pipe: %v", ErrConnection, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create stderr pipe: %v", ErrConnection, err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start %s %s: %v", ErrConnection, interpreter, scriptPath, err)
	}

	c := &Client{
		transport: newStdioTransport(stdout, stdin),
		cmd:       cmd,
		done:      make(chan struct{}),
	}

	go drainStderr(stderr)
	go c.receiveLoop()
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("Tool host process exited: %v", err)
		}
	}()

	if err := c.initialize(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: initialize handshake failed: %v", ErrConnection, err)
	}
	log.Printf("✅ Connected to tool host %q (%s)", c.server.Name, c.server.Version)
	return c, nil
}

// initialize performs the MCP handshake: an initialize request followed by
// the initialized notification.
func (c *Client) initialize(ctx context.Context) error {
	resp, err := c.call(ctx, methodInitialize, initializeParams{
		ProtocolVersion: protocolVersion,
		Capabilities:    map[string]interface{}{},
		ClientInfo:      clientInfo{Name: "mcp-bridge", Version: "1.0.0"},
	})
	if err != nil {
		return err
	}
	var result initializeResult
	if err := decodeResult(resp.Result, &result); err != nil {
		return err
	}
	c.server = result.ServerInfo

	data, err := json.Marshal(Notification{JSONRPC: jsonrpcVersion, Method: methodInitialized})
	if err != nil {
		return fmt.Errorf("failed to marshal initialized notification: %w", err)
	}
	return c.transport.Send(data)
}

// ListTools fetches the host's tool catalog. A failure here is a connection
// failure: the caller treats it as fatal to startup, not to a query.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	resp, err := c.call(ctx, methodListTools, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: tools/list failed: %v", ErrConnection, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: tools/list failed: %s", ErrConnection, resp.Error.Message)
	}
	var result listToolsResult
	if err := decodeResult(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return result.Tools, nil
}

// CallTool invokes a named tool with raw JSON arguments and returns the
// result flattened to text, newline-joined if the host returned several
// content fragments.
func (c *Client) CallTool(ctx context.Context, name string, args json.RawMessage) (string, error) {
	resp, err := c.call(ctx, methodCallTool, callToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", fmt.Errorf("tool %q failed: %s", name, resp.Error.Message)
	}
	var result callToolResult
	if err := decodeResult(resp.Result, &result); err != nil {
		return "", err
	}
	text := flattenContent(result.Content)
	if result.IsError {
		return "", fmt.Errorf("tool %q reported an error: %s", name, text)
	}
	return text, nil
}

// ServerName returns the name the host reported during the handshake.
func (c *Client) ServerName() string {
	return c.server.Name
}

// Close shuts the channel down exactly once: later calls are no-ops. The
// child gets an interrupt first and a kill if that fails.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.Close()
		if c.cmd != nil && c.cmd.Process != nil {
			if err := c.cmd.Process.Signal(os.Interrupt); err != nil {
				if err := c.cmd.Process.Kill(); err != nil {
					log.Printf("Warning: failed to kill tool host process: %v", err)
				}
			}
		}
	})
	return c.closeErr
}

// call sends one request and blocks until its response, context expiry, or
// loss of the channel.
func (c *Client) call(ctx context.Context, method string, params interface{}) (*Response, error) {
	id := uuid.NewString()
	req := Request{JSONRPC: jsonrpcVersion, ID: id, Method: method, Params: params}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	responseCh := make(chan *Response, 1)
	c.pending.Store(id, responseCh)
	defer c.pending.Delete(id)

	if err := c.transport.Send(data); err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", method, err)
	}

	select {
	case resp := <-responseCh:
		return resp, nil
	case <-c.done:
		return nil, fmt.Errorf("tool host channel closed while awaiting %s response", method)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// receiveLoop reads messages off the channel and routes responses to their
// waiting callers by request ID.
func (c *Client) receiveLoop() {
	defer close(c.done)
	for {
		data, err := c.transport.Receive()
		if err != nil {
			if err != io.EOF && !c.transport.IsClosed() {
				log.Printf("Error receiving from tool host: %v", err)
			}
			return
		}
		if len(data) == 0 {
			continue
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			log.Printf("Failed to parse tool host message: %s", string(data))
			continue
		}
		if resp.ID == "" {
			// Server-initiated notification; the bridge has no use for these.
			continue
		}
		if ch, ok := c.pending.Load(resp.ID); ok {
			ch.(chan *Response) <- &resp
		} else {
			log.Printf("No pending request for response ID %q", resp.ID)
		}
	}
}

func drainStderr(stderr io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			log.Printf("tool host stderr: %s", strings.TrimRight(string(buf[:n]), "\n"))
		}
		if err != nil {
			return
		}
	}
}

func flattenContent(content []Content) string {
	parts := make([]string, 0, len(content))
	for _, item := range content {
		if item.Type == "text" {
			parts = append(parts, item.Text)
		}
	}
	return strings.Join(parts, "\n")
}

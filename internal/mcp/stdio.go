// In file: internal/mcp/stdio.go
package mcp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"
)

// stdioTransport frames JSON-RPC messages over a reader/writer pair, one
// message per newline-terminated line. In production the pair is the child
// process's stdout/stdin; tests substitute in-memory pipes.
type stdioTransport struct {
	reader *bufio.Reader
	writer io.Writer

	writeMutex sync.Mutex
	closeMutex sync.Mutex
	closed     bool
}

func newStdioTransport(reader io.Reader, writer io.Writer) *stdioTransport {
	return &stdioTransport{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// Send writes one message followed by exactly one newline.
func (t *stdioTransport) Send(data []byte) error {
	t.closeMutex.Lock()
	if t.closed {
		t.closeMutex.Unlock()
		return fmt.Errorf("transport is closed")
	}
	t.closeMutex.Unlock()

	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()

	if len(data) == 0 {
		return fmt.Errorf("cannot send empty message")
	}
	data = bytes.TrimRight(data, "\n")
	data = append(data, '\n')

	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Receive blocks until the next newline-delimited message arrives. It returns
// io.EOF once the peer closes its end of the channel.
func (t *stdioTransport) Receive() ([]byte, error) {
	line, err := t.reader.ReadBytes('\n')
	if err != nil {
		if err == io.EOF && len(bytes.TrimSpace(line)) > 0 {
			// Partial final line, still a complete JSON document.
			return bytes.TrimSpace(line), nil
		}
		return nil, err
	}
	return bytes.TrimSpace(line), nil
}

// Close marks the transport closed and closes the underlying streams when
// they support it. Safe to call more than once.
func (t *stdioTransport) Close() error {
	t.closeMutex.Lock()
	defer t.closeMutex.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	if closer, ok := t.writer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	return firstErr
}

// IsClosed reports whether Close has been called.
func (t *stdioTransport) IsClosed() bool {
	t.closeMutex.Lock()
	defer t.closeMutex.Unlock()
	return t.closed
}

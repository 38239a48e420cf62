// In file: internal/mcp/stdio_test.go
package mcp

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioSendAppendsSingleNewline(t *testing.T) {
	out := new(bytes.Buffer)
	transport := newStdioTransport(strings.NewReader(""), out)

	require.NoError(t, transport.Send([]byte(`{"jsonrpc":"2.0"}`)))
	assert.Equal(t, "{\"jsonrpc\":\"2.0\"}\n", out.String())

	out.Reset()
	require.NoError(t, transport.Send([]byte("{}\n\n")))
	assert.Equal(t, "{}\n", out.String(), "trailing newlines collapse to one")
}

func TestStdioSendRejectsEmptyMessage(t *testing.T) {
	transport := newStdioTransport(strings.NewReader(""), new(bytes.Buffer))
	assert.Error(t, transport.Send(nil))
}

func TestStdioReceiveSplitsLines(t *testing.T) {
	in := strings.NewReader("{\"id\":\"1\"}\n{\"id\":\"2\"}\n")
	transport := newStdioTransport(in, new(bytes.Buffer))

	first, err := transport.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(first))

	second, err := transport.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"2"}`, string(second))

	_, err = transport.Receive()
	assert.Equal(t, io.EOF, err)
}

func TestStdioReceivePartialFinalLine(t *testing.T) {
	// A host that exits without a trailing newline still delivers its last
	// message.
	in := strings.NewReader(`{"id":"last"}`)
	transport := newStdioTransport(in, new(bytes.Buffer))

	data, err := transport.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"id":"last"}`, string(data))
}

func TestStdioCloseIsIdempotent(t *testing.T) {
	transport := newStdioTransport(strings.NewReader(""), new(bytes.Buffer))

	require.NoError(t, transport.Close())
	require.NoError(t, transport.Close())
	assert.True(t, transport.IsClosed())

	err := transport.Send([]byte("{}"))
	assert.Error(t, err, "send after close must fail")
}

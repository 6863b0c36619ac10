// Package mcp exposes the dispatcher's tools over the Model Context Protocol,
// on stdio or streamable HTTP.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lukman83/youtube-mcp/internal/dispatch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const ServerName = "youtube-mcp"

// Version is reported in the MCP handshake and the health endpoint.
var Version = "1.0.0"

// NewServer builds an MCP server advertising tools. Every call is forwarded
// to d so tool errors come back as isError results, not protocol faults.
func NewServer(d *dispatch.Dispatcher, tools []Tool) *server.MCPServer {
	s := server.NewMCPServer(
		ServerName,
		Version,
		server.WithToolCapabilities(true),
	)

	forward := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return d.Call(ctx, request.Params.Name, request.GetArguments()), nil
	}
	for _, t := range tools {
		s.AddTool(t.Spec, forward)
	}
	return s
}

// Serve runs the MCP server on stdin/stdout until ctx is cancelled or stdin
// closes.
func Serve(ctx context.Context, d *dispatch.Dispatcher, tools []Tool) error {
	err := serveStdio(ctx, d, tools, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func serveStdio(ctx context.Context, d *dispatch.Dispatcher, tools []Tool, in io.Reader, out io.Writer) error {
	w := &lockedWriter{w: out}
	return server.NewStdioServer(NewServer(d, tools)).Listen(ctx, interceptUnknownTools(ctx, d, in, w), w)
}

// unknownToolResponse answers a tools/call request naming a tool the
// dispatcher lacks with an isError result instead of the SDK's method-level
// JSON-RPC error. ok is false for every other message.
func unknownToolResponse(ctx context.Context, d *dispatch.Dispatcher, raw []byte) (resp map[string]any, ok bool) {
	var msg struct {
		ID     json.RawMessage `json:"id"`
		Method string          `json:"method"`
		Params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		} `json:"params"`
	}
	if json.Unmarshal(raw, &msg) != nil || msg.Method != "tools/call" || len(msg.ID) == 0 || d.Has(msg.Params.Name) {
		return nil, false
	}
	return map[string]any{
		"jsonrpc": "2.0",
		"id":      msg.ID,
		"result":  d.Call(ctx, msg.Params.Name, msg.Params.Arguments),
	}, true
}

// interceptUnknownTools returns a reader of the stdio lines the SDK should
// see. Calls to unknown tools are answered on out directly and dropped.
func interceptUnknownTools(ctx context.Context, d *dispatch.Dispatcher, in io.Reader, out io.Writer) io.Reader {
	pr, pw := io.Pipe()
	go func() {
		r := bufio.NewReader(in)
		for {
			line, err := r.ReadBytes('\n')
			if len(line) > 0 {
				if resp, ok := unknownToolResponse(ctx, d, line); ok {
					if werr := writeLine(out, resp); werr != nil {
						pw.CloseWithError(werr)
						return
					}
				} else if _, werr := pw.Write(line); werr != nil {
					return
				}
			}
			if err != nil {
				pw.CloseWithError(err)
				return
			}
		}
	}()
	return pr
}

func writeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// lockedWriter serializes writes from the SDK and the unknown-tool intercept.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

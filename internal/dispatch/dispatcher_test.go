package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type echoParams struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"min=1,max=50"`
}

func (p *echoParams) SetDefaults() {
	if p.MaxResults == 0 {
		p.MaxResults = 10
	}
}

type echoResult struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

func echo(_ context.Context, p echoParams) (*echoResult, error) {
	return &echoResult{Query: p.Query, Count: p.MaxResults}, nil
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	assert.Equal(t, "text", tc.Type)
	return tc.Text
}

func newEchoDispatcher() *Dispatcher {
	d := New()
	d.Register("echo_search", Typed(echo))
	d.Register("echo_fail", func(context.Context, map[string]any) (any, error) {
		return nil, errors.New("failed to search videos: quota exceeded")
	})
	d.Register("echo_nil", Typed(func(context.Context, echoParams) (*echoResult, error) {
		return nil, nil
	}))
	return d
}

func TestCallSuccess(t *testing.T) {
	d := newEchoDispatcher()

	res := d.Call(context.Background(), "echo_search", map[string]any{"query": "cats", "maxResults": float64(3)})
	require.False(t, res.IsError)

	var out echoResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
	assert.Equal(t, echoResult{Query: "cats", Count: 3}, out)
}

func TestCallAppliesDefaults(t *testing.T) {
	d := newEchoDispatcher()

	res := d.Call(context.Background(), "echo_search", map[string]any{"query": "cats"})
	require.False(t, res.IsError)

	var out echoResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
	assert.Equal(t, 10, out.Count)
}

func TestCallNilResultRendersNull(t *testing.T) {
	res := newEchoDispatcher().Call(context.Background(), "echo_nil", map[string]any{"query": "x"})
	require.False(t, res.IsError)
	assert.Equal(t, "null", textOf(t, res))
}

func TestCallUnknownTool(t *testing.T) {
	d := newEchoDispatcher()

	res := d.Call(context.Background(), "no_such_tool", nil)
	require.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "no_such_tool")

	_, err := d.Invoke(context.Background(), "no_such_tool", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestUnknownToolSuggestion(t *testing.T) {
	d := newEchoDispatcher()

	_, err := d.Invoke(context.Background(), "echosearch", nil)
	var ute *UnknownToolError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "echo_search", ute.Suggestion)
	assert.Contains(t, err.Error(), "did you mean echo_search?")
}

func TestCallServiceError(t *testing.T) {
	res := newEchoDispatcher().Call(context.Background(), "echo_fail", nil)
	require.True(t, res.IsError)
	assert.Equal(t, "Error: failed to search videos: quota exceeded", textOf(t, res))
}

func TestCallValidationError(t *testing.T) {
	d := newEchoDispatcher()

	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing required", map[string]any{}, "query is required"},
		{"above max", map[string]any{"query": "x", "maxResults": 500}, "maxResults must be at most 50"},
		{"wrong type", map[string]any{"query": "x", "maxResults": map[string]any{}}, "maxResults"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := d.Call(context.Background(), "echo_search", tc.args)
			require.True(t, res.IsError)
			text := textOf(t, res)
			assert.Contains(t, text, "invalid arguments")
			assert.Contains(t, text, tc.want)
		})
	}
}

func TestCallRecoversPanic(t *testing.T) {
	d := New()
	d.Register("boom", func(context.Context, map[string]any) (any, error) {
		panic("kaboom")
	})
	res := d.Call(context.Background(), "boom", nil)
	require.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "kaboom")
}

func TestNames(t *testing.T) {
	d := newEchoDispatcher()
	assert.Equal(t, []string{"echo_fail", "echo_nil", "echo_search"}, d.Names())
	assert.True(t, d.Has("echo_fail"))
	assert.False(t, d.Has("echo"))
}

func TestBindWeakTyping(t *testing.T) {
	type p struct {
		Parts []string `json:"parts"`
		Limit int      `json:"limit"`
	}
	got, err := Bind[p](map[string]any{"parts": "snippet", "limit": "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"snippet"}, got.Parts)
	assert.Equal(t, 4, got.Limit)
}

func TestCallIgnoresUndeclaredKeys(t *testing.T) {
	res := newEchoDispatcher().Call(context.Background(), "echo_search", map[string]any{"query": "x", "extra": 1})
	require.False(t, res.IsError, textOf(t, res))

	var out echoResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &out))
	assert.Equal(t, echoResult{Query: "x", Count: 10}, out)
}

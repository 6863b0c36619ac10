package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/lukman83/youtube-mcp/internal/dispatch"
	"github.com/lukman83/youtube-mcp/internal/logger"
	"github.com/lukman83/youtube-mcp/internal/models"
	"github.com/lukman83/youtube-mcp/internal/youtube"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type noFetcher struct{}

func (noFetcher) Fetch(context.Context, string, string) (*models.Transcript, error) {
	return nil, io.EOF
}

// newTestDispatcher wires the real catalog over a client without an API
// key, so every service call fails fast without touching the network.
func newTestDispatcher() (*dispatch.Dispatcher, []Tool) {
	svcs := youtube.NewServices(youtube.NewClient(youtube.Config{}), noFetcher{}, "en")
	tools := Catalog(svcs)
	d := dispatch.New()
	RegisterTools(d, tools)
	return d, tools
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result *struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
		Tools   []struct {
			Name        string `json:"name"`
			InputSchema struct {
				Required []string `json:"required"`
			} `json:"inputSchema"`
		} `json:"tools"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestCatalogRegistersEveryTool(t *testing.T) {
	d, tools := newTestDispatcher()
	assert.Len(t, tools, 10)
	assert.Equal(t, []string{
		ToolGetChannel,
		ToolListChannelVideos,
		ToolGetPlaylist,
		ToolGetPlaylistItems,
		ToolGetTranscript,
		ToolGetRelatedVideos,
		ToolGetTrendingVideos,
		ToolGetVideo,
		ToolGetVideoStats,
		ToolSearchVideos,
	}, d.Names())

	for _, tool := range tools {
		require.NotNil(t, tool.Spec.Annotations.ReadOnlyHint, tool.Spec.Name)
		assert.True(t, *tool.Spec.Annotations.ReadOnlyHint, tool.Spec.Name)
	}
}

func TestServerListsTools(t *testing.T) {
	d, tools := newTestDispatcher()
	s := NewServer(d, tools)

	msg := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.NotNil(t, resp.Result)
	require.Len(t, resp.Result.Tools, 10)

	required := map[string][]string{}
	for _, tool := range resp.Result.Tools {
		required[tool.Name] = tool.InputSchema.Required
	}
	assert.Equal(t, []string{"videoId"}, required[ToolGetVideo])
	assert.Equal(t, []string{"query"}, required[ToolSearchVideos])
	assert.Empty(t, required[ToolGetTrendingVideos])
}

func TestServerForwardsToDispatcher(t *testing.T) {
	d, tools := newTestDispatcher()
	s := NewServer(d, tools)

	msg := s.HandleMessage(context.Background(), json.RawMessage(
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"videos_getVideo","arguments":{"videoId":"abc123"}}}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.IsError)
	require.Len(t, resp.Result.Content, 1)
	assert.Equal(t, "Error: YOUTUBE_API_KEY environment variable is not set", resp.Result.Content[0].Text)
}

func postRPC(t *testing.T, h http.Handler, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeRPC(t *testing.T, rec *httptest.ResponseRecorder) rpcResponse {
	t.Helper()
	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHTTPUnknownToolIsEnvelope(t *testing.T) {
	d, tools := newTestDispatcher()
	h := NewHTTPHandler(d, tools, HTTPConfig{})

	for _, path := range []string{"/mcp", "/api/mcp"} {
		rec := postRPC(t, h, path,
			`{"jsonrpc":"2.0","id":"req-7","method":"tools/call","params":{"name":"videos_getVid","arguments":{}}}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeRPC(t, rec)
		assert.JSONEq(t, `"req-7"`, string(resp.ID))
		assert.Nil(t, resp.Error)
		require.NotNil(t, resp.Result)
		assert.True(t, resp.Result.IsError)
		require.Len(t, resp.Result.Content, 1)
		assert.Equal(t, "text", resp.Result.Content[0].Type)
		assert.Contains(t, resp.Result.Content[0].Text, "Error: Unknown tool: videos_getVid")
		assert.Contains(t, resp.Result.Content[0].Text, "did you mean videos_getVideo")
	}
}

func TestHTTPKnownToolErrorEnvelope(t *testing.T) {
	d, tools := newTestDispatcher()
	h := NewHTTPHandler(d, tools, HTTPConfig{})

	rec := postRPC(t, h, "/mcp",
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"videos_searchVideos","arguments":{"query":"cats","maxResults":500}}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeRPC(t, rec)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.IsError)
	assert.Contains(t, resp.Result.Content[0].Text, "maxResults must be at most 50")
}

func TestHTTPHealth(t *testing.T) {
	d, tools := newTestDispatcher()

	for _, configured := range []bool{false, true} {
		h := NewHTTPHandler(d, tools, HTTPConfig{
			APIKey:        "secret",
			KeyConfigured: func() bool { return configured },
		})
		for _, path := range []string{"/healthz", "/api/health"} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			require.Equal(t, http.StatusOK, rec.Code, "health is not behind auth")

			var health models.Health
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
			assert.Equal(t, "ok", health.Status)
			assert.Equal(t, ServerName, health.Service)
			assert.Equal(t, configured, health.KeyConfigured)
			assert.False(t, health.Timestamp.IsZero())
		}
	}
}

func TestHTTPBearerAuth(t *testing.T) {
	d, tools := newTestDispatcher()
	h := NewHTTPHandler(d, tools, HTTPConfig{APIKey: "secret"})
	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope"}}`

	rec := postRPC(t, h, "/mcp", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")

	rec = postRPC(t, h, "/mcp", body, http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")

	rec = postRPC(t, h, "/mcp", body, http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeRPC(t, rec).Result.IsError)
}

func TestHTTPBannerAndRequestID(t *testing.T) {
	d, tools := newTestDispatcher()
	h := NewHTTPHandler(d, tools, HTTPConfig{})

	for _, path := range []string{"/", "/api"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

		var banner struct {
			Name  string   `json:"name"`
			Tools []string `json:"tools"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banner))
		assert.Equal(t, ServerName, banner.Name)
		assert.Len(t, banner.Tools, 10)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPRejectsOversizedBody(t *testing.T) {
	d, tools := newTestDispatcher()
	h := NewHTTPHandler(d, tools, HTTPConfig{})

	args := strings.Repeat("x", maxRequestBody)
	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"nope","arguments":{"q":"` + args + `"}}}`
	rec := postRPC(t, h, "/mcp", body, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestStdioUnknownToolIsEnvelope(t *testing.T) {
	d, tools := newTestDispatcher()
	in := strings.NewReader(strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"videos_getVid","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"videos_getVideo","arguments":{"videoId":"abc123"}}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
	}, "\n") + "\n")
	var out strings.Builder

	require.NoError(t, serveStdio(context.Background(), d, tools, in, &out))

	byID := map[string]rpcResponse{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp rpcResponse
		require.NoError(t, json.Unmarshal([]byte(line), &resp), line)
		byID[string(resp.ID)] = resp
	}
	require.Len(t, byID, 3, out.String())

	unknown := byID["1"]
	assert.Nil(t, unknown.Error)
	require.NotNil(t, unknown.Result)
	assert.True(t, unknown.Result.IsError)
	require.Len(t, unknown.Result.Content, 1)
	assert.Contains(t, unknown.Result.Content[0].Text, "Error: Unknown tool: videos_getVid")

	known := byID["2"]
	require.NotNil(t, known.Result)
	assert.True(t, known.Result.IsError)
	assert.Contains(t, known.Result.Content[0].Text, "YOUTUBE_API_KEY")

	require.NotNil(t, byID["3"].Result)
	assert.Len(t, byID["3"].Result.Tools, 10)
}

func TestServeHTTPStopsOnCancel(t *testing.T) {
	d, tools := newTestDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeHTTP(ctx, d, tools, HTTPConfig{Addr: "127.0.0.1:0"}) }()
	cancel()
	assert.NoError(t, <-done)
}

type stubFetcher struct{}

func (stubFetcher) Fetch(_ context.Context, videoID, language string) (*models.Transcript, error) {
	return &models.Transcript{
		VideoID:  videoID,
		Language: language,
		Source:   "stub",
		Segments: []models.Segment{{Text: "hi", Duration: 1}},
		Text:     "hi",
	}, nil
}

func TestEveryToolSucceedsWithMinimalArguments(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch strings.TrimPrefix(r.URL.Path, "/youtube/v3/") {
		case "videos":
			io.WriteString(w, `{"items":[{"id":"abc123","snippet":{"title":"Cats"},"statistics":{"viewCount":"1"}}]}`)
		case "search":
			io.WriteString(w, `{"items":[{"id":{"videoId":"abc123"}},{"id":{"videoId":"def456"},"snippet":{"title":"More cats"}}]}`)
		case "channels":
			io.WriteString(w, `{"items":[{"id":"UC1","snippet":{"title":"Cat TV"}}]}`)
		case "playlists":
			io.WriteString(w, `{"items":[{"id":"PL1","snippet":{"title":"Best of"}}]}`)
		case "playlistItems":
			io.WriteString(w, `{"items":[{"id":"it1","contentDetails":{"videoId":"abc123"}}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer api.Close()

	client := youtube.NewClient(youtube.Config{APIKey: "k", HTTPClient: api.Client(), Endpoint: api.URL + "/"})
	tools := Catalog(youtube.NewServices(client, stubFetcher{}, "en"))
	d := dispatch.New()
	RegisterTools(d, tools)

	minimal := map[string]map[string]any{
		ToolGetVideo:          {"videoId": "abc123"},
		ToolSearchVideos:      {"query": "cats"},
		ToolGetVideoStats:     {"videoId": "abc123"},
		ToolGetTrendingVideos: {},
		ToolGetRelatedVideos:  {"videoId": "abc123"},
		ToolGetTranscript:     {"videoId": "abc123"},
		ToolGetChannel:        {"channelId": "UC1"},
		ToolListChannelVideos: {"channelId": "UC1"},
		ToolGetPlaylist:       {"playlistId": "PL1"},
		ToolGetPlaylistItems:  {"playlistId": "PL1"},
	}
	require.Len(t, minimal, len(tools))

	for name, args := range minimal {
		t.Run(name, func(t *testing.T) {
			res := d.Call(context.Background(), name, args)
			require.False(t, res.IsError, "%+v", res.Content)
			var decoded any
			require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &decoded))
			assert.NotNil(t, decoded)
		})
	}
}

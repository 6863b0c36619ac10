package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/lukman83/youtube-mcp/internal/httputil"
	"github.com/lukman83/youtube-mcp/internal/models"
	"golang.org/x/net/html"
)

const (
	defaultWebBase = "https://www.youtube.com"
	playerMarker   = "ytInitialPlayerResponse"
)

// WatchPageStrategy loads the public watch page and reads the caption tracks
// from the embedded player response.
type WatchPageStrategy struct {
	client  *http.Client
	baseURL string
}

func NewWatchPageStrategy(client *http.Client) *WatchPageStrategy {
	return &WatchPageStrategy{client: client, baseURL: defaultWebBase}
}

func (w *WatchPageStrategy) Name() string { return "watchpage" }

func (w *WatchPageStrategy) Fetch(ctx context.Context, req Request) (*models.Transcript, error) {
	q := url.Values{"v": {req.VideoID}, "hl": {req.Language}}
	page, err := httputil.Fetch(ctx, w.client, http.MethodGet,
		w.baseURL+"/watch?"+q.Encode(), httputil.WatchPageHeaders(req.Language), nil)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	raw, err := extractPlayerResponse(page)
	if err != nil {
		return nil, err
	}
	var player playerResponse
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, fmt.Errorf("decode %s: %w", playerMarker, err)
	}
	tracks, err := player.tracks()
	if err != nil {
		return nil, err
	}
	track, ok := pickBestTrack(tracks, req.Language)
	if !ok {
		return nil, errPoToken
	}
	if strings.HasPrefix(track.BaseURL, "/") {
		track.BaseURL = w.baseURL + track.BaseURL
	}
	return fromTrack(ctx, w.client, req.VideoID, track)
}

// extractPlayerResponse finds the <script> assigning ytInitialPlayerResponse
// and returns the JSON object literal it holds.
func extractPlayerResponse(page []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	var found []byte
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			if obj := objectAfterMarker(n.FirstChild.Data); obj != nil {
				found = obj
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if found == nil {
		return nil, errors.New(playerMarker + " not found in watch page")
	}
	return found, nil
}

func objectAfterMarker(script string) []byte {
	idx := strings.Index(script, playerMarker)
	if idx < 0 {
		return nil
	}
	rest := script[idx+len(playerMarker):]
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return nil
	}
	rest = strings.TrimLeft(rest[eq+1:], " \t\r\n")
	return balancedObject([]byte(rest))
}

// balancedObject returns the leading {...} of b, honoring string literals
// and escapes, or nil if b does not start with a complete object.
func balancedObject(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr, escaped := false, false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/lukman83/youtube-mcp/internal/models"
)

const headlessPageTimeout = 30 * time.Second

// HeadlessStrategy renders the watch page in a real browser and downloads
// the caption track from inside it, so the request carries browser cookies.
type HeadlessStrategy struct {
	baseURL string
}

func NewHeadlessStrategy() *HeadlessStrategy {
	return &HeadlessStrategy{baseURL: defaultWebBase}
}

func (h *HeadlessStrategy) Name() string { return "headless" }

func (h *HeadlessStrategy) Fetch(ctx context.Context, req Request) (*models.Transcript, error) {
	q := url.Values{"v": {req.VideoID}, "hl": {req.Language}}
	page, cleanup, err := h.openPage(ctx, h.baseURL+"/watch?"+q.Encode())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	timed := page.Timeout(headlessPageTimeout)
	if err := timed.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for watch page: %w", err)
	}

	res, err := timed.Eval(`() => {
		const p = window.ytInitialPlayerResponse;
		if (!p) return '';
		return JSON.stringify({captions: p.captions, playabilityStatus: p.playabilityStatus});
	}`)
	if err != nil {
		return nil, fmt.Errorf("read player response: %w", err)
	}
	raw := res.Value.Str()
	if raw == "" {
		return nil, errors.New(playerMarker + " not set on rendered page")
	}

	var player playerResponse
	if err := json.Unmarshal([]byte(raw), &player); err != nil {
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

	xmlRes, err := timed.Eval(`(u) => fetch(u, {credentials: 'include'}).then(r => r.text())`, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext in browser: %w", err)
	}
	segs, err := parseTimedText([]byte(xmlRes.Value.Str()))
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errors.New("empty caption track")
	}
	return newTranscript(req.VideoID, track, segs), nil
}

func (h *HeadlessStrategy) openPage(ctx context.Context, pageURL string) (*rod.Page, func(), error) {
	l := launcher.New().Headless(true).Logger(io.Discard)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		browser.Close()
		l.Kill()
		return nil, nil, fmt.Errorf("open page: %w", err)
	}

	cleanup := func() {
		page.Close()
		browser.Close()
		l.Cleanup()
	}
	return page, cleanup, nil
}

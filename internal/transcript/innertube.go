package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lukman83/youtube-mcp/internal/httputil"
	"github.com/lukman83/youtube-mcp/internal/models"
)

const (
	defaultInnertubeURL = "https://www.youtube.com/youtubei/v1/player"
	androidVersion      = "20.10.38"
	androidUA           = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
)

type innertubeRequest struct {
	VideoID        string           `json:"videoId"`
	Context        innertubeContext `json:"context"`
	RacyCheckOk    bool             `json:"racyCheckOk"`
	ContentCheckOk bool             `json:"contentCheckOk"`
}

type innertubeContext struct {
	Client struct {
		ClientName        string `json:"clientName"`
		ClientVersion     string `json:"clientVersion"`
		AndroidSdkVersion int    `json:"androidSdkVersion"`
		Hl                string `json:"hl"`
		Gl                string `json:"gl"`
	} `json:"client"`
}

// InnertubeStrategy asks the ANDROID youtubei player endpoint for the
// caption tracks. It is often served where the watch page is consent-walled.
type InnertubeStrategy struct {
	client   *http.Client
	endpoint string
}

func NewInnertubeStrategy(client *http.Client) *InnertubeStrategy {
	return &InnertubeStrategy{client: client, endpoint: defaultInnertubeURL}
}

func (s *InnertubeStrategy) Name() string { return "innertube" }

func (s *InnertubeStrategy) Fetch(ctx context.Context, req Request) (*models.Transcript, error) {
	body := innertubeRequest{VideoID: req.VideoID, RacyCheckOk: true, ContentCheckOk: true}
	body.Context.Client.ClientName = "ANDROID"
	body.Context.Client.ClientVersion = androidVersion
	body.Context.Client.AndroidSdkVersion = 30
	body.Context.Client.Hl = req.Language
	body.Context.Client.Gl = "US"
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	data, err := httputil.Fetch(ctx, s.client, http.MethodPost, s.endpoint+"?prettyPrint=false",
		httputil.InnertubeHeaders(androidUA, androidVersion), payload)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	tracks, err := player.tracks()
	if err != nil {
		return nil, err
	}
	track, ok := pickBestTrack(tracks, req.Language)
	if !ok {
		return nil, errPoToken
	}
	return fromTrack(ctx, s.client, req.VideoID, track)
}

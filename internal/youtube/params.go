package youtube

// Default parts requested by GetVideo.
var DefaultVideoParts = []string{"snippet", "contentDetails", "statistics"}

// DefaultMaxResults is used by every list-style call when no limit is given.
const DefaultMaxResults = 10

// maxPageSize is the Data API's per-request ceiling.
const maxPageSize = 50

type VideoParams struct {
	VideoID string   `json:"videoId" validate:"required"`
	Parts   []string `json:"parts" validate:"dive,oneof=id snippet contentDetails statistics status player topicDetails recordingDetails liveStreamingDetails localizations"`
}

func (p *VideoParams) SetDefaults() {
	if len(p.Parts) == 0 {
		p.Parts = append([]string(nil), DefaultVideoParts...)
	}
}

type SearchParams struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"min=1,max=50"`
}

func (p *SearchParams) SetDefaults() {
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
}

type VideoStatsParams struct {
	VideoID string `json:"videoId" validate:"required"`
}

type TrendingParams struct {
	RegionCode      string `json:"regionCode" validate:"len=2"`
	MaxResults      int    `json:"maxResults" validate:"min=1,max=50"`
	VideoCategoryID string `json:"videoCategoryId"`
}

func (p *TrendingParams) SetDefaults() {
	if p.RegionCode == "" {
		p.RegionCode = "US"
	}
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
}

type RelatedVideosParams struct {
	VideoID    string `json:"videoId" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"min=1,max=50"`
}

func (p *RelatedVideosParams) SetDefaults() {
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
}

type TranscriptParams struct {
	VideoID  string `json:"videoId" validate:"required"`
	Language string `json:"language"` // empty = service default
}

type ChannelParams struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type ChannelVideosParams struct {
	ChannelID  string `json:"channelId" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"min=1,max=50"`
}

func (p *ChannelVideosParams) SetDefaults() {
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
}

type PlaylistParams struct {
	PlaylistID string `json:"playlistId" validate:"required"`
}

type PlaylistItemsParams struct {
	PlaylistID string `json:"playlistId" validate:"required"`
	MaxResults int    `json:"maxResults" validate:"min=1,max=50"`
}

func (p *PlaylistItemsParams) SetDefaults() {
	if p.MaxResults == 0 {
		p.MaxResults = DefaultMaxResults
	}
}

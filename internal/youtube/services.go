package youtube

// Services bundles the four resource services over one shared Client.
type Services struct {
	Client      *Client
	Videos      *VideoService
	Channels    *ChannelService
	Playlists   *PlaylistService
	Transcripts *TranscriptService
}

// NewServices wires every service to c.
func NewServices(c *Client, fetcher TranscriptFetcher, defaultLang string) *Services {
	return &Services{
		Client:      c,
		Videos:      NewVideoService(c),
		Channels:    NewChannelService(c),
		Playlists:   NewPlaylistService(c),
		Transcripts: NewTranscriptService(c, fetcher, defaultLang),
	}
}

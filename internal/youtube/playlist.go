package youtube

import (
	"context"

	"google.golang.org/api/youtube/v3"
)

var playlistParts = []string{"snippet", "contentDetails"}

// PlaylistService looks up playlists and their items.
type PlaylistService struct {
	client *Client
}

func NewPlaylistService(c *Client) *PlaylistService {
	return &PlaylistService{client: c}
}

// GetPlaylist returns one playlist, or nil if the id does not exist.
func (s *PlaylistService) GetPlaylist(ctx context.Context, p PlaylistParams) (*youtube.Playlist, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Playlists.List(playlistParts).Id(p.PlaylistID).Context(ctx).Do()
	if err != nil {
		return nil, remote("get playlist", err)
	}
	return firstOrNil(resp.Items), nil
}

// GetPlaylistItems returns the first page of a playlist's entries.
func (s *PlaylistService) GetPlaylistItems(ctx context.Context, p PlaylistItemsParams) ([]*youtube.PlaylistItem, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.PlaylistItems.List(playlistParts).
		PlaylistId(p.PlaylistID).
		MaxResults(int64(p.MaxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, remote("get playlist items", err)
	}
	return capItems(emptyIfNil(resp.Items), p.MaxResults), nil
}

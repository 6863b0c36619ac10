package youtube

import (
	"context"

	"google.golang.org/api/youtube/v3"
)

var channelParts = []string{"snippet", "statistics", "contentDetails"}

// ChannelService looks up channels and their uploads.
type ChannelService struct {
	client *Client
}

func NewChannelService(c *Client) *ChannelService {
	return &ChannelService{client: c}
}

// GetChannel returns one channel, or nil if the id does not exist.
func (s *ChannelService) GetChannel(ctx context.Context, p ChannelParams) (*youtube.Channel, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Channels.List(channelParts).Id(p.ChannelID).Context(ctx).Do()
	if err != nil {
		return nil, remote("get channel", err)
	}
	return firstOrNil(resp.Items), nil
}

// ListVideos returns the channel's videos, newest first.
func (s *ChannelService) ListVideos(ctx context.Context, p ChannelVideosParams) ([]*youtube.SearchResult, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Search.List([]string{"snippet"}).
		ChannelId(p.ChannelID).
		Type("video").
		Order("date").
		MaxResults(int64(p.MaxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, remote("list channel videos", err)
	}
	return capItems(emptyIfNil(resp.Items), p.MaxResults), nil
}

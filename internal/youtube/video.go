package youtube

import (
	"context"
	"errors"

	"google.golang.org/api/youtube/v3"
)

// VideoService looks up videos and runs video searches.
type VideoService struct {
	client *Client
}

func NewVideoService(c *Client) *VideoService {
	return &VideoService{client: c}
}

// GetVideo returns the requested parts of one video, or nil if the id does not exist.
func (s *VideoService) GetVideo(ctx context.Context, p VideoParams) (*youtube.Video, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	parts := p.Parts
	if len(parts) == 0 {
		parts = DefaultVideoParts
	}
	resp, err := svc.Videos.List(parts).Id(p.VideoID).Context(ctx).Do()
	if err != nil {
		return nil, remote("get video", err)
	}
	return firstOrNil(resp.Items), nil
}

// SearchVideos runs a keyword search restricted to videos.
func (s *VideoService) SearchVideos(ctx context.Context, p SearchParams) ([]*youtube.SearchResult, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	items, err := search(ctx, svc, p.Query, p.MaxResults)
	if err != nil {
		return nil, remote("search videos", err)
	}
	return items, nil
}

// GetVideoStats returns only the statistics block, or nil if the id does not exist.
func (s *VideoService) GetVideoStats(ctx context.Context, p VideoStatsParams) (*youtube.VideoStatistics, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Videos.List([]string{"statistics"}).Id(p.VideoID).Context(ctx).Do()
	if err != nil {
		return nil, remote("get video stats", err)
	}
	v := firstOrNil(resp.Items)
	if v == nil {
		return nil, nil
	}
	return v.Statistics, nil
}

// GetTrendingVideos lists the most popular videos of a region.
func (s *VideoService) GetTrendingVideos(ctx context.Context, p TrendingParams) ([]*youtube.Video, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}
	call := svc.Videos.List(DefaultVideoParts).
		Chart("mostPopular").
		RegionCode(p.RegionCode).
		MaxResults(int64(p.MaxResults))
	if p.VideoCategoryID != "" {
		call = call.VideoCategoryId(p.VideoCategoryID)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, remote("get trending videos", err)
	}
	return capItems(emptyIfNil(resp.Items), p.MaxResults), nil
}

// GetRelatedVideos searches by the source video's title and drops the source
// itself from the results. The Data API no longer offers a relatedness query.
func (s *VideoService) GetRelatedVideos(ctx context.Context, p RelatedVideosParams) ([]*youtube.SearchResult, error) {
	svc, err := s.client.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Videos.List([]string{"snippet"}).Id(p.VideoID).Context(ctx).Do()
	if err != nil {
		return nil, remote("get similar videos", err)
	}
	src := firstOrNil(resp.Items)
	if src == nil || src.Snippet == nil {
		return nil, remote("get similar videos", errors.New("source video not found"))
	}

	// one extra in case the source shows up
	items, err := search(ctx, svc, src.Snippet.Title, min(p.MaxResults+1, maxPageSize))
	if err != nil {
		return nil, remote("get similar videos", err)
	}

	related := make([]*youtube.SearchResult, 0, len(items))
	for _, it := range items {
		if it.Id != nil && it.Id.VideoId == p.VideoID {
			continue
		}
		related = append(related, it)
	}
	return capItems(related, p.MaxResults), nil
}

func search(ctx context.Context, svc *youtube.Service, query string, limit int) ([]*youtube.SearchResult, error) {
	resp, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return capItems(emptyIfNil(resp.Items), limit), nil
}

// emptyIfNil keeps list results rendering as [] rather than null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

package youtube

import (
	"context"

	"github.com/lukman83/youtube-mcp/internal/models"
)

// TranscriptFetcher retrieves the caption track of a video.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID, language string) (*models.Transcript, error)
}

// TranscriptService returns video transcripts. It shares the credential gate
// of the other services so every tool fails the same way without a key.
type TranscriptService struct {
	client      *Client
	fetcher     TranscriptFetcher
	defaultLang string
}

func NewTranscriptService(c *Client, f TranscriptFetcher, defaultLang string) *TranscriptService {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &TranscriptService{client: c, fetcher: f, defaultLang: defaultLang}
}

// GetTranscript fetches the transcript in p.Language, or the service default.
func (s *TranscriptService) GetTranscript(ctx context.Context, p TranscriptParams) (*models.Transcript, error) {
	if _, err := s.client.service(ctx); err != nil {
		return nil, err
	}
	lang := p.Language
	if lang == "" {
		lang = s.defaultLang
	}
	t, err := s.fetcher.Fetch(ctx, p.VideoID, lang)
	if err != nil {
		return nil, remote("get transcript", err)
	}
	return t, nil
}

package transcript

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/lukman83/youtube-mcp/internal/httputil"
	"github.com/lukman83/youtube-mcp/internal/models"
)

// timedText covers both caption XML layouts YouTube serves: the classic
// <transcript><text start dur> form (seconds) and format 3
// <timedtext><body><p t d> (milliseconds).
type timedText struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Text  string `xml:",chardata"`
	} `xml:"text"`
	Paragraphs []struct {
		T     int64    `xml:"t,attr"`
		D     int64    `xml:"d,attr"`
		Text  string   `xml:",chardata"`
		Spans []string `xml:"s"`
	} `xml:"body>p"`
}

func fetchTimedText(ctx context.Context, client *http.Client, baseURL string) ([]models.Segment, error) {
	body, err := httputil.Fetch(ctx, client, http.MethodGet, baseURL, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	segs, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errors.New("empty caption track")
	}
	return segs, nil
}

func parseTimedText(data []byte) ([]models.Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]models.Segment, 0, len(tt.Texts)+len(tt.Paragraphs))
	for _, t := range tt.Texts {
		text := cleanText(t.Text)
		if text == "" {
			continue
		}
		segs = append(segs, models.Segment{
			Text:     text,
			Start:    parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
		})
	}
	for _, p := range tt.Paragraphs {
		text := cleanText(p.Text + " " + strings.Join(p.Spans, ""))
		if text == "" {
			continue
		}
		segs = append(segs, models.Segment{
			Text:     text,
			Start:    float64(p.T) / 1000,
			Duration: float64(p.D) / 1000,
		})
	}
	return segs, nil
}

// cleanText unescapes the doubly-encoded entities caption XML carries and
// collapses whitespace.
func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

func parseSeconds(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// joinSegments builds the plain-text rendition of a transcript.
func joinSegments(segs []models.Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// fromTrack downloads track and assembles the transcript.
func fromTrack(ctx context.Context, client *http.Client, videoID string, track captionTrack) (*models.Transcript, error) {
	segs, err := fetchTimedText(ctx, client, track.BaseURL)
	if err != nil {
		return nil, err
	}
	return newTranscript(videoID, track, segs), nil
}

func newTranscript(videoID string, track captionTrack, segs []models.Segment) *models.Transcript {
	return &models.Transcript{
		VideoID:  videoID,
		Language: track.LanguageCode,
		Kind:     track.Kind,
		Segments: segs,
		Text:     joinSegments(segs),
	}
}

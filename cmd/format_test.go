package cmd

import (
	"bytes"
	"testing"

	"github.com/lukman83/youtube-mcp/internal/models"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/youtube/v3"
)

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"PT3M2S":    "3:02",
		"PT45S":     "0:45",
		"PT1H2M3S":  "1:02:03",
		"PT2H":      "2:00:00",
		"P1DT1M":    "24:01:00",
		"not-a-dur": "not-a-dur",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatDuration(in), in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "0:00", formatTimestamp(0))
	assert.Equal(t, "1:05", formatTimestamp(65.9))
	assert.Equal(t, "1:01:01", formatTimestamp(3661))
}

func TestCellPadsAndTruncatesByDisplayWidth(t *testing.T) {
	assert.Equal(t, "abc   ", cell("abc", 6))
	assert.Equal(t, 6, runewidth.StringWidth(cell("日本語のタイトル", 6)))
	assert.Contains(t, cell("a very long video title", 10), "…")
}

func TestFormatDateFallsBackToInput(t *testing.T) {
	assert.Equal(t, "yesterday-ish", formatDate("yesterday-ish"))
	assert.Contains(t, formatDate("2020-01-02T03:04:05Z"), "2020-01-02 (")
}

func TestPrintVideo(t *testing.T) {
	var buf bytes.Buffer
	printVideo(&buf, &youtube.Video{
		Id:             "abc123",
		Snippet:        &youtube.VideoSnippet{Title: "Funny cats", ChannelTitle: "Cat TV"},
		ContentDetails: &youtube.VideoContentDetails{Duration: "PT3M2S"},
		Statistics:     &youtube.VideoStatistics{ViewCount: 1234567, LikeCount: 89, CommentCount: 1000},
	})
	out := buf.String()
	assert.Contains(t, out, "Funny cats")
	assert.Contains(t, out, "Channel: Cat TV")
	assert.Contains(t, out, "Duration: 3:02")
	assert.Contains(t, out, "Views: 1,234,567  |  Likes: 89  |  Comments: 1,000")
	assert.Contains(t, out, "https://youtu.be/abc123")

	buf.Reset()
	printVideo(&buf, nil)
	assert.Equal(t, "Video not found.\n", buf.String())
}

func TestPrintTranscript(t *testing.T) {
	var buf bytes.Buffer
	printTranscript(&buf, &models.Transcript{
		VideoID:  "abc123",
		Language: "en",
		Kind:     "asr",
		Source:   "watchpage",
		Segments: []models.Segment{{Text: "hello", Start: 1.5}, {Text: "world", Start: 62}},
	})
	out := buf.String()
	assert.Contains(t, out, "(en, auto-generated, via watchpage)")
	assert.Contains(t, out, " [0:01] hello\n")
	assert.Contains(t, out, " [1:02] world\n")
}

func TestPrintChannelHiddenSubscribers(t *testing.T) {
	var buf bytes.Buffer
	printChannel(&buf, &youtube.Channel{
		Id:         "UC1",
		Snippet:    &youtube.ChannelSnippet{Title: "Cat TV", CustomUrl: "@cattv"},
		Statistics: &youtube.ChannelStatistics{HiddenSubscriberCount: true, VideoCount: 12, ViewCount: 5000},
	})
	out := buf.String()
	assert.Contains(t, out, "Cat TV (@cattv)")
	assert.Contains(t, out, "Subscribers: hidden  |  Videos: 12  |  Views: 5,000")
}

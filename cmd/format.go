package cmd

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lukman83/youtube-mcp/internal/models"
	"github.com/mattn/go-runewidth"
	"google.golang.org/api/youtube/v3"
)

const titleWidth = 64

// printVideo prints one video in a card layout.
func printVideo(w io.Writer, v *youtube.Video) {
	if v == nil {
		fmt.Fprintln(w, "Video not found.")
		return
	}
	if s := v.Snippet; s != nil {
		fmt.Fprintf(w, " %s\n", s.Title)
		fmt.Fprintf(w, "    Channel: %s  |  Published: %s\n", s.ChannelTitle, formatDate(s.PublishedAt))
	}
	if cd := v.ContentDetails; cd != nil && cd.Duration != "" {
		fmt.Fprintf(w, "    Duration: %s\n", formatDuration(cd.Duration))
	}
	if v.Statistics != nil {
		fmt.Fprintf(w, "    %s\n", statsLine(v.Statistics))
	}
	fmt.Fprintf(w, "    %s\n", videoURL(v.Id))
}

func printVideoStats(w io.Writer, s *youtube.VideoStatistics) {
	if s == nil {
		fmt.Fprintln(w, "Video not found.")
		return
	}
	fmt.Fprintf(w, " %s\n", statsLine(s))
}

// printVideos prints a ranked list of full video resources.
func printVideos(w io.Writer, videos []*youtube.Video) {
	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos.")
		return
	}
	for i, v := range videos {
		title, channel := "", ""
		if v.Snippet != nil {
			title, channel = v.Snippet.Title, v.Snippet.ChannelTitle
		}
		views := ""
		if v.Statistics != nil {
			views = formatCount(v.Statistics.ViewCount) + " views"
		}
		fmt.Fprintf(w, " %2d. %s  %s\n", i+1, cell(title, titleWidth), views)
		fmt.Fprintf(w, "     %s  |  %s\n", channel, videoURL(v.Id))
	}
}

// printSearchResults prints search hits; hits are videos for every tool that returns them.
func printSearchResults(w io.Writer, results []*youtube.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for i, r := range results {
		title, channel, published := "", "", ""
		if r.Snippet != nil {
			title, channel, published = r.Snippet.Title, r.Snippet.ChannelTitle, formatDate(r.Snippet.PublishedAt)
		}
		id := ""
		if r.Id != nil {
			id = r.Id.VideoId
		}
		fmt.Fprintf(w, " %2d. %s  %s\n", i+1, cell(title, titleWidth), published)
		fmt.Fprintf(w, "     %s  |  %s\n", channel, videoURL(id))
	}
}

func printTranscript(w io.Writer, t *models.Transcript) {
	if t == nil {
		fmt.Fprintln(w, "No transcript.")
		return
	}
	kind := ""
	if t.Kind == "asr" {
		kind = ", auto-generated"
	}
	fmt.Fprintf(w, " Transcript of %s (%s%s, via %s)\n\n", t.VideoID, t.Language, kind, t.Source)
	for _, s := range t.Segments {
		fmt.Fprintf(w, " [%s] %s\n", formatTimestamp(s.Start), s.Text)
	}
}

func printChannel(w io.Writer, c *youtube.Channel) {
	if c == nil {
		fmt.Fprintln(w, "Channel not found.")
		return
	}
	if s := c.Snippet; s != nil {
		name := s.Title
		if s.CustomUrl != "" {
			name += " (" + s.CustomUrl + ")"
		}
		fmt.Fprintf(w, " %s\n", name)
		fmt.Fprintf(w, "    Created: %s\n", formatDate(s.PublishedAt))
	}
	if st := c.Statistics; st != nil {
		subs := formatCount(st.SubscriberCount)
		if st.HiddenSubscriberCount {
			subs = "hidden"
		}
		fmt.Fprintf(w, "    Subscribers: %s  |  Videos: %s  |  Views: %s\n",
			subs, formatCount(st.VideoCount), formatCount(st.ViewCount))
	}
	fmt.Fprintf(w, "    https://www.youtube.com/channel/%s\n", c.Id)
}

func printPlaylist(w io.Writer, p *youtube.Playlist) {
	if p == nil {
		fmt.Fprintln(w, "Playlist not found.")
		return
	}
	if s := p.Snippet; s != nil {
		fmt.Fprintf(w, " %s\n", s.Title)
		fmt.Fprintf(w, "    Channel: %s  |  Created: %s\n", s.ChannelTitle, formatDate(s.PublishedAt))
	}
	if p.ContentDetails != nil {
		fmt.Fprintf(w, "    Items: %s\n", humanize.Comma(p.ContentDetails.ItemCount))
	}
	fmt.Fprintf(w, "    https://www.youtube.com/playlist?list=%s\n", p.Id)
}

func printPlaylistItems(w io.Writer, items []*youtube.PlaylistItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items.")
		return
	}
	for i, it := range items {
		title, owner := "", ""
		if it.Snippet != nil {
			title, owner = it.Snippet.Title, it.Snippet.VideoOwnerChannelTitle
		}
		id := ""
		if it.ContentDetails != nil {
			id = it.ContentDetails.VideoId
		}
		fmt.Fprintf(w, " %2d. %s  %s\n", i+1, cell(title, titleWidth), owner)
		fmt.Fprintf(w, "     %s\n", videoURL(id))
	}
}

func statsLine(s *youtube.VideoStatistics) string {
	return fmt.Sprintf("Views: %s  |  Likes: %s  |  Comments: %s",
		formatCount(s.ViewCount), formatCount(s.LikeCount), formatCount(s.CommentCount))
}

func videoURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://youtu.be/" + id
}

// cell truncates s to width display columns and pads it to exactly width.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func formatCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// formatDate renders an RFC 3339 timestamp as a date plus relative age.
func formatDate(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02") + " (" + humanize.Time(t) + ")"
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// formatDuration turns an ISO 8601 duration such as PT1H2M3S into 1:02:03.
func formatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return iso
	}
	var n [4]int
	for i := range n {
		n[i], _ = strconv.Atoi(m[i+1])
	}
	days, h, mins, sec := n[0], n[1], n[2], n[3]
	h += days * 24
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, sec)
	}
	return fmt.Sprintf("%d:%02d", mins, sec)
}

// formatTimestamp renders seconds as m:ss or h:mm:ss.
func formatTimestamp(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}


package mcp

import (
	"github.com/lukman83/youtube-mcp/internal/dispatch"
	"github.com/lukman83/youtube-mcp/internal/youtube"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names, shared by the MCP catalog and the CLI.
const (
	ToolGetVideo          = "videos_getVideo"
	ToolSearchVideos      = "videos_searchVideos"
	ToolGetVideoStats     = "videos_getVideoStats"
	ToolGetTrendingVideos = "videos_getTrendingVideos"
	ToolGetRelatedVideos  = "videos_getRelatedVideos"
	ToolGetTranscript     = "transcripts_getTranscript"
	ToolGetChannel        = "channels_getChannel"
	ToolListChannelVideos = "channels_listVideos"
	ToolGetPlaylist       = "playlists_getPlaylist"
	ToolGetPlaylistItems  = "playlists_getPlaylistItems"
)

// Tool pairs a tool definition with the handler the dispatcher runs for it.
type Tool struct {
	Spec    mcp.Tool
	Handler dispatch.Handler
}

func maxResults(desc string) mcp.ToolOption {
	return mcp.WithNumber("maxResults",
		mcp.Description(desc+" (1-50, default 10)"),
		mcp.Min(1),
		mcp.Max(50),
	)
}

// Catalog returns every tool backed by svcs.
func Catalog(svcs *youtube.Services) []Tool {
	readOnly := mcp.WithReadOnlyHintAnnotation(true)
	return []Tool{
		{
			Spec: mcp.NewTool(ToolGetVideo,
				mcp.WithDescription("Get detailed information about a YouTube video"),
				mcp.WithString("videoId", mcp.Required(), mcp.Description("The YouTube video ID")),
				mcp.WithArray("parts",
					mcp.Description("Resource parts to return (default: snippet, contentDetails, statistics)"),
					mcp.Items(map[string]any{"type": "string"}),
				),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Videos.GetVideo),
		},
		{
			Spec: mcp.NewTool(ToolSearchVideos,
				mcp.WithDescription("Search for videos on YouTube"),
				mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
				maxResults("Maximum number of results to return"),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Videos.SearchVideos),
		},
		{
			Spec: mcp.NewTool(ToolGetVideoStats,
				mcp.WithDescription("Get view, like and comment counts of a YouTube video"),
				mcp.WithString("videoId", mcp.Required(), mcp.Description("The YouTube video ID")),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Videos.GetVideoStats),
		},
		{
			Spec: mcp.NewTool(ToolGetTrendingVideos,
				mcp.WithDescription("List the most popular videos in a region"),
				mcp.WithString("regionCode", mcp.Description("ISO 3166-1 alpha-2 region code (default: US)")),
				mcp.WithString("videoCategoryId", mcp.Description("Restrict to one video category")),
				maxResults("Maximum number of videos to return"),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Videos.GetTrendingVideos),
		},
		{
			Spec: mcp.NewTool(ToolGetRelatedVideos,
				mcp.WithDescription("Find videos similar to a given video, matched on its title"),
				mcp.WithString("videoId", mcp.Required(), mcp.Description("The source video ID")),
				maxResults("Maximum number of videos to return"),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Videos.GetRelatedVideos),
		},
		{
			Spec: mcp.NewTool(ToolGetTranscript,
				mcp.WithDescription("Get the transcript of a YouTube video"),
				mcp.WithString("videoId", mcp.Required(), mcp.Description("The YouTube video ID")),
				mcp.WithString("language", mcp.Description("Language code of the transcript (default: en)")),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Transcripts.GetTranscript),
		},
		{
			Spec: mcp.NewTool(ToolGetChannel,
				mcp.WithDescription("Get information about a YouTube channel"),
				mcp.WithString("channelId", mcp.Required(), mcp.Description("The YouTube channel ID")),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Channels.GetChannel),
		},
		{
			Spec: mcp.NewTool(ToolListChannelVideos,
				mcp.WithDescription("List the most recent videos of a YouTube channel"),
				mcp.WithString("channelId", mcp.Required(), mcp.Description("The YouTube channel ID")),
				maxResults("Maximum number of videos to return"),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Channels.ListVideos),
		},
		{
			Spec: mcp.NewTool(ToolGetPlaylist,
				mcp.WithDescription("Get information about a YouTube playlist"),
				mcp.WithString("playlistId", mcp.Required(), mcp.Description("The YouTube playlist ID")),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Playlists.GetPlaylist),
		},
		{
			Spec: mcp.NewTool(ToolGetPlaylistItems,
				mcp.WithDescription("Get the videos in a YouTube playlist"),
				mcp.WithString("playlistId", mcp.Required(), mcp.Description("The YouTube playlist ID")),
				maxResults("Maximum number of items to return"),
				readOnly,
			),
			Handler: dispatch.Typed(svcs.Playlists.GetPlaylistItems),
		},
	}
}

// RegisterTools adds every tool's handler to d.
func RegisterTools(d *dispatch.Dispatcher, tools []Tool) {
	for _, t := range tools {
		d.Register(t.Spec.Name, t.Handler)
	}
}

package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var channelCmd = &cobra.Command{
	Use:   "channel <channelId>",
	Short: "Show a channel, or its latest videos with --videos",
	Args:  cobra.ExactArgs(1),
	RunE:  runChannel,
}

func init() {
	channelCmd.Flags().Bool("videos", false, "List the channel's most recent videos")
	channelCmd.Flags().Int("limit", 10, "Number of videos with --videos (1-50)")
	rootCmd.AddCommand(channelCmd)
}

func runChannel(cmd *cobra.Command, args []string) error {
	id := args[0]
	if videos, _ := cmd.Flags().GetBool("videos"); videos {
		limit, _ := cmd.Flags().GetInt("limit")
		return lookup(cmd, mcpserver.ToolListChannelVideos,
			map[string]any{"channelId": id, "maxResults": limit},
			fmt.Sprintf("Listing videos of %s...", id),
			tableOf(printSearchResults))
	}
	return lookup(cmd, mcpserver.ToolGetChannel, map[string]any{"channelId": id},
		fmt.Sprintf("Fetching channel %s...", id),
		tableOf(printChannel))
}

package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <playlistId>",
	Short: "Show a playlist, or its entries with --items",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylist,
}

func init() {
	playlistCmd.Flags().Bool("items", false, "List the playlist's videos")
	playlistCmd.Flags().Int("limit", 10, "Number of items with --items (1-50)")
	rootCmd.AddCommand(playlistCmd)
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	id := args[0]
	if items, _ := cmd.Flags().GetBool("items"); items {
		limit, _ := cmd.Flags().GetInt("limit")
		return lookup(cmd, mcpserver.ToolGetPlaylistItems,
			map[string]any{"playlistId": id, "maxResults": limit},
			fmt.Sprintf("Listing items of %s...", id),
			tableOf(printPlaylistItems))
	}
	return lookup(cmd, mcpserver.ToolGetPlaylist, map[string]any{"playlistId": id},
		fmt.Sprintf("Fetching playlist %s...", id),
		tableOf(printPlaylist))
}

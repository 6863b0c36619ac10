package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search videos by keyword",
	Long:  "Search videos by keyword. With --related the argument is a video ID and similar videos are listed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "Maximum number of results (1-50)")
	searchCmd.Flags().Bool("related", false, "Treat the argument as a video ID and find similar videos")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	if related, _ := cmd.Flags().GetBool("related"); related {
		return lookup(cmd, mcpserver.ToolGetRelatedVideos,
			map[string]any{"videoId": args[0], "maxResults": limit},
			fmt.Sprintf("Finding videos similar to %s...", args[0]),
			tableOf(printSearchResults))
	}
	return lookup(cmd, mcpserver.ToolSearchVideos,
		map[string]any{"query": args[0], "maxResults": limit},
		fmt.Sprintf("Searching '%s'...", args[0]),
		tableOf(printSearchResults))
}

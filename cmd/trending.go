package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "List the most popular videos in a region",
	Args:  cobra.NoArgs,
	RunE:  runTrending,
}

func init() {
	trendingCmd.Flags().String("region", "US", "ISO 3166-1 alpha-2 region code")
	trendingCmd.Flags().String("category", "", "Video category ID filter")
	trendingCmd.Flags().Int("limit", 10, "Number of videos (1-50)")
	rootCmd.AddCommand(trendingCmd)
}

func runTrending(cmd *cobra.Command, args []string) error {
	region, _ := cmd.Flags().GetString("region")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	toolArgs := map[string]any{"regionCode": region, "maxResults": limit}
	if category != "" {
		toolArgs["videoCategoryId"] = category
	}
	return lookup(cmd, mcpserver.ToolGetTrendingVideos, toolArgs,
		fmt.Sprintf("Fetching trending videos in %s...", region),
		tableOf(printVideos))
}

package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var videoCmd = &cobra.Command{
	Use:   "video <videoId>",
	Short: "Show details of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideo,
}

func init() {
	videoCmd.Flags().String("parts", "", "Comma-separated resource parts (default snippet,contentDetails,statistics)")
	videoCmd.Flags().Bool("stats", false, "Only show view, like and comment counts")
	rootCmd.AddCommand(videoCmd)
}

func runVideo(cmd *cobra.Command, args []string) error {
	id := args[0]
	status := fmt.Sprintf("Fetching video %s...", id)

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		return lookup(cmd, mcpserver.ToolGetVideoStats, map[string]any{"videoId": id}, status,
			tableOf(printVideoStats))
	}

	toolArgs := map[string]any{"videoId": id}
	if parts, _ := cmd.Flags().GetString("parts"); parts != "" {
		toolArgs["parts"] = splitComma(parts)
	}
	return lookup(cmd, mcpserver.ToolGetVideo, toolArgs, status, tableOf(printVideo))
}


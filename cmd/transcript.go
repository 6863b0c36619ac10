package cmd

import (
	"fmt"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript <videoId>",
	Short: "Print the transcript of a video",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscript,
}

func init() {
	transcriptCmd.Flags().String("lang", "", "Transcript language code (default from config, usually en)")
	rootCmd.AddCommand(transcriptCmd)
}

func runTranscript(cmd *cobra.Command, args []string) error {
	toolArgs := map[string]any{"videoId": args[0]}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		toolArgs["language"] = lang
	}
	return lookup(cmd, mcpserver.ToolGetTranscript, toolArgs,
		fmt.Sprintf("Fetching transcript of %s...", args[0]),
		tableOf(printTranscript))
}

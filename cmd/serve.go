package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP stdio server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting YouTube MCP server on stdio...")
	if err := mcpserver.Serve(ctx, a.dispatcher, a.tools); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

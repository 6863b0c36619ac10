package cmd

import (
	"net"
	"os/signal"
	"syscall"

	mcpserver "github.com/lukman83/youtube-mcp/mcp"
	"github.com/spf13/cobra"
)

var serveHTTPCmd = &cobra.Command{
	Use:   "serve-http",
	Short: "Start MCP HTTP server",
	Long:  "Start the MCP server over streamable HTTP at /mcp (and /api/mcp), with health at /healthz.",
	Args:  cobra.NoArgs,
	RunE:  runServeHTTP,
}

func init() {
	serveHTTPCmd.Flags().String("port", "", "HTTP port (default from $PORT or 8080)")
	rootCmd.AddCommand(serveHTTPCmd)
}

func runServeHTTP(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	port := cfg.HTTPPort
	if p, _ := cmd.Flags().GetString("port"); p != "" {
		port = p
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return mcpserver.ServeHTTP(ctx, a.dispatcher, a.tools, mcpserver.HTTPConfig{
		Addr:          net.JoinHostPort("", port),
		APIKey:        cfg.APIKey,
		KeyConfigured: a.services.Client.KeyConfigured,
	})
}

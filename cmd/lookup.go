package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lukman83/youtube-mcp/internal/transcript"
	"github.com/lukman83/youtube-mcp/internal/ui"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// callTool runs one tool through the dispatcher, exactly as an MCP client
// would, and returns the result text. An error envelope becomes an error.
func callTool(cmd *cobra.Command, name string, args map[string]any, status string) (string, error) {
	a, err := newApp()
	if err != nil {
		return "", err
	}

	spin := ui.NewSpinner(cmd.ErrOrStderr())
	spin.Start(status)
	ctx := transcript.WithProgress(cmd.Context(), spin.Update)
	res := a.dispatcher.Call(ctx, name, args)
	spin.Stop()

	text := resultText(res)
	if res.IsError {
		return "", errors.New(strings.TrimPrefix(text, "Error: "))
	}
	return text, nil
}

func resultText(res *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

// renderer prints a decoded tool result in table form.
type renderer func(w io.Writer, data []byte) error

// tableOf decodes the JSON result into T before handing it to show.
func tableOf[T any](show func(io.Writer, T)) renderer {
	return func(w io.Writer, data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
		show(w, v)
		return nil
	}
}

// output writes text as-is for --format json, or through table.
func output(cmd *cobra.Command, text string, table renderer) error {
	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	switch format {
	case "table":
		return table(w, []byte(text))
	case "json", "":
		_, err := fmt.Fprintln(w, text)
		return err
	default:
		return fmt.Errorf("unsupported format %q (want json or table)", format)
	}
}

// lookup is the body shared by every read command.
func lookup(cmd *cobra.Command, name string, args map[string]any, status string, table renderer) error {
	text, err := callTool(cmd, name, args, status)
	if err != nil {
		return err
	}
	return output(cmd, text, table)
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

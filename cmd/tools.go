package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server exposes",
	Args:  cobra.NoArgs,
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func runTools(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	infos := make([]toolInfo, 0, len(a.tools))
	for _, t := range a.tools {
		infos = append(infos, toolInfo{Name: t.Spec.Name, Description: t.Spec.Description})
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return err
	}
	return output(cmd, string(data), tableOf(printTools))
}

func printTools(w io.Writer, tools []toolInfo) {
	width := 0
	for _, t := range tools {
		width = max(width, len(t.Name))
	}
	for _, t := range tools {
		fmt.Fprintf(w, " %s  %s\n", cell(t.Name, width), t.Description)
	}
}

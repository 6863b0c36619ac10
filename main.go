package main

import "github.com/lukman83/youtube-mcp/cmd"

func main() {
	cmd.Execute()
}

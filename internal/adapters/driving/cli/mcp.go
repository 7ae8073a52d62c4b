package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chime/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server so an AI assistant can manage
sounds. The server speaks JSON-RPC over stdin/stdout and plays sounds for
as long as the client keeps it running.

Tools: list_tasks, add_task, update_task, remove_task, pause_task,
resume_task, recent_playback.

Client configuration example:
  {
    "mcpServers": {
      "chime": {
        "command": "/path/to/chime",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	s, err := services(cmd)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Registry:  s.Registry,
		Scheduler: s.Scheduler,
		History:   s.History,
	})
	if err != nil {
		return err
	}

	return server.Run(commandContext(cmd))
}

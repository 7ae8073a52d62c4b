package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/chime/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions is sent to clients during initialisation.
const instructions = `chime plays sound files on repeating timers while this server runs.
Register a sound with add_task (absolute file path, interval in minutes).
Tasks live only as long as the server process. Use list_tasks to find
task IDs for update_task, pause_task, resume_task and remove_task, and
recent_playback to check whether sounds actually played.`

// Server exposes the task registry to MCP clients.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates an MCP server over the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(
			&mcp.Implementation{Name: "chime", Version: Version},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
// Stdout carries the protocol, so logs must stay on stderr.
func (s *Server) Run(ctx context.Context) error {
	logger.L().Info().Str("version", Version).Msg("mcp server listening on stdio")
	err := s.server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && ctx.Err() != nil {
		// Cancellation is a normal shutdown.
		return nil
	}
	return err
}

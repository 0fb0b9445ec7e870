package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nmehta6/finqa/internal/qa"
	"github.com/nmehta6/finqa/pkg/logx"
)

// Version is the MCP server version.
const Version = "1.0.0"

// Server exposes the QA pipeline over the Model Context Protocol so
// agent clients can search the corpus and ask questions directly,
// bypassing the job queue.
type Server struct {
	qa     qa.Service
	server *mcp.Server
	logger *logx.Logger
}

func NewServer(qaService qa.Service) (*Server, error) {
	if qaService == nil {
		return nil, fmt.Errorf("qa service is required")
	}

	impl := &mcp.Implementation{
		Name:    "finqa",
		Version: Version,
	}

	s := &Server{
		qa:     qaService,
		server: mcp.NewServer(impl, nil),
		logger: logx.NewLogger("MCP Server"),
	}

	s.registerTools()
	return s, nil
}

// Run serves MCP over stdio until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

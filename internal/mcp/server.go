// ABOUTME: MCP server initialization and configuration for postboard.
// ABOUTME: Sets up a stdio server whose tools operate on a post store.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/storage"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server wraps the MCP server with post storage.
type Server struct {
	mcp   *gomcp.Server
	posts storage.PostStore
}

// NewServer creates an MCP server exposing post tools over store.
func NewServer(store storage.PostStore) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("post store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "postboard",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:   mcpServer,
		posts: store,
	}
	s.registerPostTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}

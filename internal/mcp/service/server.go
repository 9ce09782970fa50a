// Package service hosts the Pixelsmith MCP server over the workspace
// session.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pixelsmith/pixelsmith/internal/storage"
	"github.com/pixelsmith/pixelsmith/internal/workspace"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Pixelsmith MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
}

// Server hosts the MCP server over one workspace session.
type Server struct {
	mcpServer *mcp.Server
	session   *workspace.Session
}

// New creates a configured MCP server exposing the editing tools over the
// given session and project registry store.
func New(session *workspace.Session, projects storage.RegistryStore) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("workspace session is required")
	}
	if projects == nil {
		return nil, fmt.Errorf("project registry store is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerProjectTools(mcpServer, session, projects)
	registerAssetTools(mcpServer, session)
	registerStructureTools(mcpServer, session)
	registerPaintTools(mcpServer, session)
	registerHistoryTools(mcpServer, session)

	return &Server{mcpServer: mcpServer, session: session}, nil
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, session *workspace.Session, projects storage.RegistryStore, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(session, projects)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

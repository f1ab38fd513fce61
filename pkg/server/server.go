// Package server provides the MCP server implementation for the Rapid KL integration.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/tools"
	"github.com/NERVsystems/rapidmcp/pkg/tools/prompts"
	"github.com/NERVsystems/rapidmcp/pkg/version"
)

const (
	// ServerName is the name of the MCP server
	ServerName = "rapidkl"

	instructions = "Rapid KL public transit data: fares between stations, station search, " +
		"the full station directory and journey planning. Every tool answers in plain text."
)

// Server encapsulates the MCP server with Rapid KL tools.
type Server struct {
	srv    *server.MCPServer
	logger *slog.Logger
}

// NewServer creates a new Rapid KL MCP server with all tools, the station
// resource and the prompts registered. cfg is validated first.
func NewServer(cfg myrapid.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("initializing Rapid KL MCP server",
		"name", ServerName,
		"version", version.BuildVersion,
		"base_url", cfg.BaseURL,
		"agency", cfg.Agency)

	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	client := myrapid.NewClient(cfg, myrapid.WithLogger(logger.With("component", "myrapid")))
	service := tools.NewService(cfg, client, logger.With("component", "tools"))

	registry := tools.NewRegistry(service, logger)
	registry.RegisterTools(srv)
	registry.RegisterResources(srv)
	prompts.RegisterTripPrompts(srv)

	return &Server{srv: srv, logger: logger}, nil
}

// RunWithContext serves MCP over the given streams until ctx is cancelled
// or the input is closed. Cancellation is not reported as an error.
func (s *Server) RunWithContext(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.srv)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("server initialized, waiting for requests")
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

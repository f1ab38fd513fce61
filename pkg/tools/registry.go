package tools

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Registry holds all MCP tool and resource registrations for the Rapid KL
// service.
type Registry struct {
	service *Service
	logger  *slog.Logger
}

// NewRegistry creates a new MCP tool registry backed by service.
func NewRegistry(service *Service, logger *slog.Logger) *Registry {
	return &Registry{
		service: service,
		logger:  logger,
	}
}

// ToolDefinition represents a Rapid KL MCP tool definition.
type ToolDefinition struct {
	Name        string
	Description string
	Tool        mcp.Tool
	Handler     func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// GetToolDefinitions returns all Rapid KL MCP tool definitions.
func (r *Registry) GetToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "get_fare",
			Description: "Get the ticket fares between two stations",
			Tool:        GetFareTool(),
			Handler:     r.service.HandleGetFare,
		},
		{
			Name:        "get_stations",
			Description: "Search stations and points of interest by name",
			Tool:        GetStationsTool(),
			Handler:     r.service.HandleGetStations,
		},
		{
			Name:        "get_all_stations",
			Description: "List every route with its stations",
			Tool:        GetAllStationsTool(),
			Handler:     r.service.HandleGetAllStations,
		},
		{
			Name:        "get_journey_planner",
			Description: "Plan a journey between two coordinates",
			Tool:        GetJourneyPlannerTool(),
			Handler:     r.service.HandleGetJourneyPlanner,
		},
	}
}

// ServerTools returns the tool definitions in the form mcp-go accepts.
func (r *Registry) ServerTools() []server.ServerTool {
	defs := r.GetToolDefinitions()
	out := make([]server.ServerTool, 0, len(defs))
	for _, def := range defs {
		out = append(out, server.ServerTool{Tool: def.Tool, Handler: def.Handler})
	}
	return out
}

// RegisterTools registers all tools with the MCP server.
func (r *Registry) RegisterTools(mcpServer *server.MCPServer) {
	serverTools := r.ServerTools()
	for _, tool := range serverTools {
		r.logger.Info("registering tool", "name", tool.Tool.Name)
	}
	mcpServer.AddTools(serverTools...)
}

// RegisterResources registers the station directory resource.
func (r *Registry) RegisterResources(mcpServer *server.MCPServer) {
	r.logger.Info("registering resource", "uri", StationsResourceURI)
	mcpServer.AddResource(StationsResource(), r.service.HandleStationsResource)
}

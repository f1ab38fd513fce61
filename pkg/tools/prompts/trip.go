// Package prompts provides prompt templates for use with the MCP server.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTripPrompts registers the trip planning prompts with the MCP server
func RegisterTripPrompts(s *server.MCPServer) {
	s.AddPrompt(mcp.NewPrompt("plan_trip",
		mcp.WithPromptDescription("Step-by-step instructions for planning a Rapid KL trip between two places"),
		mcp.WithArgument("origin",
			mcp.ArgumentDescription("Where the trip starts, e.g. \"KL Sentral\""),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("destination",
			mcp.ArgumentDescription("Where the trip ends, e.g. \"KLCC\""),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("departure",
			mcp.ArgumentDescription("Departure as 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"),
		),
	), PlanTripPromptHandler)

	s.AddPrompt(mcp.NewPrompt("station_search_tips",
		mcp.WithPromptDescription("How to phrase station searches and read their results"),
	), StationSearchTipsHandler)
}

// PlanTripPromptHandler returns the trip planning instructions for the
// requested origin and destination.
func PlanTripPromptHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	origin := request.Params.Arguments["origin"]
	destination := request.Params.Arguments["destination"]
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("origin and destination are required")
	}
	departure := request.Params.Arguments["departure"]
	if departure == "" {
		departure = "the current date and time, formatted as YYYY-MM-DD HH:MM:SS"
	}

	text := fmt.Sprintf(`Plan a Rapid KL trip from %q to %q departing at %s.

1. Call get_stations with %q and pick the best match. Note its ID and coordinates.
2. Call get_stations with %q and do the same.
3. Call get_journey_planner with the origin and destination coordinates.
   Longitude and latitude are separate arguments; do not swap them.
   Use mode "transit" and journey_type "fastest" unless the user asked otherwise.
4. If the planner has no routes, call get_fare with the two IDs so the user at least knows the fare.
5. Summarize the fastest route: lines to take, where to change, walking segments, arrival time and adult fare.`,
		origin, destination, departure, origin, destination)

	return mcp.NewGetPromptResult(
		"Rapid KL Trip Planning",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		},
	), nil
}

// StationSearchTipsHandler returns guidance for get_stations
func StationSearchTipsHandler(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tips := `You have access to Rapid KL station tools.
When searching for stations:

1. Use the station or landmark name only, e.g. "Pasar Seni" rather than "Pasar Seni LRT station, Kuala Lumpur"
2. Results list Latitude before Longitude; the journey planner takes from_lng/from_lat, so pass each value to the matching argument
3. Result IDs can be used directly as from_id and to_id in get_fare
4. If nothing is found, try a shorter or alternative name (e.g. "Bukit Bintang" for "BB")
5. Use get_all_stations or the rapidkl://stations resource to browse whole lines and check accessibility`

	return mcp.NewGetPromptResult(
		"Station Search Tips",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(
				mcp.RoleAssistant,
				mcp.NewTextContent(tips),
			),
		},
	), nil
}

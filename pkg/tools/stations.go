package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
)

// StationsResourceURI is the URI of the station directory resource.
const StationsResourceURI = "rapidkl://stations"

// ParseStop reads a stop entry. ok is false for placeholder entries that
// are empty or not objects.
func ParseStop(entry any) (stop Stop, ok bool) {
	m, isObject := jsonval.Object(entry)
	if !isObject || len(m) == 0 {
		return Stop{}, false
	}

	stop = Stop{
		Name:       jsonval.LookupString(m, "stop_name", jsonval.NotAvailable),
		ID:         jsonval.LookupString(m, "stop_id", jsonval.NotAvailable),
		Accessible: jsonval.Truthy(jsonval.Lookup(m, "oku", nil)),
		Latitude:   jsonval.LookupString(m, "lat", jsonval.NotAvailable),
		Longitude:  jsonval.LookupString(m, "lng", jsonval.NotAvailable),
	}
	if trips, isList := jsonval.Array(jsonval.Lookup(m, "trips", nil)); isList {
		stop.TripCount = len(trips)
		stop.TripsKnown = true
	}
	return stop, true
}

// ParseRoute reads a route entry with its stops in source order.
func ParseRoute(entry any) (Route, bool) {
	m, ok := jsonval.Object(entry)
	if !ok {
		return Route{}, false
	}

	route := Route{
		ID:       jsonval.LookupString(m, "route_id", jsonval.NotAvailable),
		Name:     jsonval.LookupString(m, "route_name", jsonval.NotAvailable),
		Category: jsonval.LookupString(m, "category", jsonval.NotAvailable),
	}
	stops, _ := jsonval.Array(jsonval.Lookup(m, "stops", nil))
	for _, entry := range stops {
		if stop, ok := ParseStop(entry); ok {
			route.Stops = append(route.Stops, stop)
		}
	}
	return route, true
}

// Text renders the stop as an indented block.
func (s Stop) Text() string {
	accessibility := "Not Accessible"
	if s.Accessible {
		accessibility = "Accessible"
	}
	trips := jsonval.NotAvailable
	if s.TripsKnown {
		trips = strconv.Itoa(s.TripCount)
	}

	return strings.Join([]string{
		fmt.Sprintf("  - Stop: %s (ID: %s)", s.Name, s.ID),
		"    Accessibility: " + accessibility,
		fmt.Sprintf("    Coordinates: Latitude %s, Longitude %s", s.Latitude, s.Longitude),
		"    Known Trips: " + trips,
	}, "\n")
}

// Text renders the route header followed by its stops.
func (r Route) Text() string {
	header := strings.Join([]string{
		fmt.Sprintf("Route: %s (ID: %s)", r.Name, r.ID),
		"Category: " + r.Category,
	}, "\n")

	if len(r.Stops) == 0 {
		return header + "\n  No stops available for this route."
	}

	blocks := make([]string, 0, len(r.Stops))
	for _, stop := range r.Stops {
		blocks = append(blocks, stop.Text())
	}
	return header + "\nStops:\n" + strings.Join(blocks, "\n\n")
}

// FormatAllStations renders the station directory response.
func FormatAllStations(data any) string {
	return guard("station", func() string {
		payload, err := jsonval.DecodeMaybeString(data)
		if err != nil {
			return (&dataError{subject: "station", err: err}).Error()
		}
		if _, ok := jsonval.Object(payload); !ok {
			return newDataError("station", "response is %s, not an object", describe(payload)).Error()
		}

		if !jsonval.Truthy(jsonval.Lookup(payload, "success", nil)) {
			return "Failed to fetch stations: " + jsonval.LookupString(payload, "message", MsgUnknownError)
		}

		entries, ok := jsonval.Array(jsonval.Lookup(payload, "routes", nil))
		if !ok {
			return newDataError("station", "routes is missing or not a list").Error()
		}

		blocks := make([]string, 0, len(entries))
		for _, entry := range entries {
			if route, ok := ParseRoute(entry); ok {
				blocks = append(blocks, route.Text())
			}
		}
		if len(blocks) == 0 {
			return "No routes found."
		}
		return strings.Join(blocks, "\n\n")
	})
}

// AllStations fetches and renders the full route and stop catalog.
func (s *Service) AllStations(ctx context.Context) string {
	data, ok := s.fetcher.Fetch(ctx, s.cfg.StopsURL())
	if !ok {
		return MsgStationsUnavailable
	}
	return FormatAllStations(data)
}

// GetAllStationsTool returns a tool definition for the station directory
func GetAllStationsTool() mcp.Tool {
	return mcp.NewTool("get_all_stations",
		mcp.WithDescription("List every Rapid KL route with its stations, accessibility and coordinates"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// HandleGetAllStations implements the station directory tool
func (s *Service) HandleGetAllStations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.logger.Debug("listing stations", "tool", "get_all_stations")
	return mcp.NewToolResultText(s.AllStations(ctx)), nil
}

// StationsResource returns the resource definition of the station directory
func StationsResource() mcp.Resource {
	return mcp.NewResource(StationsResourceURI, "Rapid KL stations",
		mcp.WithResourceDescription("All Rapid KL routes and their stations"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleStationsResource serves the station directory resource
func (s *Service) HandleStationsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.logger.Debug("reading station resource", "uri", req.Params.URI)
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StationsResourceURI,
			MIMEType: "text/plain",
			Text:     s.AllStations(ctx),
		},
	}, nil
}

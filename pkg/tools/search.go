package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rapidmcp/pkg/geo"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
)

// parsePosition reads geometry.coordinates, which the geocoder sends in
// GeoJSON order: longitude first, latitude second.
func parsePosition(geometry any) (*geo.Location, error) {
	raw, ok := jsonval.Array(jsonval.Lookup(geometry, "coordinates", nil))
	if !ok {
		return nil, fmt.Errorf("coordinates missing or not a list")
	}

	position := make([]float64, 0, len(raw))
	for i, v := range raw {
		f, err := jsonval.Float(v)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d: %w", i, err)
		}
		position = append(position, f)
	}

	loc, err := geo.FromPosition(position)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// ParseSearchResult reads one geocoder result. A geometry that cannot be
// read leaves Location nil instead of failing the result.
func ParseSearchResult(entry any) SearchResult {
	result := SearchResult{
		Name:     jsonval.LookupString(entry, "name", jsonval.NotAvailable),
		ID:       jsonval.LookupString(entry, "id", jsonval.NotAvailable),
		Category: jsonval.LookupString(entry, "category", jsonval.NotAvailable),
	}
	if loc, err := parsePosition(jsonval.Lookup(entry, "geometry", nil)); err == nil {
		result.Location = loc
	}
	return result
}

func formatDegrees(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Text renders the result as a numbered block.
func (r SearchResult) Text(n int) string {
	lat, lng := jsonval.NotAvailable, jsonval.NotAvailable
	if r.Location != nil {
		lat = formatDegrees(r.Location.Latitude)
		lng = formatDegrees(r.Location.Longitude)
	}

	return strings.Join([]string{
		fmt.Sprintf("%d. Name: %s", n, r.Name),
		"   ID: " + r.ID,
		"   Category: " + r.Category,
		fmt.Sprintf("   Coordinates: Latitude %s, Longitude %s", lat, lng),
	}, "\n")
}

// FormatStationSearch renders a geocoder response for encodedQuery.
func FormatStationSearch(data any, encodedQuery string) string {
	return guard("station search", func() string {
		if _, ok := jsonval.Object(data); !ok {
			return "Invalid response format from the station search API."
		}
		if !jsonval.Has(data, "results") {
			return "Station search failed: " + jsonval.LookupString(data, "message", "No results returned by the API")
		}

		raw := jsonval.Lookup(data, "results", []any{})
		entries, ok := jsonval.Array(raw)
		if !ok {
			return newDataError("station search", "results is %s, not a list", describe(raw)).Error()
		}
		if len(entries) == 0 {
			return "No stations found for query: " + encodedQuery
		}

		blocks := make([]string, 0, len(entries))
		for i, entry := range entries {
			blocks = append(blocks, ParseSearchResult(entry).Text(i+1))
		}
		header := fmt.Sprintf("Found %d station(s) for query: %s", len(entries), encodedQuery)
		return header + "\n\n" + strings.Join(blocks, "\n\n")
	})
}

// SearchStations geocodes free text against the operator's network.
func (s *Service) SearchStations(ctx context.Context, text string) string {
	encoded := myrapid.Quote(strings.TrimSpace(text))
	data, ok := s.fetcher.Fetch(ctx, s.cfg.GeocodeURL(encoded))
	if !ok {
		return MsgSearchUnavailable
	}
	return FormatStationSearch(data, encoded)
}

// GetStationsTool returns a tool definition for station search
func GetStationsTool() mcp.Tool {
	return mcp.NewTool("get_stations",
		mcp.WithDescription("Search Rapid KL stations and points of interest by name and get their IDs and coordinates"),
		mcp.WithString("search_text",
			mcp.Required(),
			mcp.Description("Free-text station or place name, e.g. \"KL Sentral\""),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// HandleGetStations implements the station search tool
func (s *Service) HandleGetStations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("search_text")
	if err != nil {
		return ErrorResponse(err.Error()), nil
	}

	s.logger.Debug("searching stations", "tool", "get_stations", "query", text)
	return mcp.NewToolResultText(s.SearchStations(ctx, text)), nil
}

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rapidmcp/pkg/geo"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid"
	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
)

// Accepted departure time layouts.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// statusSuccess is the only status value that carries an itinerary.
const statusSuccess = "success"

// ErrDepartureFormat is returned for departure times in neither layout.
var ErrDepartureFormat = errors.New(MsgDepartureFormat)

// JourneyRequest holds the journey planner inputs.
type JourneyRequest struct {
	From        geo.Location
	To          geo.Location
	Mode        string
	JourneyType string
	Departure   string
}

// NormalizeDeparture accepts a full date-time or a bare date, which is
// taken as midnight.
func NormalizeDeparture(s string) (string, error) {
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return t.Format(DateTimeLayout), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout) + " 00:00:00", nil
	}
	return "", ErrDepartureFormat
}

func parseLeg(entry any) Leg {
	leg := Leg{
		Type:     jsonval.LookupString(entry, "type", jsonval.NotAvailable),
		Duration: jsonval.LookupString(entry, "duration", jsonval.NotAvailable),
		Distance: jsonval.LookupString(entry, "distance", ""),
	}
	if leg.Type != LegTypeTransit {
		return leg
	}

	leg.RouteName = jsonval.LookupString(entry, "route_name", jsonval.NotAvailable)
	leg.RouteShortName = jsonval.LookupString(entry, "route_short_name", "")
	leg.Headsign = jsonval.LookupString(entry, "headsign", jsonval.NotAvailable)
	leg.Departure = jsonval.LookupString(entry, "estimated_departure_time", jsonval.NotAvailable)
	leg.Arrival = jsonval.LookupString(entry, "estimated_arrival_time", jsonval.NotAvailable)

	stops, _ := jsonval.Array(jsonval.Lookup(entry, "stops", nil))
	for _, s := range stops {
		if _, ok := jsonval.Object(s); !ok {
			continue
		}
		leg.Stops = append(leg.Stops, LegStop{
			Name: jsonval.LookupString(s, "stop_name", jsonval.NotAvailable),
			ID:   jsonval.LookupString(s, "stop_id", jsonval.NotAvailable),
		})
	}
	return leg
}

func parsePlannedRoute(entry any) (PlannedRoute, error) {
	if _, ok := jsonval.Object(entry); !ok {
		return PlannedRoute{}, newDataError("journey", "route is %s, not an object", describe(entry))
	}

	route := PlannedRoute{
		EstimatedArrival: jsonval.LookupString(entry, "estimated_arrival_time", jsonval.NotAvailable),
		DurationSeconds:  jsonval.LookupString(entry, "duration", jsonval.NotAvailable),
		Distance:         jsonval.LookupString(entry, "distance", ""),
	}
	if seconds, err := jsonval.Float(jsonval.Lookup(entry, "duration", nil)); err == nil {
		route.DurationMinutes = fmt.Sprintf("%.1f", seconds/60)
	}

	fares := jsonval.Lookup(entry, "fares", map[string]any{})
	quote, err := ParseFareQuote(fares)
	if err != nil {
		return PlannedRoute{}, newDataError("journey", "fares is %s, not an object", describe(fares))
	}
	route.Fares = quote

	legs, _ := jsonval.Array(jsonval.Lookup(entry, "legs", nil))
	for _, l := range legs {
		route.Legs = append(route.Legs, parseLeg(l))
	}
	return route, nil
}

// ParseJourneyPlan reads a successful planner response.
func ParseJourneyPlan(payload any) (JourneyPlan, error) {
	plan := JourneyPlan{
		DepartureTime: jsonval.LookupString(payload, "departure_time", jsonval.NotAvailable),
	}

	raw := jsonval.Lookup(payload, "routes", []any{})
	entries, ok := jsonval.Array(raw)
	if !ok {
		return JourneyPlan{}, newDataError("journey", "routes is %s, not a list", describe(raw))
	}
	for _, entry := range entries {
		route, err := parsePlannedRoute(entry)
		if err != nil {
			return JourneyPlan{}, err
		}
		plan.Routes = append(plan.Routes, route)
	}
	return plan, nil
}

// withUnit appends unit to a rendered quantity unless it is the
// placeholder.
func withUnit(value, unit string) string {
	if value == jsonval.NotAvailable {
		return value
	}
	return value + " " + unit
}

// Text renders the leg as an indented block.
func (l Leg) Text(n int) string {
	lines := []string{
		fmt.Sprintf("    Leg %d:", n),
		"      Type: " + l.Type,
		"      Duration: " + withUnit(l.Duration, "seconds"),
	}
	if l.Distance != "" {
		lines = append(lines, "      Distance: "+l.Distance+" meters")
	}

	switch l.Type {
	case LegTypeTransit:
		route := "      Route: " + l.RouteName
		if l.RouteShortName != "" {
			route += " (" + l.RouteShortName + ")"
		}
		lines = append(lines,
			route,
			"      Headsign: "+l.Headsign,
			"      Estimated Departure: "+l.Departure,
			"      Estimated Arrival: "+l.Arrival,
			"      Stops:",
		)
		for _, s := range l.Stops {
			lines = append(lines, fmt.Sprintf("        - %s (ID: %s)", s.Name, s.ID))
		}
	case LegTypeWalking:
		lines = append(lines, "      Walking distance")
	}
	return strings.Join(lines, "\n")
}

// Text renders the route as a numbered block with its fares and legs.
func (r PlannedRoute) Text(n int) string {
	duration := "  Total Duration: " + withUnit(r.DurationSeconds, "seconds")
	if r.DurationMinutes != "" {
		duration += " (" + r.DurationMinutes + " minutes)"
	}

	lines := []string{
		fmt.Sprintf("Route %d:", n),
		"  Estimated Arrival: " + r.EstimatedArrival,
		duration,
	}
	if r.Distance != "" {
		lines = append(lines, "  Total Distance: "+r.Distance+" meters")
	}
	lines = append(lines, "  Fares:")
	for _, fare := range r.Fares.Lines() {
		lines = append(lines, "    "+fare)
	}
	lines = append(lines, "  Legs:")
	for i, leg := range r.Legs {
		lines = append(lines, leg.Text(i+1))
	}
	return strings.Join(lines, "\n")
}

// Text renders the whole plan.
func (p JourneyPlan) Text() string {
	blocks := []string{"Departure Time: " + p.DepartureTime}
	if len(p.Routes) == 0 {
		blocks = append(blocks, "No routes found for this journey.")
	}
	for i, route := range p.Routes {
		blocks = append(blocks, route.Text(i+1))
	}
	if p.StraightLine != "" {
		blocks = append(blocks, "Straight-line Distance: "+p.StraightLine)
	}
	return strings.Join(blocks, "\n\n")
}

// FormatJourneyPlan renders a planner response. When from and to are
// valid coordinates an informational straight-line distance block is
// appended after the itinerary.
func FormatJourneyPlan(data any, from, to geo.Location) string {
	return guard("journey", func() string {
		payload, err := jsonval.DecodeMaybeString(data)
		if err != nil {
			return "Invalid JSON response from the journey planner API."
		}
		if _, ok := jsonval.Object(payload); !ok {
			return "Invalid response format from the journey planner API."
		}

		if status, _ := jsonval.Lookup(payload, "status", nil).(string); status != statusSuccess {
			return "Journey planning failed: " + jsonval.LookupString(payload, "message", MsgUnknownError)
		}

		plan, err := ParseJourneyPlan(payload)
		if err != nil {
			return err.Error()
		}

		if geo.ValidateCoords(from.Latitude, from.Longitude) == nil && geo.ValidateCoords(to.Latitude, to.Longitude) == nil {
			plan.StraightLine = fmt.Sprintf("%.2f km", from.DistanceTo(to)/1000)
		}
		return plan.Text()
	})
}

// PlanJourney normalizes the departure time, queries the planner and
// renders the candidate routes. A malformed departure time is reported
// without contacting the API.
func (s *Service) PlanJourney(ctx context.Context, req JourneyRequest) string {
	departure, err := NormalizeDeparture(req.Departure)
	if err != nil {
		return err.Error()
	}

	rawURL := s.cfg.JourneyPlannerURL(myrapid.JourneyQuery{
		FromLng:       req.From.Longitude,
		FromLat:       req.From.Latitude,
		ToLng:         req.To.Longitude,
		ToLat:         req.To.Latitude,
		Mode:          req.Mode,
		JourneyType:   req.JourneyType,
		DepartureTime: departure,
	})
	data, ok := s.fetcher.Fetch(ctx, rawURL)
	if !ok {
		return MsgJourneyUnavailable
	}
	return FormatJourneyPlan(data, req.From, req.To)
}

// GetJourneyPlannerTool returns a tool definition for journey planning
func GetJourneyPlannerTool() mcp.Tool {
	return mcp.NewTool("get_journey_planner",
		mcp.WithDescription("Plan a Rapid KL journey between two coordinates, with legs, stops, times and fares"),
		mcp.WithNumber("from_lng",
			mcp.Required(),
			mcp.Description("Origin longitude"),
		),
		mcp.WithNumber("from_lat",
			mcp.Required(),
			mcp.Description("Origin latitude"),
		),
		mcp.WithNumber("to_lng",
			mcp.Required(),
			mcp.Description("Destination longitude"),
		),
		mcp.WithNumber("to_lat",
			mcp.Required(),
			mcp.Description("Destination latitude"),
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Travel mode passed to the planner, e.g. \"transit\""),
		),
		mcp.WithString("journey_type",
			mcp.Required(),
			mcp.Description("Journey preference passed to the planner, e.g. \"fastest\""),
		),
		mcp.WithString("departure_datetime",
			mcp.Required(),
			mcp.Description("Departure time as 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// HandleGetJourneyPlanner implements the journey planner tool
func (s *Service) HandleGetJourneyPlanner(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var jr JourneyRequest
	var err error

	coords := []struct {
		name string
		dst  *float64
	}{
		{"from_lng", &jr.From.Longitude},
		{"from_lat", &jr.From.Latitude},
		{"to_lng", &jr.To.Longitude},
		{"to_lat", &jr.To.Latitude},
	}
	for _, c := range coords {
		if *c.dst, err = req.RequireFloat(c.name); err != nil {
			return ErrorResponse(err.Error()), nil
		}
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"mode", &jr.Mode},
		{"journey_type", &jr.JourneyType},
		{"departure_datetime", &jr.Departure},
	}
	for _, p := range strs {
		if *p.dst, err = req.RequireString(p.name); err != nil {
			return ErrorResponse(err.Error()), nil
		}
	}

	s.logger.Debug("planning journey", "tool", "get_journey_planner",
		"from", jr.From, "to", jr.To, "mode", jr.Mode, "departure", jr.Departure)
	return mcp.NewToolResultText(s.PlanJourney(ctx, jr)), nil
}

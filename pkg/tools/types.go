package tools

import (
	"github.com/NERVsystems/rapidmcp/pkg/geo"
)

// FareQuote is a flat fare breakdown. Every amount is already rendered
// and holds jsonval.NotAvailable when the API omitted it.
type FareQuote struct {
	Adult      string
	Cash       string
	Cashless   string
	Concession string
	Standard   string
}

// Route is one line of the network with its stops in source order.
type Route struct {
	ID       string
	Name     string
	Category string
	Stops    []Stop
}

// Stop is a station served by a route.
type Stop struct {
	Name       string
	ID         string
	Accessible bool
	Latitude   string
	Longitude  string
	TripCount  int
	TripsKnown bool
}

// SearchResult is a point of interest returned by the geocoder.
type SearchResult struct {
	Name     string
	ID       string
	Category string
	Location *geo.Location // nil when the geometry could not be read
}

// JourneyPlan is the planner's answer for one departure time.
// StraightLine is the rendered origin to destination distance, empty when
// the request coordinates were unusable.
type JourneyPlan struct {
	DepartureTime string
	StraightLine  string
	Routes        []PlannedRoute
}

// PlannedRoute is one candidate itinerary. Distance is empty when the
// API did not report one; DurationMinutes is empty when the duration is
// not numeric.
type PlannedRoute struct {
	EstimatedArrival string
	DurationSeconds  string
	DurationMinutes  string
	Distance         string
	Fares            FareQuote
	Legs             []Leg
}

// Leg is one segment of a planned route. Distance is empty when absent.
type Leg struct {
	Type     string
	Duration string
	Distance string

	// Transit-only fields.
	RouteName      string
	RouteShortName string
	Headsign       string
	Departure      string
	Arrival        string
	Stops          []LegStop
}

// LegStop is a stop traversed by a transit leg.
type LegStop struct {
	Name string
	ID   string
}

// Leg type markers used by the planner. The walking marker is spelled
// the way the API sends it.
const (
	LegTypeTransit = "transit"
	LegTypeWalking = "walkinng"
)

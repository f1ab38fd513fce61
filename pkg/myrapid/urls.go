package myrapid

import (
	"net/url"
	"strconv"
	"strings"
)

// JourneyQuery holds the parameters of a journey planner request. The
// departure time must already be normalized.
type JourneyQuery struct {
	FromLng       float64
	FromLat       float64
	ToLng         float64
	ToLat         float64
	Mode          string
	JourneyType   string
	DepartureTime string
}

// Quote percent-encodes s for use as a query value, encoding spaces as
// %20 rather than '+'.
func Quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// endpoint joins the base URL with path and an already encoded query.
func (c Config) endpoint(path string, query []string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + path + "?" + strings.Join(query, "&")
}

// FareURL builds the fare lookup URL for two stop or POI identifiers.
func (c Config) FareURL(from, to string) string {
	return c.endpoint("fares", []string{
		"agency=" + Quote(c.Agency),
		"from=" + Quote(from),
		"to=" + Quote(to),
	})
}

// StopsURL builds the URL of the full route and stop catalog.
func (c Config) StopsURL() string {
	return c.endpoint("stops", []string{
		"agency=" + Quote(c.Agency),
	})
}

// GeocodeURL builds the POI search URL. encodedQuery must already be
// percent-encoded with Quote.
func (c Config) GeocodeURL(encodedQuery string) string {
	return c.endpoint("geocode", []string{
		"scope=" + Quote(c.Scope),
		"agency=" + Quote(c.Agency),
		"q=" + encodedQuery,
	})
}

// JourneyPlannerURL builds the journey planner URL for q.
func (c Config) JourneyPlannerURL(q JourneyQuery) string {
	return c.endpoint("journey_planner", []string{
		"from_lng=" + formatCoord(q.FromLng),
		"from_lat=" + formatCoord(q.FromLat),
		"to_lng=" + formatCoord(q.ToLng),
		"to_lat=" + formatCoord(q.ToLat),
		"mode=" + Quote(q.Mode),
		"journey_type=" + Quote(q.JourneyType),
		"departure_time=" + Quote(q.DepartureTime),
		"agency=" + Quote(c.Agency),
	})
}

package tools

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NERVsystems/rapidmcp/pkg/geo"
)

const journeyFixture = `{
	"status": "success",
	"departure_time": "2024-01-15 08:30:00",
	"routes": [
		{
			"estimated_arrival_time": "2024-01-15 08:58:00",
			"duration": 1680,
			"distance": 5230,
			"fares": {"adult": 2.1, "cash": 2.5, "cashless": 2.1, "consession": 1.05, "fare": 2.1},
			"legs": [
				{"type": "walkinng", "duration": 240, "distance": 300},
				{
					"type": "transit",
					"duration": 960,
					"distance": 4930,
					"route_name": "LRT Kelana Jaya Line",
					"route_short_name": "KJ",
					"headsign": "Gombak",
					"estimated_departure_time": "2024-01-15 08:36:00",
					"estimated_arrival_time": "2024-01-15 08:52:00",
					"stops": [
						{"stop_name": "KL Sentral", "stop_id": "KJ15"},
						"junk",
						{"stop_name": "KLCC", "stop_id": "KJ10"}
					]
				},
				{"type": "cycling", "duration": 60}
			]
		}
	]
}`

var (
	klSentral = geo.Location{Latitude: 3.1343, Longitude: 101.6865}
	klcc      = geo.Location{Latitude: 3.1579, Longitude: 101.7116}
)

func TestNormalizeDeparture(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-15 08:30:00", want: "2024-01-15 08:30:00"},
		{in: "2024-01-15", want: "2024-01-15 00:00:00"},
		{in: "2024-02-29", want: "2024-02-29 00:00:00"},
		{in: "15/01/2024", wantErr: true},
		{in: "2024-01-15T08:30:00", wantErr: true},
		{in: "2024-01-15 08:30", wantErr: true},
		{in: "2023-02-29", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeDeparture(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDepartureFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatJourneyPlan(t *testing.T) {
	want := strings.Join([]string{
		"Departure Time: 2024-01-15 08:30:00",
		"",
		"Route 1:",
		"  Estimated Arrival: 2024-01-15 08:58:00",
		"  Total Duration: 1680 seconds (28.0 minutes)",
		"  Total Distance: 5230 meters",
		"  Fares:",
		"    Adult Fare: $2.1",
		"    Cash Fare: $2.5",
		"    Cashless Fare: $2.1",
		"    Concession Fare: $1.05",
		"    Standard Fare: $2.1",
		"  Legs:",
		"    Leg 1:",
		"      Type: walkinng",
		"      Duration: 240 seconds",
		"      Distance: 300 meters",
		"      Walking distance",
		"    Leg 2:",
		"      Type: transit",
		"      Duration: 960 seconds",
		"      Distance: 4930 meters",
		"      Route: LRT Kelana Jaya Line (KJ)",
		"      Headsign: Gombak",
		"      Estimated Departure: 2024-01-15 08:36:00",
		"      Estimated Arrival: 2024-01-15 08:52:00",
		"      Stops:",
		"        - KL Sentral (ID: KJ15)",
		"        - KLCC (ID: KJ10)",
		"    Leg 3:",
		"      Type: cycling",
		"      Duration: 60 seconds",
		"",
		"Straight-line Distance: 3.83 km",
	}, "\n")

	data := mustDecode(t, journeyFixture)
	assert.Equal(t, want, FormatJourneyPlan(data, klSentral, klcc))
	assert.Equal(t, FormatJourneyPlan(data, klSentral, klcc), FormatJourneyPlan(data, klSentral, klcc))
}

func TestFormatJourneyPlanDecodesStringPayload(t *testing.T) {
	payload := `{"status": "success", "departure_time": "2024-01-15 08:30:00", "routes": [{"duration": 120, "legs": [{"type": "walkinng", "duration": 120}]}]}`

	got := FormatJourneyPlan(payload, klSentral, klcc)
	want := strings.Join([]string{
		"Departure Time: 2024-01-15 08:30:00",
		"",
		"Route 1:",
		"  Estimated Arrival: N/A",
		"  Total Duration: 120 seconds (2.0 minutes)",
		"  Fares:",
		"    Adult Fare: $N/A",
		"    Cash Fare: $N/A",
		"    Cashless Fare: $N/A",
		"    Concession Fare: $N/A",
		"    Standard Fare: $N/A",
		"  Legs:",
		"    Leg 1:",
		"      Type: walkinng",
		"      Duration: 120 seconds",
		"      Walking distance",
		"",
		"Straight-line Distance: 3.83 km",
	}, "\n")
	assert.Equal(t, want, got)
	assert.Equal(t, FormatJourneyPlan(mustDecode(t, payload), klSentral, klcc), got)
}

func TestFormatJourneyPlanStraightLineFollowsItinerary(t *testing.T) {
	got := FormatJourneyPlan(mustDecode(t, journeyFixture), klSentral, klcc)
	routeAt := strings.Index(got, "Route 1:")
	lineAt := strings.Index(got, "Straight-line Distance:")
	require.True(t, routeAt > 0)
	assert.Greater(t, lineAt, routeAt)
	assert.True(t, strings.HasSuffix(got, "\n\nStraight-line Distance: 3.83 km"), got)
}

func TestFormatJourneyPlanWalkingMarkerIsExact(t *testing.T) {
	data := mustDecode(t, `{"status": "success", "routes": [{"duration": 60, "legs": [{"type": "walking", "duration": 60}]}]}`)
	got := FormatJourneyPlan(data, klSentral, klcc)
	assert.Contains(t, got, "      Type: walking")
	assert.NotContains(t, got, "Walking distance")
}

func TestFormatJourneyPlanDefaults(t *testing.T) {
	data := mustDecode(t, `{"status": "success", "routes": [{"legs": [{"type": "transit"}]}]}`)
	got := FormatJourneyPlan(data, geo.Location{Latitude: 91}, klcc)

	assert.True(t, strings.HasPrefix(got, "Departure Time: N/A\n\nRoute 1:"), got)
	assert.NotContains(t, got, "Straight-line Distance")
	assert.Contains(t, got, "  Total Duration: N/A\n")
	assert.NotContains(t, got, "Total Distance")
	assert.Contains(t, got, "    Adult Fare: $N/A")
	assert.Contains(t, got, "      Route: N/A\n")
	assert.Contains(t, got, "      Headsign: N/A")
	assert.True(t, strings.HasSuffix(got, "      Stops:"), got)
}

func TestFormatJourneyPlanNoRoutes(t *testing.T) {
	for _, body := range []string{
		`{"status": "success", "departure_time": "2024-01-15 08:30:00", "routes": []}`,
		`{"status": "success", "departure_time": "2024-01-15 08:30:00"}`,
	} {
		got := FormatJourneyPlan(mustDecode(t, body), klSentral, klcc)
		assert.Equal(t, "Departure Time: 2024-01-15 08:30:00\n\nNo routes found for this journey.\n\nStraight-line Distance: 3.83 km", got)
	}
}

func TestFormatJourneyPlanFailures(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"status error", map[string]any{"status": "error", "message": "no service"}, "Journey planning failed: no service"},
		{"missing status", map[string]any{"routes": []any{}}, "Journey planning failed: Unknown error"},
		{"status case", map[string]any{"status": "SUCCESS"}, "Journey planning failed: Unknown error"},
		{"list payload", []any{}, "Invalid response format from the journey planner API."},
		{"bad json string", "{not json", "Invalid JSON response from the journey planner API."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatJourneyPlan(tt.data, klSentral, klcc))
		})
	}

	got := FormatJourneyPlan(mustDecode(t, `{"status": "success", "routes": [{"fares": "2.10"}]}`), klSentral, klcc)
	assert.True(t, strings.HasPrefix(got, "Error processing journey data: "), got)

	got = FormatJourneyPlan(mustDecode(t, `{"status": "success", "routes": "none"}`), klSentral, klcc)
	assert.True(t, strings.HasPrefix(got, "Error processing journey data: "), got)
}

func TestServicePlanJourney(t *testing.T) {
	s, f := newTestService(t, journeyFixture)

	got := s.PlanJourney(context.Background(), JourneyRequest{
		From:        klSentral,
		To:          klcc,
		Mode:        "transit",
		JourneyType: "fastest",
		Departure:   "2024-01-15",
	})
	assert.True(t, strings.HasPrefix(got, "Departure Time: 2024-01-15 08:30:00"), got)

	calls := f.calls()
	require.Len(t, calls, 1)
	u, err := url.Parse(calls[0])
	require.NoError(t, err)
	assert.Equal(t, "/endpoint/geoservice/journey_planner", u.Path)
	assert.Contains(t, u.RawQuery, "departure_time=2024-01-15%2000%3A00%3A00")

	q := u.Query()
	assert.Equal(t, "101.6865", q.Get("from_lng"))
	assert.Equal(t, "3.1343", q.Get("from_lat"))
	assert.Equal(t, "101.7116", q.Get("to_lng"))
	assert.Equal(t, "3.1579", q.Get("to_lat"))
	assert.Equal(t, "transit", q.Get("mode"))
	assert.Equal(t, "fastest", q.Get("journey_type"))
	assert.Equal(t, "rapidkl", q.Get("agency"))
}

func TestServicePlanJourneyRejectsDepartureWithoutFetching(t *testing.T) {
	s, f := newTestService(t, journeyFixture)

	got := s.PlanJourney(context.Background(), JourneyRequest{
		From:      klSentral,
		To:        klcc,
		Departure: "15/01/2024",
	})
	assert.Equal(t, MsgDepartureFormat, got)
	assert.Empty(t, f.calls())
}

func TestServicePlanJourneyUnavailable(t *testing.T) {
	s, _ := newTestService(t, "")
	got := s.PlanJourney(context.Background(), JourneyRequest{From: klSentral, To: klcc, Departure: "2024-01-15"})
	assert.Equal(t, MsgJourneyUnavailable, got)
}

func TestHandleGetJourneyPlanner(t *testing.T) {
	s, f := newTestService(t, journeyFixture)

	args := map[string]any{
		"from_lng":           101.6865,
		"from_lat":           3.1343,
		"to_lng":             101.7116,
		"to_lat":             3.1579,
		"mode":               "transit",
		"journey_type":       "fastest",
		"departure_datetime": "2024-01-15 08:30:00",
	}
	result, err := s.HandleGetJourneyPlanner(context.Background(), toolRequest("get_journey_planner", args))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, toolText(t, result), "Route: LRT Kelana Jaya Line (KJ)")
	require.Len(t, f.calls(), 1)

	delete(args, "to_lat")
	result, err = s.HandleGetJourneyPlanner(context.Background(), toolRequest("get_journey_planner", args))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, toolText(t, result), "to_lat")
	assert.Len(t, f.calls(), 1)
}

package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/NERVsystems/rapidmcp/pkg/myrapid/jsonval"
)

// ParseFareQuote reads the five fare amounts from a fares object. The API
// spells the concession key "consession"; the correct spelling is
// accepted as a fallback.
func ParseFareQuote(fares any) (FareQuote, error) {
	if _, ok := jsonval.Object(fares); !ok {
		return FareQuote{}, newDataError("fare", "fares is %s, not an object", describe(fares))
	}

	concession := jsonval.Lookup(fares, "consession", nil)
	if concession == nil {
		concession = jsonval.Lookup(fares, "concession", jsonval.NotAvailable)
	}

	return FareQuote{
		Adult:      jsonval.LookupString(fares, "adult", jsonval.NotAvailable),
		Cash:       jsonval.LookupString(fares, "cash", jsonval.NotAvailable),
		Cashless:   jsonval.LookupString(fares, "cashless", jsonval.NotAvailable),
		Concession: jsonval.Display(concession),
		Standard:   jsonval.LookupString(fares, "fare", jsonval.NotAvailable),
	}, nil
}

// Lines renders the quote in its fixed order.
func (q FareQuote) Lines() []string {
	return []string{
		"Adult Fare: $" + q.Adult,
		"Cash Fare: $" + q.Cash,
		"Cashless Fare: $" + q.Cashless,
		"Concession Fare: $" + q.Concession,
		"Standard Fare: $" + q.Standard,
	}
}

// FormatFare renders a fare lookup response.
func FormatFare(data any) string {
	return guard("fare", func() string {
		payload, err := jsonval.DecodeMaybeString(data)
		if err != nil {
			return (&dataError{subject: "fare", err: err}).Error()
		}
		if !jsonval.Has(payload, "fares") {
			return MsgInvalidFareData
		}

		quote, err := ParseFareQuote(jsonval.Lookup(payload, "fares", nil))
		if err != nil {
			return err.Error()
		}
		return strings.Join(quote.Lines(), "\n")
	})
}

// Fare looks up the fare between two stop or POI identifiers.
func (s *Service) Fare(ctx context.Context, from, to string) string {
	data, ok := s.fetcher.Fetch(ctx, s.cfg.FareURL(from, to))
	if !ok {
		return MsgFareUnavailable
	}
	return FormatFare(data)
}

// GetFareTool returns a tool definition for fare lookups
func GetFareTool() mcp.Tool {
	return mcp.NewTool("get_fare",
		mcp.WithDescription("Get the ticket fares for a train journey from a start station to a destination station"),
		mcp.WithString("from_id",
			mcp.Required(),
			mcp.Description("The start station location (a stop_id or poi_id)"),
		),
		mcp.WithString("to_id",
			mcp.Required(),
			mcp.Description("The destination station location (a stop_id or poi_id)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// HandleGetFare implements the fare lookup tool
func (s *Service) HandleGetFare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := req.RequireString("from_id")
	if err != nil {
		return ErrorResponse(err.Error()), nil
	}
	to, err := req.RequireString("to_id")
	if err != nil {
		return ErrorResponse(err.Error()), nil
	}

	s.logger.Debug("looking up fare", "tool", "get_fare", "from", from, "to", to)
	return mcp.NewToolResultText(s.Fare(ctx, from, to)), nil
}

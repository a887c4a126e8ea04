// Package steps holds the bodies of the router's tool nodes. Each executor
// takes the trip state and a parsed invocation, merges its updates into the
// state, and returns the tool-result text for the message log. Executors
// never retry: a failure is surfaced for the model to react to on its next
// turn, because the right recovery (ask the user, pick a default, try
// another spelling) is a conversational decision.
package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/explorer"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/tools"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

const defaultCurrency = "EUR"

// Executors dispatches parsed invocations to their step bodies.
type Executors struct {
	search    model.ExternalSearchPort
	clarifier *explorer.Clarifier
}

// New wires the executors to the search port and the destination clarifier.
func New(search model.ExternalSearchPort, clarifier *explorer.Clarifier) *Executors {
	return &Executors{search: search, clarifier: clarifier}
}

// Execute runs the executor matching the invocation's kind. The switch is
// exhaustive over the closed tool set.
func (e *Executors) Execute(ctx context.Context, state *model.TripState, inv *tools.Invocation) (string, error) {
	switch inv.Kind {
	case tools.KindSearchFlights:
		return e.searchFlights(ctx, state, inv.Flights)
	case tools.KindSearchHotels:
		return e.searchHotels(ctx, state, inv.Hotels)
	case tools.KindSearchTransport:
		return e.searchTransport(ctx, state, inv.Transport)
	case tools.KindClarifyDestination:
		return e.clarifyDestination(ctx, state, inv.Clarify)
	case tools.KindGenerateItinerary:
		return e.generateItinerary(ctx, state, inv.Itinerary)
	}
	return "", errx.Newf(errx.InconsistentState, "no executor for tool kind %d", int(inv.Kind))
}

func (e *Executors) searchFlights(ctx context.Context, state *model.TripState, args *tools.FlightsArgs) (string, error) {
	if args.Origin == "" {
		return "", errx.New(errx.MissingParameter, "flight search requires an origin airport")
	}
	if args.OutboundDate == "" {
		return "", errx.New(errx.MissingParameter, "flight search requires an outbound date")
	}
	// Explicit request argument wins over the trip state.
	destination := args.Destination
	if destination == "" {
		destination = state.Destination
	}
	if destination == "" {
		return "", errx.New(errx.MissingParameter, "flight search requires a destination; none in the request or the trip state")
	}

	currency := args.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	offers, err := e.search.SearchFlights(ctx, model.FlightQuery{
		Origin:       args.Origin,
		Destination:  destination,
		OutboundDate: args.OutboundDate,
		ReturnDate:   args.ReturnDate,
		Adults:       args.Adults,
		Children:     args.Children,
		CabinClass:   args.CabinClass,
		Currency:     currency,
	})
	if err != nil {
		return "", err
	}

	summary, err := marshalOffers(offers)
	if err != nil {
		return "", err
	}

	state.MarkFlightsGathered(summary)
	state.BackfillDestination(destination)
	state.BackfillDepartureDate(args.OutboundDate)
	state.BackfillReturnDate(args.ReturnDate)

	logx.Debug().
		Str("session_id", state.SessionID).
		Str("destination", destination).
		Int("offers", len(offers)).
		Msg("Flight search completed")
	return summary, nil
}

func (e *Executors) searchHotels(ctx context.Context, state *model.TripState, args *tools.HotelsArgs) (string, error) {
	if args.CheckIn == "" {
		return "", errx.New(errx.MissingParameter, "hotel search requires a check-in date")
	}
	if args.CheckOut == "" {
		return "", errx.New(errx.MissingParameter, "hotel search requires a check-out date")
	}
	destination := args.Destination
	if destination == "" {
		destination = state.Destination
	}
	if destination == "" {
		return "", errx.New(errx.MissingParameter, "hotel search requires a destination; none in the request or the trip state")
	}

	currency := args.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	offers, err := e.search.SearchHotels(ctx, model.HotelQuery{
		Destination: destination,
		CheckIn:     args.CheckIn,
		CheckOut:    args.CheckOut,
		Adults:      args.Adults,
		Rooms:       args.Rooms,
		Currency:    currency,
	})
	if err != nil {
		return "", err
	}

	summary, err := marshalOffers(offers)
	if err != nil {
		return "", err
	}

	state.MarkHotelsGathered(summary)
	state.BackfillDestination(destination)
	state.BackfillDepartureDate(args.CheckIn)
	state.BackfillReturnDate(args.CheckOut)

	logx.Debug().
		Str("session_id", state.SessionID).
		Str("destination", destination).
		Int("offers", len(offers)).
		Msg("Hotel search completed")
	return summary, nil
}

func (e *Executors) searchTransport(ctx context.Context, state *model.TripState, args *tools.TransportArgs) (string, error) {
	destination := args.Destination
	if destination == "" {
		destination = state.Destination
	}
	if destination == "" {
		return "", errx.New(errx.MissingParameter, "ground transport search requires a destination; none in the request or the trip state")
	}
	origin := args.Origin
	if origin == "" {
		origin = destination
	}

	offers, err := e.search.SearchGroundTransport(ctx, model.TransportQuery{
		Origin:      origin,
		Destination: destination,
		PickupDate:  args.PickupDate,
		DropoffDate: args.DropoffDate,
	})
	if err != nil {
		return "", err
	}

	// Transport results are informational only; no trip-state flags.
	return marshalOffers(offers)
}

func (e *Executors) clarifyDestination(ctx context.Context, state *model.TripState, args *tools.ClarifyArgs) (string, error) {
	sub := state.BeginExplorer()

	out, err := e.clarifier.Advance(ctx, sub, args.UserInput)
	if err != nil {
		// The sub-dialogue stays in flight; the model can route the user's
		// next reply back here.
		return "", err
	}

	if out.Finished {
		state.FinishExplorer()
		if !out.Abandoned {
			state.ConfirmDestination(out.Destination, out.Interests)
		}
	}

	logx.Debug().
		Str("session_id", state.SessionID).
		Bool("finished", out.Finished).
		Bool("abandoned", out.Abandoned).
		Msg("Destination clarification step")
	return out.Reply, nil
}

func (e *Executors) generateItinerary(ctx context.Context, state *model.TripState, args *tools.ItineraryArgs) (string, error) {
	// Hard preconditions: request-argument override, then trip state, then
	// MissingParameter. No fallback beyond that.
	destination := fallback(args.Destination, state.Destination)
	departureDate := fallback(args.DepartureDate, state.DepartureDate)
	returnDate := fallback(args.ReturnDate, state.ReturnDate)
	interests := fallback(args.Interests, state.Interests)

	required := []struct{ name, value string }{
		{"destination", destination},
		{"departure_date", departureDate},
		{"return_date", returnDate},
		{"interests", interests},
	}
	for _, p := range required {
		if p.value == "" {
			return "", errx.Newf(errx.MissingParameter, "itinerary generation requires %s", p.name)
		}
	}

	text, err := e.search.GenerateItinerary(ctx, model.ItineraryRequest{
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Interests:     interests,
		FlightContext: state.LastFlightSummary,
		HotelContext:  state.LastHotelSummary,
	})
	if err != nil {
		return "", err
	}

	state.MarkItineraryGenerated()
	state.BackfillDestination(destination)
	state.BackfillDepartureDate(departureDate)
	state.BackfillReturnDate(returnDate)
	state.BackfillInterests(interests)

	logx.Debug().
		Str("session_id", state.SessionID).
		Str("destination", destination).
		Msg("Itinerary generated")
	return text, nil
}

// AutoItinerary runs itinerary generation from the trip state alone, for the
// router's auto-trigger path.
func (e *Executors) AutoItinerary(ctx context.Context, state *model.TripState) (string, error) {
	return e.generateItinerary(ctx, state, &tools.ItineraryArgs{})
}

func fallback(v, alt string) string {
	if v != "" {
		return v
	}
	return alt
}

func marshalOffers(offers any) (string, error) {
	b, err := json.Marshal(offers)
	if err != nil {
		return "", fmt.Errorf("marshal offers: %w", err)
	}
	return string(b), nil
}

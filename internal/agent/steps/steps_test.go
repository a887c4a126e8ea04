package steps

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/explorer"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/tools"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
)

// stubSearch records queries and returns fixed offers.
type stubSearch struct {
	flightErr    error
	hotelErr     error
	itineraryErr error

	lastFlightQuery    model.FlightQuery
	lastHotelQuery     model.HotelQuery
	lastItineraryReq   model.ItineraryRequest
	lastTransportQuery model.TransportQuery
}

func (s *stubSearch) SearchFlights(_ context.Context, q model.FlightQuery) ([]model.FlightOffer, error) {
	s.lastFlightQuery = q
	if s.flightErr != nil {
		return nil, s.flightErr
	}
	return []model.FlightOffer{{Airline: "Iberia", Price: "120 EUR", Stops: "direct"}}, nil
}

func (s *stubSearch) SearchHotels(_ context.Context, q model.HotelQuery) ([]model.HotelOffer, error) {
	s.lastHotelQuery = q
	if s.hotelErr != nil {
		return nil, s.hotelErr
	}
	return []model.HotelOffer{{Name: "Hotel Roma", RateInfo: "90 EUR per night"}}, nil
}

func (s *stubSearch) SearchGroundTransport(_ context.Context, q model.TransportQuery) ([]model.TransportOffer, error) {
	s.lastTransportQuery = q
	return []model.TransportOffer{{Supplier: "Hertz", Vehicle: "Golf", Price: "150.00 EUR"}}, nil
}

func (s *stubSearch) GenerateItinerary(_ context.Context, req model.ItineraryRequest) (string, error) {
	s.lastItineraryReq = req
	if s.itineraryErr != nil {
		return "", s.itineraryErr
	}
	return "Day 1: arrive and explore.", nil
}

// scriptedModel replays explorer replies in order.
type scriptedModel struct {
	replies []string
	calls   int
}

func (m *scriptedModel) Complete(_ context.Context, _ string, _ []*schema.Message) (*schema.Message, error) {
	reply := m.replies[min(m.calls, len(m.replies)-1)]
	m.calls++
	return schema.AssistantMessage(reply, nil), nil
}

func newExecutors(search model.ExternalSearchPort, replies ...string) *Executors {
	if len(replies) == 0 {
		replies = []string{"Where to?"}
	}
	return New(search, explorer.New(&scriptedModel{replies: replies}, 10))
}

func TestSearchFlightsMergesState(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")

	out, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind: tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{
			Origin:       "MAD",
			Destination:  "Rome",
			OutboundDate: "2026-10-02",
			ReturnDate:   "2026-10-06",
			Adults:       2,
		},
	})
	require.NoError(t, err)

	var offers []model.FlightOffer
	require.NoError(t, json.Unmarshal([]byte(out), &offers))
	assert.Len(t, offers, 1)

	assert.True(t, state.FlightInfoGathered)
	assert.Equal(t, out, state.LastFlightSummary)
	assert.Equal(t, "Rome", state.Destination, "destination backfilled from the request")
	assert.Equal(t, "2026-10-02", state.DepartureDate)
	assert.Equal(t, "2026-10-06", state.ReturnDate)
	assert.Equal(t, "EUR", search.lastFlightQuery.Currency, "currency defaults when unset")
}

func TestSearchFlightsUsesStateDestination(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")
	state.BackfillDestination("Lisbon")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{Origin: "MAD", OutboundDate: "2026-10-02", Adults: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", search.lastFlightQuery.Destination)
}

func TestSearchFlightsMissingParameters(t *testing.T) {
	e := newExecutors(&stubSearch{})
	state := model.NewTripState("sess-1")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{OutboundDate: "2026-10-02"},
	})
	assert.True(t, errx.IsKind(err, errx.MissingParameter), "missing origin")

	_, err = e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{Origin: "MAD"},
	})
	assert.True(t, errx.IsKind(err, errx.MissingParameter), "missing outbound date")

	_, err = e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{Origin: "MAD", OutboundDate: "2026-10-02"},
	})
	assert.True(t, errx.IsKind(err, errx.MissingParameter), "no destination anywhere")
	assert.False(t, state.FlightInfoGathered, "failed search must not touch the state")
}

func TestSearchFlightsProviderFailureLeavesStateUntouched(t *testing.T) {
	search := &stubSearch{flightErr: errx.New(errx.SearchFailed, "provider down")}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindSearchFlights,
		Flights: &tools.FlightsArgs{Origin: "MAD", Destination: "Rome", OutboundDate: "2026-10-02"},
	})
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.SearchFailed))
	assert.False(t, state.FlightInfoGathered)
	assert.Empty(t, state.Destination)
}

func TestSearchHotelsMergesState(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind: tools.KindSearchHotels,
		Hotels: &tools.HotelsArgs{
			Destination: "Rome",
			CheckIn:     "2026-10-02",
			CheckOut:    "2026-10-06",
			Adults:      2,
			Rooms:       1,
		},
	})
	require.NoError(t, err)

	assert.True(t, state.HotelInfoGathered)
	assert.Equal(t, "Rome", state.Destination)
	assert.Equal(t, "2026-10-02", state.DepartureDate, "check-in backfills the departure date")
	assert.Equal(t, "2026-10-06", state.ReturnDate)
}

func TestSearchHotelsMissingDates(t *testing.T) {
	e := newExecutors(&stubSearch{})
	state := model.NewTripState("sess-1")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:   tools.KindSearchHotels,
		Hotels: &tools.HotelsArgs{Destination: "Rome", CheckOut: "2026-10-06"},
	})
	assert.True(t, errx.IsKind(err, errx.MissingParameter))

	_, err = e.Execute(context.Background(), state, &tools.Invocation{
		Kind:   tools.KindSearchHotels,
		Hotels: &tools.HotelsArgs{Destination: "Rome", CheckIn: "2026-10-02"},
	})
	assert.True(t, errx.IsKind(err, errx.MissingParameter))
}

func TestSearchTransportIsInformationalOnly(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")
	state.BackfillDestination("Rome")

	out, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:      tools.KindSearchTransport,
		Transport: &tools.TransportArgs{PickupDate: "2026-10-02", DropoffDate: "2026-10-06"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Hertz")
	assert.Equal(t, "Rome", search.lastTransportQuery.Origin, "origin falls back to the destination")

	assert.False(t, state.FlightInfoGathered)
	assert.False(t, state.HotelInfoGathered)
}

func TestClarifyDestinationConfirmedUpdatesState(t *testing.T) {
	e := newExecutors(&stubSearch{},
		"Beach or mountains?",
		"Lovely!\nDestination: Porto, Portugal\nInterests: wine",
	)
	state := model.NewTripState("sess-1")

	out, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindClarifyDestination,
		Clarify: &tools.ClarifyArgs{UserInput: "somewhere in Europe"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Beach or mountains?", out)
	assert.True(t, state.ExplorerActive(), "sub-dialogue stays in flight after a question")

	_, err = e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindClarifyDestination,
		Clarify: &tools.ClarifyArgs{UserInput: "wine country"},
	})
	require.NoError(t, err)
	assert.False(t, state.ExplorerActive())
	assert.Equal(t, "Porto, Portugal", state.Destination)
	assert.Equal(t, "wine", state.Interests)
}

func TestClarifyDestinationAbandonmentLeavesDestinationUnset(t *testing.T) {
	search := &stubSearch{}
	e := New(search, explorer.New(&scriptedModel{replies: []string{"What about the weather?"}}, 1))
	state := model.NewTripState("sess-1")

	out, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:    tools.KindClarifyDestination,
		Clarify: &tools.ClarifyArgs{UserInput: "no idea"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.False(t, state.ExplorerActive())
	assert.Empty(t, state.Destination, "abandonment must not confirm a destination")
}

func TestGenerateItineraryRequiresAllFields(t *testing.T) {
	e := newExecutors(&stubSearch{})
	state := model.NewTripState("sess-1")
	state.BackfillDestination("Rome")
	state.BackfillDepartureDate("2026-10-02")

	_, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:      tools.KindGenerateItinerary,
		Itinerary: &tools.ItineraryArgs{},
	})
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.MissingParameter))
	assert.False(t, state.ItineraryGenerated)
}

func TestGenerateItineraryMergesArgsOverState(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")
	state.BackfillDestination("Rome")
	state.BackfillDepartureDate("2026-10-02")
	state.BackfillReturnDate("2026-10-06")
	state.MarkFlightsGathered("flight-summary")
	state.MarkHotelsGathered("hotel-summary")

	out, err := e.Execute(context.Background(), state, &tools.Invocation{
		Kind:      tools.KindGenerateItinerary,
		Itinerary: &tools.ItineraryArgs{Interests: "ruins, food"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1")

	assert.True(t, state.ItineraryGenerated)
	assert.Equal(t, "ruins, food", state.Interests, "argument interests backfill the state")
	assert.Equal(t, "flight-summary", search.lastItineraryReq.FlightContext)
	assert.Equal(t, "hotel-summary", search.lastItineraryReq.HotelContext)
}

func TestAutoItineraryUsesStateAlone(t *testing.T) {
	search := &stubSearch{}
	e := newExecutors(search)
	state := model.NewTripState("sess-1")
	state.BackfillDestination("Rome")
	state.BackfillDepartureDate("2026-10-02")
	state.BackfillReturnDate("2026-10-06")
	state.BackfillInterests("ruins")

	out, err := e.AutoItinerary(context.Background(), state)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.True(t, state.ItineraryGenerated)
	assert.Equal(t, "Rome", search.lastItineraryReq.Destination)
}

package tools

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
)

func call(name, args string) schema.ToolCall {
	return schema.ToolCall{
		ID:       "call_1",
		Function: schema.FunctionCall{Name: name, Arguments: args},
	}
}

func TestParseInvocationFlights(t *testing.T) {
	inv, err := ParseInvocation(call(ToolSearchFlights,
		`{"origin":" mad ","destination":"Rome","outbound_date":"2026-10-02","return_date":"2026-10-06","adults":2}`))
	require.NoError(t, err)

	assert.Equal(t, KindSearchFlights, inv.Kind)
	assert.Equal(t, ToolSearchFlights, inv.Name())
	require.NotNil(t, inv.Flights)
	assert.Equal(t, "MAD", inv.Flights.Origin, "origin is trimmed and upper-cased")
	assert.Equal(t, "Rome", inv.Flights.Destination)
	assert.Equal(t, 2, inv.Flights.Adults)
	assert.Nil(t, inv.Hotels)
	assert.Nil(t, inv.Itinerary)
}

func TestParseInvocationClampsPassengerCounts(t *testing.T) {
	inv, err := ParseInvocation(call(ToolSearchFlights, `{"origin":"MAD","outbound_date":"2026-10-02","adults":0,"children":40}`))
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Flights.Adults, "adults clamp up to 1")
	assert.Equal(t, 9, inv.Flights.Children, "children clamp down to 9")

	inv, err = ParseInvocation(call(ToolSearchHotels, `{"destination":"Rome","adults":-3,"rooms":100}`))
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Hotels.Adults)
	assert.Equal(t, 8, inv.Hotels.Rooms)
}

func TestParseInvocationEmptyArguments(t *testing.T) {
	// Providers sometimes omit the arguments payload entirely.
	inv, err := ParseInvocation(call(ToolGenerateItinerary, ""))
	require.NoError(t, err)
	assert.Equal(t, KindGenerateItinerary, inv.Kind)
	require.NotNil(t, inv.Itinerary)
	assert.Empty(t, inv.Itinerary.Destination)
}

func TestParseInvocationClarify(t *testing.T) {
	inv, err := ParseInvocation(call(ToolClarifyDestination, `{"user_input":"  somewhere warm "}`))
	require.NoError(t, err)
	assert.Equal(t, KindClarifyDestination, inv.Kind)
	assert.Equal(t, "somewhere warm", inv.Clarify.UserInput)
}

func TestParseInvocationTransport(t *testing.T) {
	inv, err := ParseInvocation(call(ToolSearchTransport, `{"origin":"FCO","destination":"Rome","pickup_date":"2026-10-02","dropoff_date":"2026-10-06"}`))
	require.NoError(t, err)
	assert.Equal(t, KindSearchTransport, inv.Kind)
	assert.Equal(t, "FCO", inv.Transport.Origin)
}

func TestParseInvocationUnknownTool(t *testing.T) {
	_, err := ParseInvocation(call("book_cruise", `{}`))
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.InconsistentState))
}

func TestParseInvocationMalformedArguments(t *testing.T) {
	_, err := ParseInvocation(call(ToolSearchFlights, `{"origin": `))
	require.Error(t, err)
	assert.True(t, errx.IsKind(err, errx.InconsistentState))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "search_flights", KindSearchFlights.String())
	assert.Equal(t, "search_hotels", KindSearchHotels.String())
	assert.Equal(t, "search_ground_transport", KindSearchTransport.String())
	assert.Equal(t, "clarify_destination", KindClarifyDestination.String())
	assert.Equal(t, "generate_itinerary", KindGenerateItinerary.String())
}

func TestGetToolInfosDeclaresAllTools(t *testing.T) {
	infos := GetToolInfos()
	require.Len(t, infos, 5)

	names := make(map[string]bool, len(infos))
	for _, info := range infos {
		names[info.Name] = true
	}
	for _, want := range []string{ToolSearchFlights, ToolSearchHotels, ToolSearchTransport, ToolClarifyDestination, ToolGenerateItinerary} {
		assert.True(t, names[want], "missing tool declaration %s", want)
	}
}

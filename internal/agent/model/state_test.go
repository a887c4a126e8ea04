package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTripState(t *testing.T) {
	s := NewTripState("sess-1")

	assert.Equal(t, "sess-1", s.SessionID)
	assert.True(t, s.ExplorerFinished, "a fresh session has no clarification in progress")
	assert.False(t, s.ExplorerActive())
	assert.Nil(t, s.Explorer)
	assert.False(t, s.FlightInfoGathered)
	assert.False(t, s.HotelInfoGathered)
	assert.False(t, s.ItineraryGenerated)
}

func TestBackfillSetsOnlyOnce(t *testing.T) {
	s := NewTripState("sess-1")

	require.True(t, s.BackfillDestination("Rome"))
	assert.False(t, s.BackfillDestination("Paris"), "second backfill must not overwrite")
	assert.Equal(t, "Rome", s.Destination)

	require.True(t, s.BackfillDepartureDate("2026-10-02"))
	assert.False(t, s.BackfillDepartureDate("2026-11-01"))
	assert.Equal(t, "2026-10-02", s.DepartureDate)

	require.True(t, s.BackfillReturnDate("2026-10-06"))
	assert.False(t, s.BackfillReturnDate("2026-12-01"))
	assert.Equal(t, "2026-10-06", s.ReturnDate)

	require.True(t, s.BackfillInterests("food, art"))
	assert.False(t, s.BackfillInterests("hiking"))
	assert.Equal(t, "food, art", s.Interests)
}

func TestBackfillIgnoresEmptyAndWhitespace(t *testing.T) {
	s := NewTripState("sess-1")

	assert.False(t, s.BackfillDestination(""))
	assert.False(t, s.BackfillDestination("   "))
	assert.Empty(t, s.Destination)

	require.True(t, s.BackfillDestination("  Lisbon  "))
	assert.Equal(t, "Lisbon", s.Destination, "values are trimmed before storing")
}

func TestConfirmDestinationOverrides(t *testing.T) {
	s := NewTripState("sess-1")
	s.BackfillDestination("Italy")
	s.BackfillInterests("history")

	s.ConfirmDestination("Rome, Italy", "")

	assert.Equal(t, "Rome, Italy", s.Destination, "confirmation may replace an existing destination")
	assert.Equal(t, "history", s.Interests, "empty confirmed interests keep the previous value")

	s.ConfirmDestination("", "ruins, food")
	assert.Equal(t, "Rome, Italy", s.Destination, "empty confirmed destination keeps the previous value")
	assert.Equal(t, "ruins, food", s.Interests)
}

func TestGatheredFlagsAreMonotonic(t *testing.T) {
	s := NewTripState("sess-1")

	s.MarkFlightsGathered("offers-1")
	s.MarkFlightsGathered("offers-2")
	assert.True(t, s.FlightInfoGathered)
	assert.Equal(t, "offers-2", s.LastFlightSummary, "summary is replaced, flag stays set")

	s.MarkHotelsGathered("hotels-1")
	assert.True(t, s.HotelInfoGathered)
	assert.Equal(t, "hotels-1", s.LastHotelSummary)

	s.MarkItineraryGenerated()
	assert.True(t, s.ItineraryGenerated)
}

func TestExplorerLifecycle(t *testing.T) {
	s := NewTripState("sess-1")

	sub := s.BeginExplorer()
	require.NotNil(t, sub)
	assert.Equal(t, ExplorerClarifying, sub.Phase)
	assert.True(t, s.ExplorerActive())
	assert.False(t, s.ExplorerFinished)

	// Beginning again mid-flight returns the same sub-state.
	again := s.BeginExplorer()
	assert.Same(t, sub, again)

	s.FinishExplorer()
	assert.False(t, s.ExplorerActive())
	assert.True(t, s.ExplorerFinished)
	assert.Nil(t, s.Explorer)

	// A fresh sub-dialogue after finishing starts clean.
	fresh := s.BeginExplorer()
	require.NotNil(t, fresh)
	assert.NotSame(t, sub, fresh)
	assert.Zero(t, fresh.Turns)
}

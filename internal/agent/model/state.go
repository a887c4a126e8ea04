package model

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// ExplorerPhase is the phase of the destination-explorer sub-dialogue.
type ExplorerPhase string

const (
	ExplorerClarifying ExplorerPhase = "clarifying"
	ExplorerConfirmed  ExplorerPhase = "confirmed"
)

// ExplorerState is the private sub-state of the destination explorer. It
// exists only while a clarification sub-dialogue is in flight and is cleared
// as soon as the explorer finalizes.
type ExplorerState struct {
	Phase    ExplorerPhase     `json:"phase"`
	Messages []*schema.Message `json:"messages"`
	Turns    int               `json:"turns"`
}

// TripState is everything learned about one planning session. It is owned by
// the conversation router and mutated only through the merge methods below:
// scalar fields are set-once (a later back-fill never overwrites a confirmed
// value, only the explorer confirmation flow may replace one), and the
// gathered/generated flags are monotonic for the session's lifetime.
type TripState struct {
	SessionID string `json:"session_id"`

	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Interests     string `json:"interests,omitempty"`

	FlightInfoGathered bool `json:"flight_info_gathered"`
	HotelInfoGathered  bool `json:"hotel_info_gathered"`
	ItineraryGenerated bool `json:"itinerary_generated"`

	LastFlightSummary string `json:"last_flight_summary,omitempty"`
	LastHotelSummary  string `json:"last_hotel_summary,omitempty"`

	Explorer *ExplorerState `json:"explorer,omitempty"`
	// ExplorerFinished is true both before any clarification has started and
	// after one completes; "in progress" is the only false state. When the
	// distinction matters, Explorer != nil marks an active sub-dialogue.
	ExplorerFinished bool `json:"explorer_finished"`
}

// NewTripState returns the state for a fresh session. All optional fields
// are unset and no clarification is in progress.
func NewTripState(sessionID string) *TripState {
	return &TripState{
		SessionID:        sessionID,
		ExplorerFinished: true,
	}
}

// BackfillDestination sets the destination only when it is still unset.
// Reports whether the value was written.
func (s *TripState) BackfillDestination(v string) bool {
	return backfill(&s.Destination, v)
}

// BackfillDepartureDate sets the departure date only when it is still unset.
func (s *TripState) BackfillDepartureDate(v string) bool {
	return backfill(&s.DepartureDate, v)
}

// BackfillReturnDate sets the return date only when it is still unset.
func (s *TripState) BackfillReturnDate(v string) bool {
	return backfill(&s.ReturnDate, v)
}

// BackfillInterests sets the interests only when they are still unset.
func (s *TripState) BackfillInterests(v string) bool {
	return backfill(&s.Interests, v)
}

func backfill(field *string, v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || *field != "" {
		return false
	}
	*field = v
	return true
}

// ConfirmDestination records the explorer's confirmed destination and
// interests. This is the only flow allowed to replace an already-set
// destination with a more specific confirmed value. Empty interests keep
// whatever was known before.
func (s *TripState) ConfirmDestination(destination, interests string) {
	if destination = strings.TrimSpace(destination); destination != "" {
		s.Destination = destination
	}
	if interests = strings.TrimSpace(interests); interests != "" {
		s.Interests = interests
	}
}

// MarkFlightsGathered flips the monotonic flight flag and replaces the last
// flight summary.
func (s *TripState) MarkFlightsGathered(summary string) {
	s.FlightInfoGathered = true
	s.LastFlightSummary = summary
}

// MarkHotelsGathered flips the monotonic hotel flag and replaces the last
// hotel summary.
func (s *TripState) MarkHotelsGathered(summary string) {
	s.HotelInfoGathered = true
	s.LastHotelSummary = summary
}

// MarkItineraryGenerated flips the monotonic itinerary flag.
func (s *TripState) MarkItineraryGenerated() {
	s.ItineraryGenerated = true
}

// BeginExplorer marks a clarification sub-dialogue as in flight, creating
// the sub-state on first use.
func (s *TripState) BeginExplorer() *ExplorerState {
	if s.Explorer == nil {
		s.Explorer = &ExplorerState{Phase: ExplorerClarifying}
	}
	s.ExplorerFinished = false
	return s.Explorer
}

// FinishExplorer clears the sub-dialogue state.
func (s *TripState) FinishExplorer() {
	s.Explorer = nil
	s.ExplorerFinished = true
}

// ExplorerActive reports whether a clarification sub-dialogue is mid-flight.
func (s *TripState) ExplorerActive() bool {
	return !s.ExplorerFinished && s.Explorer != nil
}

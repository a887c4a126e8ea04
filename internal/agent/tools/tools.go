package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	"github.com/cloudwego/eino/schema"
)

// Tool names as announced to the language model.
const (
	ToolSearchFlights      = "search_flights"
	ToolSearchHotels       = "search_hotels"
	ToolSearchTransport    = "search_ground_transport"
	ToolClarifyDestination = "clarify_destination"
	ToolGenerateItinerary  = "generate_itinerary"
)

// Kind is the closed set of tool kinds the router dispatches on. Adding a
// tool means adding a Kind, its args struct, and a case to every switch;
// there is no string-keyed fallthrough.
type Kind int

const (
	KindSearchFlights Kind = iota
	KindSearchHotels
	KindSearchTransport
	KindClarifyDestination
	KindGenerateItinerary
)

// String returns the wire name of the tool kind.
func (k Kind) String() string {
	switch k {
	case KindSearchFlights:
		return ToolSearchFlights
	case KindSearchHotels:
		return ToolSearchHotels
	case KindSearchTransport:
		return ToolSearchTransport
	case KindClarifyDestination:
		return ToolClarifyDestination
	case KindGenerateItinerary:
		return ToolGenerateItinerary
	}
	return fmt.Sprintf("unknown_tool_%d", int(k))
}

// FlightsArgs are the model-supplied arguments for a flight search.
type FlightsArgs struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination,omitempty"`
	OutboundDate string `json:"outbound_date"`
	ReturnDate   string `json:"return_date,omitempty"`
	Adults       int    `json:"adults,omitempty"`
	Children     int    `json:"children,omitempty"`
	CabinClass   string `json:"cabin_class,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

// HotelsArgs are the model-supplied arguments for a hotel search.
type HotelsArgs struct {
	Destination string `json:"destination,omitempty"`
	CheckIn     string `json:"check_in,omitempty"`
	CheckOut    string `json:"check_out,omitempty"`
	Adults      int    `json:"adults,omitempty"`
	Rooms       int    `json:"rooms,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

// TransportArgs are the model-supplied arguments for a ground-transport search.
type TransportArgs struct {
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	PickupDate  string `json:"pickup_date,omitempty"`
	DropoffDate string `json:"dropoff_date,omitempty"`
}

// ClarifyArgs carry the user's latest utterance into the destination explorer.
type ClarifyArgs struct {
	UserInput string `json:"user_input"`
}

// ItineraryArgs are the model-supplied overrides for itinerary generation.
// Unset fields fall back to TripState.
type ItineraryArgs struct {
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Interests     string `json:"interests,omitempty"`
}

// Invocation is a parsed tool call: one Kind plus exactly one non-nil args
// payload. It is transient, consumed by the matching step executor and
// discarded; it is never stored in TripState.
type Invocation struct {
	ID   string
	Kind Kind

	Flights   *FlightsArgs
	Hotels    *HotelsArgs
	Transport *TransportArgs
	Clarify   *ClarifyArgs
	Itinerary *ItineraryArgs
}

// Name returns the wire name of the invoked tool.
func (inv *Invocation) Name() string {
	return inv.Kind.String()
}

// ParseInvocation decodes one model-issued tool call into the closed
// Invocation variant. Unknown tool names and undecodable argument payloads
// are typed errors for the router to surface as tool results.
func ParseInvocation(tc schema.ToolCall) (*Invocation, error) {
	name := strings.TrimSpace(tc.Function.Name)
	raw := strings.TrimSpace(tc.Function.Arguments)
	if raw == "" {
		raw = "{}"
	}

	inv := &Invocation{ID: tc.ID}

	switch name {
	case ToolSearchFlights:
		args := &FlightsArgs{}
		if err := decodeArgs(raw, args); err != nil {
			return nil, err
		}
		args.Origin = strings.TrimSpace(strings.ToUpper(args.Origin))
		args.Destination = strings.TrimSpace(args.Destination)
		args.OutboundDate = strings.TrimSpace(args.OutboundDate)
		args.ReturnDate = strings.TrimSpace(args.ReturnDate)
		args.Adults = clampInt(args.Adults, 1, 9)
		args.Children = clampInt(args.Children, 0, 9)
		inv.Kind = KindSearchFlights
		inv.Flights = args

	case ToolSearchHotels:
		args := &HotelsArgs{}
		if err := decodeArgs(raw, args); err != nil {
			return nil, err
		}
		args.Destination = strings.TrimSpace(args.Destination)
		args.CheckIn = strings.TrimSpace(args.CheckIn)
		args.CheckOut = strings.TrimSpace(args.CheckOut)
		args.Adults = clampInt(args.Adults, 1, 9)
		args.Rooms = clampInt(args.Rooms, 1, 8)
		inv.Kind = KindSearchHotels
		inv.Hotels = args

	case ToolSearchTransport:
		args := &TransportArgs{}
		if err := decodeArgs(raw, args); err != nil {
			return nil, err
		}
		args.Origin = strings.TrimSpace(args.Origin)
		args.Destination = strings.TrimSpace(args.Destination)
		inv.Kind = KindSearchTransport
		inv.Transport = args

	case ToolClarifyDestination:
		args := &ClarifyArgs{}
		if err := decodeArgs(raw, args); err != nil {
			return nil, err
		}
		args.UserInput = strings.TrimSpace(args.UserInput)
		inv.Kind = KindClarifyDestination
		inv.Clarify = args

	case ToolGenerateItinerary:
		args := &ItineraryArgs{}
		if err := decodeArgs(raw, args); err != nil {
			return nil, err
		}
		args.Destination = strings.TrimSpace(args.Destination)
		args.DepartureDate = strings.TrimSpace(args.DepartureDate)
		args.ReturnDate = strings.TrimSpace(args.ReturnDate)
		args.Interests = strings.TrimSpace(args.Interests)
		inv.Kind = KindGenerateItinerary
		inv.Itinerary = args

	default:
		return nil, errx.Newf(errx.InconsistentState, "unknown tool %q", name)
	}

	return inv, nil
}

func decodeArgs(raw string, dst any) error {
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return errx.Wrap(err, errx.InconsistentState, "malformed tool arguments")
	}
	return nil
}

// clampInt returns v limited to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

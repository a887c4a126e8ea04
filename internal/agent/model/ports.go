package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// LanguageModelPort turns a system prompt plus conversation history into the
// next assistant message. The returned message may carry tool calls.
// Implementations are expected to be slow and nondeterministic; failures are
// reported with the ModelUnavailable / ModelTimeout error kinds.
type LanguageModelPort interface {
	Complete(ctx context.Context, systemPrompt string, history []*schema.Message) (*schema.Message, error)
}

// FlightQuery are the criteria for a flight search.
type FlightQuery struct {
	Origin       string
	Destination  string
	OutboundDate string
	ReturnDate   string
	Adults       int
	Children     int
	CabinClass   string
	Currency     string
}

// FlightOffer is one processed flight result.
type FlightOffer struct {
	Airline          string `json:"airline"`
	Price            string `json:"price"`
	TotalDuration    string `json:"total_duration"`
	Stops            string `json:"stops"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	BookingLink      string `json:"booking_link,omitempty"`
}

// HotelQuery are the criteria for a hotel search.
type HotelQuery struct {
	Destination string
	CheckIn     string
	CheckOut    string
	Adults      int
	Rooms       int
	Currency    string
}

// HotelOffer is one processed hotel result.
type HotelOffer struct {
	Name        string `json:"name"`
	RateInfo    string `json:"rate_info"`
	Rating      string `json:"rating"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// TransportQuery are the criteria for a ground-transport (car rental) search.
type TransportQuery struct {
	Origin      string
	Destination string
	PickupDate  string
	DropoffDate string
}

// TransportOffer is one processed car-rental result.
type TransportOffer struct {
	Supplier     string `json:"supplier"`
	Vehicle      string `json:"vehicle"`
	Category     string `json:"category,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Seats        int    `json:"seats,omitempty"`
	Price        string `json:"price"`
}

// ItineraryRequest carries everything itinerary generation needs. The
// flight/hotel context fields are the last search summaries, when available.
type ItineraryRequest struct {
	Destination   string
	DepartureDate string
	ReturnDate    string
	Interests     string
	FlightContext string
	HotelContext  string
}

// ExternalSearchPort is the capability boundary to the travel-search
// providers. Implementations call third-party APIs; tests use canned data.
// Failures are reported with the SearchFailed error kind and never panic.
type ExternalSearchPort interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightOffer, error)
	SearchHotels(ctx context.Context, q HotelQuery) ([]HotelOffer, error)
	SearchGroundTransport(ctx context.Context, q TransportQuery) ([]TransportOffer, error)
	GenerateItinerary(ctx context.Context, req ItineraryRequest) (string, error)
}

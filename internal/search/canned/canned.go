// Package canned implements ExternalSearchPort with fixture data so the
// assistant can run end to end without provider API keys. Offers are static
// but echo back the query fields so conversations still read naturally.
package canned

import (
	"context"
	"fmt"
	"strings"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

type Client struct{}

func New() *Client {
	logx.Warn().Msg("using canned travel search data, no provider keys configured")
	return &Client{}
}

func (c *Client) SearchFlights(_ context.Context, q model.FlightQuery) ([]model.FlightOffer, error) {
	route := fmt.Sprintf("%s (%s)", q.Origin, strings.ToUpper(q.Origin))
	dest := fmt.Sprintf("%s (%s)", q.Destination, strings.ToUpper(q.Destination))
	return []model.FlightOffer{
		{
			Airline:          "Vueling",
			Price:            "128 " + q.Currency,
			TotalDuration:    "2h 05m",
			Stops:            "direct",
			DepartureAirport: route,
			ArrivalAirport:   dest,
		},
		{
			Airline:          "Iberia",
			Price:            "164 " + q.Currency,
			TotalDuration:    "2h 15m",
			Stops:            "direct",
			DepartureAirport: route,
			ArrivalAirport:   dest,
		},
		{
			Airline:          "Lufthansa",
			Price:            "97 " + q.Currency,
			TotalDuration:    "5h 40m",
			Stops:            "1 stop",
			DepartureAirport: route,
			ArrivalAirport:   dest,
		},
	}, nil
}

func (c *Client) SearchHotels(_ context.Context, q model.HotelQuery) ([]model.HotelOffer, error) {
	return []model.HotelOffer{
		{
			Name:        fmt.Sprintf("Hotel Central %s", q.Destination),
			RateInfo:    fmt.Sprintf("89 %s per night", q.Currency),
			Rating:      "4.4/5 (1820 reviews)",
			Description: "Modern rooms a short walk from the old town, breakfast included.",
		},
		{
			Name:        fmt.Sprintf("%s Riverside Suites", q.Destination),
			RateInfo:    fmt.Sprintf("132 %s per night", q.Currency),
			Rating:      "4.7/5 (960 reviews)",
			Description: "Apartment-style suites with kitchenettes and river views.",
		},
		{
			Name:        "Budget Stay Hostel",
			RateInfo:    fmt.Sprintf("34 %s per night", q.Currency),
			Rating:      "4.0/5 (3100 reviews)",
			Description: "Clean dorms and private rooms near the main station.",
		},
	}, nil
}

func (c *Client) SearchGroundTransport(_ context.Context, q model.TransportQuery) ([]model.TransportOffer, error) {
	return []model.TransportOffer{
		{
			Supplier:     "Europcar",
			Vehicle:      "Fiat 500",
			Category:     "Economy",
			Transmission: "Manual",
			Seats:        4,
			Price:        "112.50 EUR",
		},
		{
			Supplier:     "Hertz",
			Vehicle:      "Volkswagen Golf",
			Category:     "Compact",
			Transmission: "Automatic",
			Seats:        5,
			Price:        "168.00 EUR",
		},
	}, nil
}

func (c *Client) GenerateItinerary(_ context.Context, req model.ItineraryRequest) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Trip plan for %s (%s to %s)\n\n", req.Destination, req.DepartureDate, req.ReturnDate)
	fmt.Fprintf(&b, "Day 1: Arrive, check in and explore the city centre on foot.\n")
	fmt.Fprintf(&b, "Day 2: A full day around your interests: %s.\n", req.Interests)
	fmt.Fprintf(&b, "Day 3: Day trip to the surroundings, then pack and head home.\n")
	return b.String(), nil
}

var _ model.ExternalSearchPort = (*Client)(nil)

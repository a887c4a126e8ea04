package serpapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

type flightsResponse struct {
	Error        string         `json:"error"`
	BestFlights  []flightResult `json:"best_flights"`
	OtherFlights []flightResult `json:"other_flights"`
}

type flightResult struct {
	Price         float64     `json:"price"`
	TotalDuration int         `json:"total_duration"`
	Type          string      `json:"type"`
	BookingLink   string      `json:"booking_link"`
	Flights       []flightLeg `json:"flights"`
}

type flightLeg struct {
	Airline          string        `json:"airline"`
	FlightNumber     string        `json:"flight_number"`
	DepartureAirport flightAirport `json:"departure_airport"`
	ArrivalAirport   flightAirport `json:"arrival_airport"`
}

type flightAirport struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"`
}

// SearchFlights queries the Google Flights engine and returns the cheapest
// offers, best results first.
func (c *Client) SearchFlights(ctx context.Context, q model.FlightQuery) ([]model.FlightOffer, error) {
	params := url.Values{}
	params.Set("departure_id", q.Origin)
	params.Set("arrival_id", q.Destination)
	params.Set("outbound_date", q.OutboundDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	} else {
		params.Set("type", "2") // one way
	}
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	if q.CabinClass != "" {
		params.Set("travel_class", cabinClassParam(q.CabinClass))
	}
	params.Set("currency", q.Currency)

	var resp flightsResponse
	if err := c.getJSON(ctx, c.serpURL("google_flights", params), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errx.Newf(errx.SearchFailed, "flight search rejected: %s", resp.Error)
	}

	results := append(resp.BestFlights, resp.OtherFlights...)
	if len(results) == 0 {
		return nil, errx.New(errx.SearchFailed, "no flights found for the given route and dates")
	}
	if len(results) > c.cfg.MaxResults {
		results = results[:c.cfg.MaxResults]
	}

	offers := make([]model.FlightOffer, 0, len(results))
	for _, r := range results {
		offers = append(offers, flightOffer(r, q.Currency))
	}
	logx.Info().Str("origin", q.Origin).Str("destination", q.Destination).Int("offers", len(offers)).Msg("flight search completed")
	return offers, nil
}

func flightOffer(r flightResult, currency string) model.FlightOffer {
	o := model.FlightOffer{
		Price:         fmt.Sprintf("%.0f %s", r.Price, currency),
		TotalDuration: formatDuration(r.TotalDuration),
		Stops:         formatStops(len(r.Flights) - 1),
		BookingLink:   r.BookingLink,
	}
	if len(r.Flights) > 0 {
		first, last := r.Flights[0], r.Flights[len(r.Flights)-1]
		o.Airline = first.Airline
		o.DepartureAirport = airportLabel(first.DepartureAirport)
		o.ArrivalAirport = airportLabel(last.ArrivalAirport)
	}
	return o
}

func formatStops(stops int) string {
	switch {
	case stops <= 0:
		return "direct"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

func airportLabel(a flightAirport) string {
	if a.ID == "" {
		return a.Name
	}
	if a.Name == "" {
		return a.ID
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

func formatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func cabinClassParam(class string) string {
	switch strings.ToLower(strings.TrimSpace(class)) {
	case "premium_economy", "premium economy":
		return "2"
	case "business":
		return "3"
	case "first":
		return "4"
	default:
		return "1"
	}
}

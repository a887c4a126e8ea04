package tools

import (
	"github.com/cloudwego/eino/schema"
)

// GetToolInfos returns the declarations for the five planner tools, bound to
// the planner model at startup.
func GetToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchFlights,
			Desc: "Search for flights between two airports. Use AFTER a destination is known. Returns up to five offers with price, airline, stops, duration and a booking link when available. Mandatory: origin, outbound_date. If destination is omitted the confirmed trip destination is used.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"origin": {
					Type:     "string",
					Desc:     "IATA code of the departure airport, e.g. VLC for Valencia.",
					Required: true,
				},
				"destination": {
					Type: "string",
					Desc: "IATA code or city of the arrival airport, e.g. FCO for Rome Fiumicino. Falls back to the confirmed trip destination when omitted.",
				},
				"outbound_date": {
					Type:     "string",
					Desc:     "Departure date in YYYY-MM-DD format, e.g. 2026-06-10.",
					Required: true,
				},
				"return_date": {
					Type: "string",
					Desc: "Return date in YYYY-MM-DD format for round trips.",
				},
				"adults": {
					Type: "number",
					Desc: "Number of adult passengers (default 1, max 9).",
				},
				"children": {
					Type: "number",
					Desc: "Number of children aged 2-11 (default 0).",
				},
				"cabin_class": {
					Type: "string",
					Desc: "Cabin class: economy, premium_economy, business or first.",
				},
				"currency": {
					Type: "string",
					Desc: "ISO currency code for prices (default EUR).",
				},
			}),
		},
		{
			Name: ToolSearchHotels,
			Desc: "Search for hotels in the destination city. Use AFTER a destination is known. Returns up to five offers with nightly rate, total, rating and link. Mandatory: check_in, check_out. If destination is omitted the confirmed trip destination is used.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"destination": {
					Type: "string",
					Desc: "Hotel location as 'City, Country', e.g. 'Paris, France'. Falls back to the confirmed trip destination when omitted.",
				},
				"check_in": {
					Type:     "string",
					Desc:     "Check-in date in YYYY-MM-DD format.",
					Required: true,
				},
				"check_out": {
					Type:     "string",
					Desc:     "Check-out date in YYYY-MM-DD format.",
					Required: true,
				},
				"adults": {
					Type: "number",
					Desc: "Number of adults (default 1).",
				},
				"rooms": {
					Type: "number",
					Desc: "Number of rooms (default 1).",
				},
				"currency": {
					Type: "string",
					Desc: "ISO currency code for prices (default EUR).",
				},
			}),
		},
		{
			Name: ToolSearchTransport,
			Desc: "Search ground transport (car rental) at the destination. Returns supplier, vehicle, category and price. Use when the user asks how to move around at the destination.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"origin": {
					Type: "string",
					Desc: "Pickup city.",
				},
				"destination": {
					Type: "string",
					Desc: "Drop-off city. Falls back to the confirmed trip destination when omitted.",
				},
				"pickup_date": {
					Type: "string",
					Desc: "Pickup date in YYYY-MM-DD format.",
				},
				"dropoff_date": {
					Type: "string",
					Desc: "Drop-off date in YYYY-MM-DD format.",
				},
			}),
		},
		{
			Name: ToolClarifyDestination,
			Desc: "Help the user settle on one concrete destination. Use this tool whenever the user is unsure where to go, and keep calling it with each new user reply until the trip state shows the clarification finished. Pass the user's latest relevant utterance as user_input; the sub-dialogue history is managed by the system.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_input": {
					Type:     "string",
					Desc:     "The user's latest statement about where they might want to go.",
					Required: true,
				},
			}),
		},
		{
			Name: ToolGenerateItinerary,
			Desc: "Generate a day-by-day itinerary. Use ONLY after destination, departure date, return date and interests are all confirmed. Arguments override the trip state; omitted fields fall back to it.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"destination": {
					Type: "string",
					Desc: "Destination as 'City, Country'.",
				},
				"departure_date": {
					Type: "string",
					Desc: "Trip start date in YYYY-MM-DD format.",
				},
				"return_date": {
					Type: "string",
					Desc: "Trip end date in YYYY-MM-DD format.",
				},
				"interests": {
					Type: "string",
					Desc: "Comma-separated interests, e.g. 'art, food'.",
				},
			}),
		},
	}
}

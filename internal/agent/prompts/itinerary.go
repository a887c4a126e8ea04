package prompts

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
)

//go:embed template/itinerary_prompt.txt
var itinerarySystemPrompt string

// RenderItinerary renders the itinerary-generation prompt from the request,
// including the last flight/hotel summaries when present.
func RenderItinerary(ctx context.Context, req model.ItineraryRequest) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(itinerarySystemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Destination":   req.Destination,
		"DepartureDate": req.DepartureDate,
		"ReturnDate":    req.ReturnDate,
		"Interests":     req.Interests,
		"FlightContext": req.FlightContext,
		"HotelContext":  req.HotelContext,
	})
	if err != nil {
		return "", fmt.Errorf("itinerary prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("itinerary prompt render: empty result")
	}
	return msgs[0].Content, nil
}

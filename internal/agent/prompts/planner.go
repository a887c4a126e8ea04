package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/tools"
)

//go:embed template/planner_prompt.txt
var plannerSystemPrompt string

// RenderPlannerSystem renders the planner system prompt with the current
// trip-state snapshot, so the model can route on what is already known.
func RenderPlannerSystem(ctx context.Context, state *model.TripState) (string, error) {
	if state == nil {
		return "", fmt.Errorf("trip state is nil")
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(plannerSystemPrompt),
	)
	vars := map[string]any{
		"CurrentYear":        time.Now().Year(),
		"Destination":        state.Destination,
		"DepartureDate":      state.DepartureDate,
		"ReturnDate":         state.ReturnDate,
		"Interests":          state.Interests,
		"FlightInfoGathered": state.FlightInfoGathered,
		"HotelInfoGathered":  state.HotelInfoGathered,
		"ItineraryGenerated": state.ItineraryGenerated,
		"ExplorerActive":     state.ExplorerActive(),
		"FlightsTool":        tools.ToolSearchFlights,
		"HotelsTool":         tools.ToolSearchHotels,
		"TransportTool":      tools.ToolSearchTransport,
		"ClarifyTool":        tools.ToolClarifyDestination,
		"ItineraryTool":      tools.ToolGenerateItinerary,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("planner prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("planner prompt render: empty result")
	}
	return msgs[0].Content, nil
}

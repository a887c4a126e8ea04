package serpapi

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	"github.com/AngelitoMA11/DataProject-3/internal/agent/prompts"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

// GenerateItinerary asks the language model to write a day-by-day plan from
// the accumulated trip details. Model failures surface as SearchFailed so
// callers see one error kind for every external capability.
func (c *Client) GenerateItinerary(ctx context.Context, req model.ItineraryRequest) (string, error) {
	system, err := prompts.RenderItinerary(ctx, req)
	if err != nil {
		return "", errx.Wrap(err, errx.SearchFailed, "failed to render itinerary prompt")
	}

	out, err := c.itineraryLM.Complete(ctx, system, []*schema.Message{
		schema.UserMessage("Write the itinerary now."),
	})
	if err != nil {
		return "", errx.Wrap(err, errx.SearchFailed, "itinerary generation failed")
	}
	text := strings.TrimSpace(out.Content)
	if text == "" {
		return "", errx.New(errx.SearchFailed, "itinerary generation returned empty content")
	}
	logx.Info().Str("destination", req.Destination).Int("length", len(text)).Msg("itinerary generated")
	return text, nil
}

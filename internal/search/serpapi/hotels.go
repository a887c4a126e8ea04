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

const maxHotelDescription = 220

type hotelsResponse struct {
	Error      string        `json:"error"`
	Properties []hotelResult `json:"properties"`
}

type hotelResult struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Link          string    `json:"link"`
	OverallRating float64   `json:"overall_rating"`
	Reviews       int       `json:"reviews"`
	RatePerNight  hotelRate `json:"rate_per_night"`
	TotalRate     hotelRate `json:"total_rate"`
}

type hotelRate struct {
	Lowest         string  `json:"lowest"`
	ExtractedPrice float64 `json:"extracted_lowest"`
}

// SearchHotels queries the Google Hotels engine, sorted by lowest price.
func (c *Client) SearchHotels(ctx context.Context, q model.HotelQuery) ([]model.HotelOffer, error) {
	params := url.Values{}
	params.Set("q", q.Destination)
	params.Set("check_in_date", q.CheckIn)
	params.Set("check_out_date", q.CheckOut)
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.Rooms > 1 {
		params.Set("num_rooms", strconv.Itoa(q.Rooms))
	}
	params.Set("sort_by", "3") // lowest price
	params.Set("currency", q.Currency)

	var resp hotelsResponse
	if err := c.getJSON(ctx, c.serpURL("google_hotels", params), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, errx.Newf(errx.SearchFailed, "hotel search rejected: %s", resp.Error)
	}
	if len(resp.Properties) == 0 {
		return nil, errx.New(errx.SearchFailed, "no hotels found for the given destination and dates")
	}

	props := resp.Properties
	if len(props) > c.cfg.MaxResults {
		props = props[:c.cfg.MaxResults]
	}
	offers := make([]model.HotelOffer, 0, len(props))
	for _, p := range props {
		offers = append(offers, hotelOffer(p))
	}
	logx.Info().Str("destination", q.Destination).Int("offers", len(offers)).Msg("hotel search completed")
	return offers, nil
}

func hotelOffer(p hotelResult) model.HotelOffer {
	return model.HotelOffer{
		Name:        p.Name,
		RateInfo:    rateInfo(p),
		Rating:      ratingInfo(p),
		Description: truncate(p.Description, maxHotelDescription),
		Link:        p.Link,
	}
}

func rateInfo(p hotelResult) string {
	var parts []string
	if p.RatePerNight.Lowest != "" {
		parts = append(parts, fmt.Sprintf("%s per night", p.RatePerNight.Lowest))
	}
	if p.TotalRate.Lowest != "" {
		parts = append(parts, fmt.Sprintf("%s total", p.TotalRate.Lowest))
	}
	if len(parts) == 0 {
		return "rate unavailable"
	}
	return strings.Join(parts, ", ")
}

func ratingInfo(p hotelResult) string {
	if p.OverallRating == 0 {
		return ""
	}
	if p.Reviews > 0 {
		return fmt.Sprintf("%.1f/5 (%d reviews)", p.OverallRating, p.Reviews)
	}
	return fmt.Sprintf("%.1f/5", p.OverallRating)
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit]) + "..."
}

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

const rapidAPIHost = "booking-com18.p.rapidapi.com"

type carLocationResponse struct {
	Data []carLocation `json:"data"`
}

type carLocation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type carSearchResponse struct {
	Data struct {
		SearchResults []carResult `json:"search_results"`
	} `json:"data"`
}

type carResult struct {
	VehicleInfo struct {
		Name         string `json:"v_name"`
		Label        string `json:"label"`
		Seats        string `json:"seats"`
		Transmission string `json:"transmission"`
	} `json:"vehicle_info"`
	Content struct {
		Supplier struct {
			Name string `json:"name"`
		} `json:"supplier"`
	} `json:"content"`
	PricingInfo struct {
		DriveAwayPrice float64 `json:"drive_away_price"`
		Currency       string  `json:"currency"`
	} `json:"pricing_info"`
}

// SearchGroundTransport looks up car-rental offers via the booking.com
// RapidAPI backend. The pickup location is resolved first through the
// auto-complete endpoint, preferring airport locations.
func (c *Client) SearchGroundTransport(ctx context.Context, q model.TransportQuery) ([]model.TransportOffer, error) {
	headers := map[string]string{
		"x-rapidapi-key":  c.cfg.RapidAPIKey,
		"x-rapidapi-host": rapidAPIHost,
	}

	pickupID, err := c.resolveCarLocation(ctx, headers, q.Origin)
	if err != nil {
		return nil, err
	}
	dropoffID := pickupID
	if q.Destination != "" && !strings.EqualFold(q.Destination, q.Origin) {
		if id, err := c.resolveCarLocation(ctx, headers, q.Destination); err == nil {
			dropoffID = id
		}
	}

	params := url.Values{}
	params.Set("pickUpId", pickupID)
	params.Set("dropOffId", dropoffID)
	params.Set("pickUpDate", q.PickupDate)
	params.Set("dropOffDate", q.DropoffDate)
	params.Set("pickUpTime", "10:00")
	params.Set("dropOffTime", "10:00")

	var resp carSearchResponse
	searchURL := fmt.Sprintf("%s/car/search?%s", c.cfg.CarsBaseURL, params.Encode())
	if err := c.getJSON(ctx, searchURL, headers, &resp); err != nil {
		return nil, err
	}
	results := resp.Data.SearchResults
	if len(results) == 0 {
		return nil, errx.New(errx.SearchFailed, "no rental cars found for the given location and dates")
	}
	if len(results) > c.cfg.MaxResults {
		results = results[:c.cfg.MaxResults]
	}

	offers := make([]model.TransportOffer, 0, len(results))
	for _, r := range results {
		offers = append(offers, model.TransportOffer{
			Supplier:     r.Content.Supplier.Name,
			Vehicle:      vehicleName(r),
			Category:     r.VehicleInfo.Label,
			Transmission: r.VehicleInfo.Transmission,
			Seats:        parseSeats(r.VehicleInfo.Seats),
			Price:        fmt.Sprintf("%.2f %s", r.PricingInfo.DriveAwayPrice, r.PricingInfo.Currency),
		})
	}
	logx.Info().Str("origin", q.Origin).Int("offers", len(offers)).Msg("ground transport search completed")
	return offers, nil
}

// resolveCarLocation returns the provider id of the best match for the given
// place, preferring airports so pickup happens where the traveller lands.
func (c *Client) resolveCarLocation(ctx context.Context, headers map[string]string, place string) (string, error) {
	params := url.Values{}
	params.Set("query", place)

	var resp carLocationResponse
	acURL := fmt.Sprintf("%s/car/auto-complete?%s", c.cfg.CarsBaseURL, params.Encode())
	if err := c.getJSON(ctx, acURL, headers, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errx.Newf(errx.SearchFailed, "no rental pickup location found for %q", place)
	}
	for _, loc := range resp.Data {
		if strings.EqualFold(loc.Type, "airport") {
			return loc.ID, nil
		}
	}
	return resp.Data[0].ID, nil
}

func parseSeats(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func vehicleName(r carResult) string {
	if r.VehicleInfo.Name != "" {
		return r.VehicleInfo.Name
	}
	return r.VehicleInfo.Label
}

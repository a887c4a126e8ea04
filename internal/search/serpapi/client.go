// Package serpapi implements ExternalSearchPort against the SerpApi Google
// Flights / Google Hotels engines, plus a booking.com RapidAPI backend for
// car rentals. Itinerary text is produced by the language model. The exact
// provider schemas are decoded loosely: only the fields the offer summaries
// need are read, and anything unexpected becomes a SearchFailed.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

type Config struct {
	APIKey      string `envconfig:"SERPAPI_API_KEY"`
	BaseURL     string `envconfig:"SERPAPI_BASE_URL" default:"https://serpapi.com"`
	RapidAPIKey string `envconfig:"RAPIDAPI_KEY"`
	CarsBaseURL string `envconfig:"CARS_BASE_URL" default:"https://booking-com18.p.rapidapi.com"`
	Timeout     int    `envconfig:"SEARCH_TIMEOUT_SECONDS" default:"15"`
	MaxResults  int    `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
}

// Client talks to the travel-search providers. The itinerary capability
// delegates to the (untooled) language model.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	itineraryLM model.LanguageModelPort
}

func New(cfg Config, itineraryLM model.LanguageModelPort) *Client {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15
	}
	return &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		itineraryLM: itineraryLM,
	}
}

// getJSON performs a bounded GET and decodes the response body into dst.
func (c *Client) getJSON(ctx context.Context, rawURL string, headers map[string]string, dst any) error {
	cctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.Timeout)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errx.Wrap(err, errx.SearchFailed, "failed to build search request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errx.Wrap(err, errx.SearchFailed, "search provider timed out")
		}
		return errx.Wrap(err, errx.SearchFailed, "search provider unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return errx.Wrap(err, errx.SearchFailed, "failed to read provider response")
	}
	if resp.StatusCode != http.StatusOK {
		logx.Warn().Int("status", resp.StatusCode).Str("url", req.URL.Host+req.URL.Path).Msg("search provider returned non-OK status")
		return errx.Newf(errx.SearchFailed, "search provider returned status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return errx.Wrap(err, errx.SearchFailed, "malformed provider response")
	}
	return nil
}

// serpURL builds a serpapi.com/search.json URL for the given engine.
func (c *Client) serpURL(engine string, params url.Values) string {
	params.Set("engine", engine)
	params.Set("api_key", c.cfg.APIKey)
	params.Set("hl", "en")
	return fmt.Sprintf("%s/search.json?%s", c.cfg.BaseURL, params.Encode())
}

var _ model.ExternalSearchPort = (*Client)(nil)

// Package railapi is the client for the external train-route directory
// (the data.gov.in Indian Railways time-table resource). It is read-only
// and treated as a collaborator: no data from it is validated against the
// booking ledger.
package railapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/wookrail/trainbooking/config"
)

// Record is one raw row of the upstream time-table feed: a single stop of a
// single train.
type Record struct {
	TrainNo       string `json:"train_no"`
	TrainName     string `json:"train_name"`
	Seq           string `json:"seq"`
	StationCode   string `json:"station_code"`
	StationName   string `json:"station_name"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	Distance      string `json:"_distance"`
}

type response struct {
	Records []Record `json:"records"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.RailAPIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// Route fetches the stop records for one train number.
func (c *Client) Route(ctx context.Context, trainNo string) ([]Record, error) {
	params := url.Values{}
	params.Set("filters[train_no]", trainNo)
	return c.fetch(ctx, params)
}

// Records fetches up to limit rows of the full time-table, used by the
// station-pair search. The upstream feed has no station-pair query, so the
// search scans the dataset client-side.
func (c *Client) Records(ctx context.Context, limit int) ([]Record, error) {
	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	return c.fetch(ctx, params)
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]Record, error) {
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build route request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch route data: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route directory returned status %d", res.StatusCode)
	}

	var body response
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode route data: %w", err)
	}
	return body.Records, nil
}

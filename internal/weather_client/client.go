package weather_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultCurrentWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultOneCallURL        = "https://api.openweathermap.org/data/3.0/onecall"
)

// Client for the OpenWeatherMap API. Lookups are a stateless passthrough;
// any upstream failure is wrapped and surfaced to the caller unchanged in
// meaning.
type Client struct {
	apiKey     string
	currentURL string
	oneCallURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	return NewClientWithBaseURLs(apiKey, defaultCurrentWeatherURL, defaultOneCallURL, logger)
}

// NewClientWithBaseURLs creates a client against explicit endpoints. Used by
// tests to point at a fake upstream.
func NewClientWithBaseURLs(apiKey, currentURL, oneCallURL string, logger *zap.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		currentURL: currentURL,
		oneCallURL: oneCallURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// CityWeather fetches the full weather report for a city. The current-weather
// endpoint is queried first because it is the only free-tier call that
// resolves a city name to coordinates; the onecall endpoint then returns the
// complete report for those coordinates.
func (c *Client) CityWeather(ctx context.Context, city string) (map[string]any, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var current struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	}
	if err := c.getJSON(ctx, c.currentURL, q, &current); err != nil {
		return nil, fmt.Errorf("failed to resolve city coordinates: %w", err)
	}

	q = url.Values{}
	q.Set("lat", formatCoord(current.Coord.Lat))
	q.Set("lon", formatCoord(current.Coord.Lon))
	q.Set("exclude", "hourly,minutely")
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	var report map[string]any
	if err := c.getJSON(ctx, c.oneCallURL, q, &report); err != nil {
		return nil, fmt.Errorf("failed to fetch weather report: %w", err)
	}

	c.logger.Debug("Fetched weather report", zap.String("city", city))
	return report, nil
}

func (c *Client) getJSON(ctx context.Context, base string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openweathermap returned status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

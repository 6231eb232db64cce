package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/briefing/internal/core/domain"
	"github.com/custodia-labs/briefing/internal/core/ports/driven"
	"github.com/custodia-labs/briefing/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.WeatherClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 15 * time.Second
	DefaultTimezone          = "auto"
	DefaultRequestsPerSecond = 2.0
	DefaultResultCount       = 10
	dateLayout               = "2006-01-02"
	dailyFields              = "temperature_2m_max,temperature_2m_min"
)

// Config holds configuration for the Open-Meteo client.
type Config struct {
	// GeocodingURL is the geocoding search endpoint.
	GeocodingURL string

	// ForecastURL is the forecast endpoint.
	ForecastURL string

	// Timezone for daily aggregation (default: auto).
	Timezone string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 2).
	RequestsPerSecond float64

	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFrom builds a client config from application settings.
func ConfigFrom(s domain.WeatherSettings) Config {
	return Config{
		GeocodingURL:      s.GeocodingURL,
		ForecastURL:       s.ForecastURL,
		Timezone:          s.Timezone,
		Timeout:           s.Timeout,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// Client talks to the Open-Meteo APIs.
type Client struct {
	client       *http.Client
	limiter      *RateLimiter
	geocodingURL string
	forecastURL  string
	timezone     string
}

// geocodingResponse is the geocoding API response format.
// Results is absent when nothing matched.
type geocodingResponse struct {
	Results []domain.Location `json:"results"`
}

// forecastResponse is the forecast API response format.
type forecastResponse struct {
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
	DailyUnits struct {
		TemperatureMax string `json:"temperature_2m_max"`
		TemperatureMin string `json:"temperature_2m_min"`
	} `json:"daily_units"`
}

// errorResponse is returned by Open-Meteo on invalid requests.
type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg Config) *Client {
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = domain.DefaultGeocodingURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = domain.DefaultForecastURL
	}
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:       httpClient,
		limiter:      NewRateLimiter(cfg.RequestsPerSecond),
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		timezone:     cfg.Timezone,
	}
}

// Search geocodes a place name. No matches is an empty slice.
func (c *Client) Search(ctx context.Context, name string) ([]domain.Location, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", strconv.Itoa(DefaultResultCount))
	params.Set("language", "en")
	params.Set("format", "json")

	var resp geocodingResponse
	if err := c.get(ctx, c.geocodingURL, params, &resp); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}
	if resp.Results == nil {
		return []domain.Location{}, nil
	}
	return resp.Results, nil
}

// Forecast fetches the daily min/max temperature forecast for a location.
func (c *Client) Forecast(ctx context.Context, location domain.Location) (*domain.Forecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	params.Set("daily", dailyFields)
	params.Set("timezone", c.timezone)

	var resp forecastResponse
	if err := c.get(ctx, c.forecastURL, params, &resp); err != nil {
		return nil, fmt.Errorf("forecast for %s: %w", location.Name, err)
	}

	daily := resp.Daily
	if len(daily.TemperatureMax) != len(daily.Time) || len(daily.TemperatureMin) != len(daily.Time) {
		return nil, fmt.Errorf("forecast for %s: %w: %d days, %d maxima, %d minima",
			location.Name, ErrMalformedForecast, len(daily.Time), len(daily.TemperatureMax), len(daily.TemperatureMin))
	}

	times := make([]time.Time, 0, len(resp.Daily.Time))
	for _, s := range resp.Daily.Time {
		t, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("forecast for %s: parse date %q: %w", location.Name, s, err)
		}
		times = append(times, t)
	}

	return &domain.Forecast{
		Time:               times,
		TemperatureMax:     resp.Daily.TemperatureMax,
		TemperatureMin:     resp.Daily.TemperatureMin,
		TemperatureMaxUnit: resp.DailyUnits.TemperatureMax,
		TemperatureMinUnit: resp.DailyUnits.TemperatureMin,
	}, nil
}

// get performs a throttled GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("open-meteo: GET %s", req.URL.Redacted())
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimited(resp.Header.Get("Retry-After"))
	}
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("%w %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
		return fmt.Errorf("%w %d: %s", domain.ErrUnexpectedStatus, resp.StatusCode, apiErr.Reason)
	}
	return fmt.Errorf("%w %d: %s", domain.ErrUnexpectedStatus, resp.StatusCode, string(body))
}

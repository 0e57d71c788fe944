package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sentinel errors for providers.
var (
	// ErrNoConditions indicates a response without any weather condition entry.
	ErrNoConditions = errors.New("weather: response has no conditions")

	// ErrMalformedResponse indicates a response body that could not be decoded.
	ErrMalformedResponse = errors.New("weather: malformed response")

	// ErrMissingAPIKey indicates that a provider was configured without credentials.
	ErrMissingAPIKey = errors.New("weather: API key is empty")
)

// Provider fetches the current weather for a fixed location.
type Provider interface {
	Current(ctx context.Context) (Info, error)
}

// StatusError reports a non-2xx response from the upstream weather API.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather: upstream status %d: %s", e.Code, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// DefaultOpenWeatherURL is the current-weather endpoint of OpenWeatherMap.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherMap queries the OpenWeatherMap current-weather API. Results are
// in Kelvin (the API's default unit system).
type OpenWeatherMap struct {
	APIKey    string
	Latitude  float64
	Longitude float64
	BaseURL   string       // defaults to DefaultOpenWeatherURL
	Client    *http.Client // defaults to a client with a 10s timeout
}

type owmResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Current implements Provider.
func (o *OpenWeatherMap) Current(ctx context.Context) (Info, error) {
	if o.APIKey == "" {
		return Info{}, ErrMissingAPIKey
	}

	base := o.BaseURL
	if base == "" {
		base = DefaultOpenWeatherURL
	}
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(o.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(o.Longitude, 'f', -1, 64))
	q.Set("appid", o.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return Info{}, fmt.Errorf("weather: build request: %w", err)
	}

	client := o.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("weather: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Info{}, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var payload owmResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if len(payload.Weather) == 0 {
		return Info{}, ErrNoConditions
	}

	return Info{
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Condition:   payload.Weather[0].Main,
	}, nil
}

// Static is a Provider that always returns the same snapshot.
type Static Info

// Current implements Provider.
func (s Static) Current(context.Context) (Info, error) { return Info(s), nil }

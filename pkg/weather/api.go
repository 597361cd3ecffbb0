// Package weather talks to the OpenWeatherMap 5 day / 3 hour forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/forecast"

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	units      string
	lang       string
}

type Option func(*Client)

func WithUnits(units string) Option { return func(c *Client) { c.units = units } }
func WithLang(lang string) Option   { return func(c *Client) { c.lang = lang } }
func WithBaseURL(u string) Option   { return func(c *Client) { c.baseURL = u } }

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		units:      "metric",
		lang:       "en",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) params(city string) url.Values {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)
	params.Set("lang", c.lang)
	return params
}

// Forecast returns the provider's JSON body for city untouched. The HTTP
// status is not inspected: an error payload such as {"cod":"404"} is
// returned like any other body.
func (c *Client) Forecast(ctx context.Context, city string) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, c.params(city).Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather forecast for %q: %w", city, err)
	}
	defer resp.Body.Close()

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather forecast for %q: decode: %w", city, err)
	}
	return body, nil
}

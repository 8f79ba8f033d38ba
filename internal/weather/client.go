// Package weather wraps the OpenWeatherMap API. Every call is a single
// attempt with a request timeout; failures surface as errors for the
// handler to report, with no retry.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Client calls the OpenWeatherMap current/forecast/geocoding endpoints.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// New builds a Client. baseURL overrides the public API host, which the
// tests use to point at a local server; pass "" for the real service.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

// Current is the subset of the current-weather response the app uses.
type Current struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	Description string  `json:"description"`
	WindSpeed   float64 `json:"wind_speed"`
	Location    string  `json:"location"`
}

// ForecastEntry is one 3-hour slot of the 5-day forecast.
type ForecastEntry struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Description   string  `json:"description"`
	Precipitation float64 `json:"precipitation"`
}

// Place is one geocoding match.
type Place struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// CurrentWeather fetches current conditions for a coordinate.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (*Current, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	var raw struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, "/data/2.5/weather", q, &raw); err != nil {
		return nil, err
	}

	cur := &Current{
		Temperature: raw.Main.Temp,
		Humidity:    raw.Main.Humidity,
		Rainfall:    raw.Rain.OneHour,
		WindSpeed:   raw.Wind.Speed,
		Location:    raw.Name,
	}
	if len(raw.Weather) > 0 {
		cur.Description = raw.Weather[0].Description
	}
	return cur, nil
}

// Forecast fetches the 5-day/3-hour forecast for a coordinate.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]ForecastEntry, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	var raw struct {
		List []struct {
			DtTxt string `json:"dt_txt"`
			Main  struct {
				Temp     float64 `json:"temp"`
				Humidity float64 `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Description string `json:"description"`
			} `json:"weather"`
			Pop float64 `json:"pop"`
		} `json:"list"`
	}
	if err := c.getJSON(ctx, "/data/2.5/forecast", q, &raw); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(raw.List))
	for _, item := range raw.List {
		e := ForecastEntry{
			Time:          item.DtTxt,
			Temperature:   item.Main.Temp,
			Humidity:      item.Main.Humidity,
			Precipitation: item.Pop,
		}
		if len(item.Weather) > 0 {
			e.Description = item.Weather[0].Description
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Geocode resolves a free-text place name to coordinates.
func (c *Client) Geocode(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", "5")
	q.Set("appid", c.apiKey)

	var places []Place
	if err := c.getJSON(ctx, "/geo/1.0/direct", q, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("weather decode: %w", err)
	}
	return nil
}

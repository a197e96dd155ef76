package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/SwayamChandak/accuraTraveller/models"

	"golang.org/x/time/rate"
)

const (
	defaultGeocodingURL = "http://api.openweathermap.org/geo/1.0/direct"
	defaultWeatherURL   = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL  = "https://api.openweathermap.org/data/2.5/forecast"

	// The free-tier forecast endpoint covers 5 days in 3-hour steps.
	maxForecastDays = 5
	slotsPerDay     = 8
)

// ErrMissingAPIKey is returned by NewClient when no credential is available.
var ErrMissingAPIKey = errors.New("weather: API key is required (pass it to NewClient or set OPENWEATHER_API_KEY)")

// ErrNoMatch is returned by the by-city helpers when geocoding finds no
// candidate for the query. It is deliberately distinct from transport
// errors so callers can tell "unknown city" from "request failed".
var ErrNoMatch = errors.New("weather: no geocoding match for city")

// Client talks to the OpenWeatherMap geocoding and weather endpoints.
// Every call is a fresh outbound request; there is no caching.
type Client struct {
	apiKey       string
	geocodingURL string
	weatherURL   string
	forecastURL  string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a weather client. apiKey may be empty, in which case
// the OPENWEATHER_API_KEY environment variable is used. A missing key is a
// configuration error surfaced immediately.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENWEATHER_API_KEY")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	return &Client{
		apiKey:       apiKey,
		geocodingURL: defaultGeocodingURL,
		weatherURL:   defaultWeatherURL,
		forecastURL:  defaultForecastURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Free tier allows 60 calls/minute; pace at 1 rps with a small burst.
		limiter: rate.NewLimiter(rate.Limit(1), 5),
	}, nil
}

// get performs one rate-limited GET and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Geocode resolves a free-text city query (optionally "City,CountryCode")
// to candidate locations. An unknown city yields an empty slice, not an
// error. limit caps the number of candidates; values below 1 default to 5.
func (c *Client) Geocode(ctx context.Context, city string, limit int) ([]models.Location, error) {
	if limit < 1 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, c.geocodingURL, params)
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", city, err)
	}

	var response []struct {
		Name    string  `json:"name"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Country string  `json:"country"`
		State   string  `json:"state"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("geocoding %q: failed to parse response: %w", city, err)
	}

	locations := make([]models.Location, 0, len(response))
	for _, loc := range response {
		locations = append(locations, models.Location{
			Name:    loc.Name,
			Lat:     loc.Lat,
			Lon:     loc.Lon,
			Country: loc.Country,
			State:   loc.State,
		})
	}

	return locations, nil
}

// Current fetches current conditions for the given coordinates and unit
// system ("metric", "imperial" or "standard") and reshapes the provider's
// response into the flat snapshot form.
func (c *Client) Current(ctx context.Context, lat, lon float64, units string) (*models.CurrentWeather, error) {
	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("units", units)

	body, err := c.get(ctx, c.weatherURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetching current weather: %w", err)
	}

	var response struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
			Deg   int     `json:"deg"`
		} `json:"wind"`
		Visibility int `json:"visibility"`
		Clouds     struct {
			All int `json:"all"`
		} `json:"clouds"`
		Dt  int64 `json:"dt"`
		Sys struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("fetching current weather: failed to parse response: %w", err)
	}

	weather := models.CurrentWeather{
		Location: response.Name,
		Country:  response.Sys.Country,
		Coordinates: models.Coordinates{
			Lat: response.Coord.Lat,
			Lon: response.Coord.Lon,
		},
		Temperature: models.Temperature{
			Current:   response.Main.Temp,
			FeelsLike: response.Main.FeelsLike,
			Min:       response.Main.TempMin,
			Max:       response.Main.TempMax,
			Unit:      TempUnit(units),
		},
		Wind: models.Wind{
			Speed: response.Wind.Speed,
			Deg:   response.Wind.Deg,
			Unit:  windUnit(units),
		},
		Humidity:   response.Main.Humidity,
		Pressure:   response.Main.Pressure,
		Visibility: float64(response.Visibility) / 1000, // m -> km
		Clouds:     response.Clouds.All,
		Sunrise:    time.Unix(response.Sys.Sunrise, 0).Format("15:04:05"),
		Sunset:     time.Unix(response.Sys.Sunset, 0).Format("15:04:05"),
		Timestamp:  time.Unix(response.Dt, 0).Format("2006-01-02 15:04:05"),
	}
	if len(response.Weather) > 0 {
		weather.Weather = models.Condition{
			Main:        response.Weather[0].Main,
			Description: response.Weather[0].Description,
			Icon:        response.Weather[0].Icon,
		}
	}

	return &weather, nil
}

// Forecast fetches the 3-hour forecast for the given coordinates. days is
// clamped to the provider's 5-day free-tier ceiling; the result holds at
// most days*8 entries in provider order.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, units string, days int) (*models.Forecast, error) {
	if days < 1 {
		days = 1
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	params := url.Values{}
	params.Set("lat", formatCoord(lat))
	params.Set("lon", formatCoord(lon))
	params.Set("units", units)

	body, err := c.get(ctx, c.forecastURL, params)
	if err != nil {
		return nil, fmt.Errorf("fetching forecast: %w", err)
	}

	var response struct {
		City struct {
			Name  string `json:"name"`
			Coord struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"coord"`
			Country string `json:"country"`
		} `json:"city"`
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp      float64 `json:"temp"`
				FeelsLike float64 `json:"feels_like"`
				TempMin   float64 `json:"temp_min"`
				TempMax   float64 `json:"temp_max"`
				Humidity  int     `json:"humidity"`
			} `json:"main"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Pop float64 `json:"pop"`
		} `json:"list"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("fetching forecast: failed to parse response: %w", err)
	}

	maxEntries := days * slotsPerDay
	if maxEntries > len(response.List) {
		maxEntries = len(response.List)
	}

	forecast := models.Forecast{
		Location: response.City.Name,
		Country:  response.City.Country,
		Coordinates: models.Coordinates{
			Lat: response.City.Coord.Lat,
			Lon: response.City.Coord.Lon,
		},
		Unit:    TempUnit(units),
		Entries: make([]models.ForecastEntry, 0, maxEntries),
	}

	for _, item := range response.List[:maxEntries] {
		ts := time.Unix(item.Dt, 0)

		entry := models.ForecastEntry{
			DateTime:        ts.Format("2006-01-02 15:04:05"),
			Date:            ts.Format("2006-01-02"),
			Time:            ts.Format("15:04"),
			Temp:            item.Main.Temp,
			FeelsLike:       item.Main.FeelsLike,
			TempMin:         item.Main.TempMin,
			TempMax:         item.Main.TempMax,
			Humidity:        item.Main.Humidity,
			WindSpeed:       item.Wind.Speed,
			RainProbability: item.Pop * 100,
		}
		if len(item.Weather) > 0 {
			entry.Weather = item.Weather[0].Main
			entry.Description = item.Weather[0].Description
		}
		forecast.Entries = append(forecast.Entries, entry)
	}

	return &forecast, nil
}

// CurrentByCity chains geocoding and the current-weather fetch. An
// ambiguous city resolves to the first geocoding candidate; no candidate
// yields ErrNoMatch.
func (c *Client) CurrentByCity(ctx context.Context, city, units string) (*models.CurrentWeather, error) {
	loc, err := c.firstMatch(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.Current(ctx, loc.Lat, loc.Lon, units)
}

// ForecastByCity chains geocoding and the forecast fetch.
func (c *Client) ForecastByCity(ctx context.Context, city, units string, days int) (*models.Forecast, error) {
	loc, err := c.firstMatch(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.Forecast(ctx, loc.Lat, loc.Lon, units, days)
}

func (c *Client) firstMatch(ctx context.Context, city string) (models.Location, error) {
	locations, err := c.Geocode(ctx, city, 1)
	if err != nil {
		return models.Location{}, err
	}
	if len(locations) == 0 {
		return models.Location{}, fmt.Errorf("%w: %q", ErrNoMatch, city)
	}
	return locations[0], nil
}

// TempUnit returns the temperature label for a unit system.
func TempUnit(units string) string {
	switch units {
	case "metric":
		return "°C"
	case "imperial":
		return "°F"
	default:
		return "K"
	}
}

// windUnit mirrors the provider's wind units: m/s for metric, mph otherwise.
func windUnit(units string) string {
	if units == "metric" {
		return "m/s"
	}
	return "mph"
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

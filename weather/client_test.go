package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/SwayamChandak/accuraTraveller/models"
)

const geocodeLondon = `[
	{"name": "London", "lat": 51.5073219, "lon": -0.1276474, "country": "GB"},
	{"name": "London", "lat": 42.9836747, "lon": -81.2496068, "country": "CA", "state": "Ontario"}
]`

const currentLondon = `{
	"coord": {"lon": -0.1276, "lat": 51.5073},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"main": {"temp": 14.2, "feels_like": 13.6, "temp_min": 12.8, "temp_max": 15.4, "pressure": 1012, "humidity": 71},
	"visibility": 10000,
	"wind": {"speed": 4.6, "deg": 240},
	"clouds": {"all": 75},
	"dt": 1717500000,
	"sys": {"country": "GB", "sunrise": 1717473600, "sunset": 1717532400},
	"name": "London"
}`

// testClient returns a client whose endpoints all point at the given server.
func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	client.geocodingURL = serverURL + "/geo/1.0/direct"
	client.weatherURL = serverURL + "/data/2.5/weather"
	client.forecastURL = serverURL + "/data/2.5/forecast"
	return client
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := NewClient("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewClient(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewClient_KeyFromEnv(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "env-key")

	client, err := NewClient("")
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	if client.apiKey != "env-key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "env-key")
	}
}

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("query q = %q, want %q", got, "London")
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("query appid = %q, want %q", got, "test-key")
		}
		w.Write([]byte(geocodeLondon))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	locations, err := client.Geocode(context.Background(), "London", 5)
	if err != nil {
		t.Fatalf("Geocode() error: %v", err)
	}
	if len(locations) == 0 {
		t.Fatal("Geocode() returned no candidates for a known city")
	}
	for _, loc := range locations {
		if loc.Lat < -90 || loc.Lat > 90 {
			t.Errorf("latitude %v out of bounds", loc.Lat)
		}
		if loc.Lon < -180 || loc.Lon > 180 {
			t.Errorf("longitude %v out of bounds", loc.Lon)
		}
	}
	if locations[1].State != "Ontario" {
		t.Errorf("second candidate state = %q, want %q", locations[1].State, "Ontario")
	}
}

func TestGeocode_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	locations, err := client.Geocode(context.Background(), "Atlantis", 5)
	if err != nil {
		t.Fatalf("Geocode() error: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("Geocode() = %d candidates, want 0", len(locations))
	}
}

func TestCurrent_UnitLabels(t *testing.T) {
	tests := []struct {
		units    string
		tempUnit string
		windUnit string
	}{
		{"metric", "°C", "m/s"},
		{"imperial", "°F", "mph"},
		{"standard", "K", "mph"},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentLondon))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	for _, tt := range tests {
		t.Run(tt.units, func(t *testing.T) {
			data, err := client.Current(context.Background(), 51.5073, -0.1276, tt.units)
			if err != nil {
				t.Fatalf("Current() error: %v", err)
			}
			if data.Temperature.Unit != tt.tempUnit {
				t.Errorf("temperature unit = %q, want %q", data.Temperature.Unit, tt.tempUnit)
			}
			if data.Wind.Unit != tt.windUnit {
				t.Errorf("wind unit = %q, want %q", data.Wind.Unit, tt.windUnit)
			}
		})
	}
}

func TestCurrent_Flattening(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentLondon))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	data, err := client.Current(context.Background(), 51.5073, -0.1276, "metric")
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	if data.Location != "London" || data.Country != "GB" {
		t.Errorf("location = %s,%s, want London,GB", data.Location, data.Country)
	}
	if data.Weather.Main != "Clouds" || data.Weather.Description != "broken clouds" {
		t.Errorf("unexpected condition: %+v", data.Weather)
	}
	if data.Visibility != 10.0 {
		t.Errorf("visibility = %v km, want 10", data.Visibility)
	}
	if data.Humidity != 71 || data.Pressure != 1012 || data.Clouds != 75 {
		t.Errorf("unexpected humidity/pressure/clouds: %d/%d/%d", data.Humidity, data.Pressure, data.Clouds)
	}
	if data.Timestamp == "" || data.Sunrise == "" || data.Sunset == "" {
		t.Error("timestamp fields should be populated")
	}
}

func TestCurrent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.Current(context.Background(), 0, 0, "metric")
	if err == nil {
		t.Fatal("Current() should fail on a non-2xx response")
	}
}

func forecastBody(t *testing.T, slots int) []byte {
	t.Helper()

	type slot struct {
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
	}

	var body struct {
		City struct {
			Name  string `json:"name"`
			Coord struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"coord"`
			Country string `json:"country"`
		} `json:"city"`
		List []slot `json:"list"`
	}
	body.City.Name = "Tokyo"
	body.City.Country = "JP"
	body.City.Coord.Lat = 35.6762
	body.City.Coord.Lon = 139.6503

	base := int64(1717500000)
	for i := 0; i < slots; i++ {
		var s slot
		s.Dt = base + int64(i)*3*3600
		s.Main.Temp = 20 + float64(i%8)
		s.Pop = 0.25
		s.Weather = append(s.Weather, struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		}{"Rain", "light rain"})
		body.List = append(body.List, s)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal forecast fixture: %v", err)
	}
	return raw
}

func TestForecast_EntryCeiling(t *testing.T) {
	// The provider returns the full 5-day window regardless of the
	// requested day count.
	raw := forecastBody(t, 40)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(raw)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	tests := []struct {
		name        string
		days        int
		wantEntries int
	}{
		{"one day", 1, 8},
		{"three days", 3, 24},
		{"at ceiling", 5, 40},
		{"beyond ceiling", 10, 40},
		{"below one", 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forecast, err := client.Forecast(context.Background(), 35.6762, 139.6503, "metric", tt.days)
			if err != nil {
				t.Fatalf("Forecast() error: %v", err)
			}
			if len(forecast.Entries) != tt.wantEntries {
				t.Errorf("entries = %d, want %d", len(forecast.Entries), tt.wantEntries)
			}
		})
	}
}

func TestForecast_RainProbabilityPercent(t *testing.T) {
	raw := forecastBody(t, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(raw)
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	forecast, err := client.Forecast(context.Background(), 35.6762, 139.6503, "metric", 1)
	if err != nil {
		t.Fatalf("Forecast() error: %v", err)
	}
	if got := forecast.Entries[0].RainProbability; got != 25 {
		t.Errorf("rain probability = %v, want 25", got)
	}
}

func TestCurrentByCity_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.CurrentByCity(context.Background(), "Nowhere", "metric")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("CurrentByCity() error = %v, want ErrNoMatch", err)
	}
}

func TestCurrentByCity_FirstCandidateWins(t *testing.T) {
	var weatherQuery map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geocodeLondon))
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		weatherQuery = map[string]string{
			"lat": r.URL.Query().Get("lat"),
			"lon": r.URL.Query().Get("lon"),
		}
		w.Write([]byte(currentLondon))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := testClient(t, server.URL)

	if _, err := client.CurrentByCity(context.Background(), "London", "metric"); err != nil {
		t.Fatalf("CurrentByCity() error: %v", err)
	}
	// The ambiguous query must resolve to the first candidate (GB London).
	if weatherQuery["lat"] != "51.5073219" || weatherQuery["lon"] != "-0.1276474" {
		t.Errorf("weather fetched for %v, want first geocoding candidate", weatherQuery)
	}
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(currentLondon))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	data, err := client.Current(context.Background(), 51.5073, -0.1276, "metric")
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "weather.json")
	if err := SaveJSON(data, path); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}

	var reloaded models.CurrentWeather
	if err := json.Unmarshal(raw, &reloaded); err != nil {
		t.Fatalf("unmarshal saved file: %v", err)
	}

	if !reflect.DeepEqual(*data, reloaded) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", reloaded, *data)
	}
}

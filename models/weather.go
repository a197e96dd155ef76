package models

// Location is a single geocoding candidate for a free-text city query.
type Location struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}

// Coordinates holds a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Temperature is the flattened temperature block of a weather snapshot.
// Unit is the display label for the requested unit system (°C, °F or K).
type Temperature struct {
	Current   float64 `json:"current"`
	FeelsLike float64 `json:"feels_like"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Unit      string  `json:"unit"`
}

// Condition describes the dominant weather condition.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Wind holds wind speed and direction with the unit label for the
// requested unit system.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
	Unit  string  `json:"unit"`
}

// CurrentWeather is an immutable snapshot of current conditions for one
// location. The JSON layout matches the files the old scripts produced, so
// previously saved dumps stay readable.
type CurrentWeather struct {
	Location    string      `json:"location"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
	Temperature Temperature `json:"temperature"`
	Weather     Condition   `json:"weather"`
	Wind        Wind        `json:"wind"`
	Humidity    int         `json:"humidity"`
	Pressure    int         `json:"pressure"`
	Visibility  float64     `json:"visibility"` // km
	Clouds      int         `json:"clouds"`     // percent cover
	Sunrise     string      `json:"sunrise"`    // HH:MM:SS local
	Sunset      string      `json:"sunset"`
	Timestamp   string      `json:"timestamp"` // YYYY-MM-DD HH:MM:SS
}

// ForecastEntry is one 3-hour forecast slot.
type ForecastEntry struct {
	DateTime        string  `json:"datetime"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Temp            float64 `json:"temp"`
	FeelsLike       float64 `json:"feels_like"`
	TempMin         float64 `json:"temp_min"`
	TempMax         float64 `json:"temp_max"`
	Weather         string  `json:"weather"`
	Description     string  `json:"description"`
	Humidity        int     `json:"humidity"`
	WindSpeed       float64 `json:"wind_speed"`
	RainProbability float64 `json:"rain_probability"` // percent
}

// Forecast is an ordered sequence of 3-hour entries for one location,
// capped at the provider's free-tier horizon of 5 days.
type Forecast struct {
	Location    string          `json:"location"`
	Country     string          `json:"country"`
	Coordinates Coordinates     `json:"coordinates"`
	Unit        string          `json:"unit"`
	Entries     []ForecastEntry `json:"forecast"`
}

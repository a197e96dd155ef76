package weather

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SwayamChandak/accuraTraveller/models"
)

// PrintCurrent writes a human-readable rendering of a weather snapshot to
// stdout. It carries no business logic.
func PrintCurrent(data *models.CurrentWeather) {
	if data == nil {
		fmt.Println("No weather data to display")
		return
	}

	divider := strings.Repeat("=", 60)

	fmt.Println("\n" + divider)
	fmt.Printf("CURRENT WEATHER: %s, %s\n", data.Location, data.Country)
	fmt.Println(divider)
	fmt.Printf("Time: %s\n", data.Timestamp)
	fmt.Printf("Coordinates: %g, %g\n", data.Coordinates.Lat, data.Coordinates.Lon)
	fmt.Println()
	fmt.Printf("Temperature: %g%s\n", data.Temperature.Current, data.Temperature.Unit)
	fmt.Printf("  Feels like: %g%s\n", data.Temperature.FeelsLike, data.Temperature.Unit)
	fmt.Printf("  Min: %g%s | Max: %g%s\n",
		data.Temperature.Min, data.Temperature.Unit,
		data.Temperature.Max, data.Temperature.Unit)
	fmt.Println()
	fmt.Printf("Condition: %s - %s\n", data.Weather.Main, data.Weather.Description)
	fmt.Printf("Humidity: %d%%\n", data.Humidity)
	fmt.Printf("Wind: %g %s\n", data.Wind.Speed, data.Wind.Unit)
	fmt.Printf("Visibility: %.1f km\n", data.Visibility)
	fmt.Printf("Cloud Cover: %d%%\n", data.Clouds)
	fmt.Printf("Sunrise: %s\n", data.Sunrise)
	fmt.Printf("Sunset: %s\n", data.Sunset)
	fmt.Println(divider + "\n")
}

// PrintForecast writes a per-day summary of a forecast to stdout, showing
// at most daysToShow days: temperature range, the set of conditions, the
// highest rain probability, and the first four 3-hour slots of each day.
func PrintForecast(forecast *models.Forecast, daysToShow int) {
	if forecast == nil || len(forecast.Entries) == 0 {
		fmt.Println("No forecast data to display")
		return
	}

	divider := strings.Repeat("=", 60)

	fmt.Println("\n" + divider)
	fmt.Printf("WEATHER FORECAST: %s, %s\n", forecast.Location, forecast.Country)
	fmt.Println(divider)

	// Group entries per calendar date, keeping first-seen date order.
	var dates []string
	byDate := make(map[string][]models.ForecastEntry)
	for _, entry := range forecast.Entries {
		if _, seen := byDate[entry.Date]; !seen {
			dates = append(dates, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}

	if daysToShow > 0 && daysToShow < len(dates) {
		dates = dates[:daysToShow]
	}

	for _, date := range dates {
		entries := byDate[date]

		fmt.Printf("\n%s\n", date)
		fmt.Println(strings.Repeat("-", 60))

		minTemp, maxTemp := entries[0].Temp, entries[0].Temp
		maxRain := entries[0].RainProbability
		var conditions []string
		seenCondition := make(map[string]bool)
		for _, e := range entries {
			if e.Temp < minTemp {
				minTemp = e.Temp
			}
			if e.Temp > maxTemp {
				maxTemp = e.Temp
			}
			if e.RainProbability > maxRain {
				maxRain = e.RainProbability
			}
			if e.Weather != "" && !seenCondition[e.Weather] {
				seenCondition[e.Weather] = true
				conditions = append(conditions, e.Weather)
			}
		}

		fmt.Printf("Temp Range: %.1f%s - %.1f%s\n", minTemp, forecast.Unit, maxTemp, forecast.Unit)
		fmt.Printf("Conditions: %s\n", strings.Join(conditions, ", "))
		fmt.Printf("Rain Probability: %.0f%%\n\n", maxRain)

		slots := entries
		if len(slots) > 4 {
			slots = slots[:4]
		}
		for _, e := range slots {
			fmt.Printf("  %s: %.1f%s, %s\n", e.Time, e.Temp, forecast.Unit, e.Description)
		}
	}

	fmt.Println(divider + "\n")
}

// SaveJSON writes any weather value to an indented JSON file.
func SaveJSON(v interface{}, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode weather data: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return nil
}

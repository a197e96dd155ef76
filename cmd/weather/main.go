package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/SwayamChandak/accuraTraveller/weather"

	"github.com/joho/godotenv"
)

func main() {
	city := flag.String("city", "", "City name, optionally with country code (e.g. \"Pune\" or \"London,GB\")")
	units := flag.String("units", "metric", "Unit system: metric, imperial or standard")
	days := flag.Int("days", 0, "Show a forecast for this many days (1-5) instead of current weather")
	geocode := flag.Bool("geocode", false, "List geocoding candidates for the city and exit")
	output := flag.String("output", "", "Save the result as JSON to this file")
	flag.Parse()

	if *city == "" {
		log.Fatal("Usage: weather -city <name> [-units metric|imperial|standard] [-days N] [-output file.json]")
	}

	// Loads OPENWEATHER_API_KEY when a .env file is present.
	godotenv.Load()

	client, err := weather.NewClient("")
	if err != nil {
		log.Fatalf("Failed to create weather client: %v\n", err)
	}

	ctx := context.Background()

	if *geocode {
		locations, err := client.Geocode(ctx, *city, 5)
		if err != nil {
			log.Fatalf("Geocoding failed: %v\n", err)
		}
		if len(locations) == 0 {
			fmt.Printf("No locations found for '%s'\n", *city)
			return
		}
		fmt.Printf("Locations matching '%s':\n", *city)
		for i, loc := range locations {
			name := loc.Name
			if loc.State != "" {
				name += ", " + loc.State
			}
			fmt.Printf("%d. %s, %s (%.4f, %.4f)\n", i+1, name, loc.Country, loc.Lat, loc.Lon)
		}
		return
	}

	if *days > 0 {
		forecast, err := client.ForecastByCity(ctx, *city, *units, *days)
		if err != nil {
			log.Fatalf("Forecast failed: %v\n", err)
		}
		weather.PrintForecast(forecast, *days)
		if *output != "" {
			if err := weather.SaveJSON(forecast, *output); err != nil {
				log.Fatalf("Failed to save forecast: %v\n", err)
			}
		}
		return
	}

	current, err := client.CurrentByCity(ctx, *city, *units)
	if err != nil {
		log.Fatalf("Weather lookup failed: %v\n", err)
	}
	weather.PrintCurrent(current)
	if *output != "" {
		if err := weather.SaveJSON(current, *output); err != nil {
			log.Fatalf("Failed to save weather: %v\n", err)
		}
	}
}

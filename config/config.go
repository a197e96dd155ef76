package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the weather client, the scraper and the
// summarizer. Everything has a working default so a missing config file is
// not an error for callers that use GetDefaultConfig.
type Config struct {
	Weather struct {
		Units        string `yaml:"units"`
		ForecastDays int    `yaml:"forecast_days"`
	} `yaml:"weather"`

	Scraper struct {
		DelaySeconds float64 `yaml:"delay_seconds"`
		UseBrowser   bool    `yaml:"use_browser"`
	} `yaml:"scraper"`

	Filters struct {
		MinRating  float64 `yaml:"min_rating"`
		MaxReviews int     `yaml:"max_reviews"`
	} `yaml:"filters"`

	LLM struct {
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"llm"`
}

// Delay returns the scraper delay as a duration.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.Scraper.DelaySeconds * float64(time.Second))
}

// LoadConfig loads configuration from a YAML file. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := GetDefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// GetDefaultConfig returns a default configuration.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Weather.Units = "metric"
	cfg.Weather.ForecastDays = 5
	cfg.Scraper.DelaySeconds = 2.0
	cfg.Scraper.UseBrowser = false
	cfg.Filters.MinRating = 0.0
	cfg.Filters.MaxReviews = 0
	cfg.LLM.Model = "llama3.2"
	cfg.LLM.BaseURL = "http://localhost:11434"
	return cfg
}

package summarizer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/SwayamChandak/accuraTraveller/models"
)

// LoadPage reads a scraped page back from a JSON file produced by the
// scraper.
func LoadPage(path string) (*models.ScrapedPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var page models.ScrapedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return &page, nil
}

// LoadPages reads a JSON array of scraped pages.
func LoadPages(path string) ([]*models.ScrapedPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var pages []*models.ScrapedPage
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	return pages, nil
}

// SaveSummary writes a generated summary to a text file.
func SaveSummary(summary, path string) error {
	if err := os.WriteFile(path, []byte(summary), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("Summary saved to %s\n", path)
	return nil
}

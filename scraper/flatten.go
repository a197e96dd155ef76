package scraper

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/SwayamChandak/accuraTraveller/models"
)

const (
	maxFlattenedAmenities  = 20
	maxFlattenedReviews    = 10
	maxReviewExcerptLen    = 200
	maxFlattenedParagraphs = 10
	minParagraphLen        = 50
)

// FormatForLLM flattens a scraped page into labeled plain text sized for a
// language model prompt. Empty sections are omitted; long sections are
// capped so a single verbose page cannot blow the prompt budget.
func FormatForLLM(page *models.ScrapedPage) string {
	var out []string

	if page.Content.Title != "" {
		out = append(out, fmt.Sprintf("TITLE: %s\n", page.Content.Title))
	}

	if len(page.Content.Headings) > 0 {
		out = append(out, "HEADINGS:")
		for _, h := range page.Content.Headings {
			out = append(out, fmt.Sprintf("  %s %s", strings.Repeat("#", h.Level), h.Text))
		}
		out = append(out, "")
	}

	if page.Ratings.OverallRating != nil || page.Ratings.TotalReviews != nil {
		out = append(out, "RATINGS:")
		if page.Ratings.OverallRating != nil {
			out = append(out, fmt.Sprintf("  Overall: %g", *page.Ratings.OverallRating))
		}
		if page.Ratings.TotalReviews != nil {
			out = append(out, fmt.Sprintf("  Total Reviews: %d", *page.Ratings.TotalReviews))
		}
		out = append(out, "")
	}

	if page.Location.Address != "" {
		out = append(out, fmt.Sprintf("LOCATION: %s\n", page.Location.Address))
	}

	if len(page.Amenities) > 0 {
		out = append(out, "AMENITIES:")
		amenities := page.Amenities
		if len(amenities) > maxFlattenedAmenities {
			amenities = amenities[:maxFlattenedAmenities]
		}
		for _, a := range amenities {
			out = append(out, fmt.Sprintf("  - %s", a))
		}
		out = append(out, "")
	}

	if len(page.Reviews) > 0 {
		out = append(out, "REVIEWS:")
		reviews := page.Reviews
		if len(reviews) > maxFlattenedReviews {
			reviews = reviews[:maxFlattenedReviews]
		}
		for i, r := range reviews {
			out = append(out, fmt.Sprintf("\nReview %d:", i+1))
			if r.Rating != nil {
				out = append(out, fmt.Sprintf("  Rating: %g", *r.Rating))
			}
			if r.Title != "" {
				out = append(out, fmt.Sprintf("  Title: %s", r.Title))
			}
			if r.Text != "" {
				out = append(out, fmt.Sprintf("  Text: %s...", truncateRunes(r.Text, maxReviewExcerptLen)))
			}
			if r.Date != "" {
				out = append(out, fmt.Sprintf("  Date: %s", r.Date))
			}
		}
		out = append(out, "")
	}

	if len(page.Content.Paragraphs) > 0 {
		out = append(out, "MAIN CONTENT:")
		count := 0
		for _, para := range page.Content.Paragraphs {
			if count >= maxFlattenedParagraphs {
				break
			}
			count++
			if len(para) > minParagraphLen {
				out = append(out, fmt.Sprintf("  %s\n", para))
			}
		}
	}

	return strings.Join(out, "\n")
}

// truncateRunes shortens s to at most n runes. Cutting by bytes could
// split a multi-byte character and feed invalid UTF-8 to the LLM.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// SaveJSON writes v to filename as indented JSON.
func SaveJSON(v interface{}, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	log.Printf("Data saved to %s\n", filename)
	return nil
}

package filter

import (
	"github.com/SwayamChandak/accuraTraveller/config"
	"github.com/SwayamChandak/accuraTraveller/models"
)

// Filter trims scraped reviews down to the ones worth keeping before they
// are exported or fed to the summarizer.
type Filter struct {
	cfg *config.Config
}

// NewFilter creates a new Filter instance.
func NewFilter(cfg *config.Config) *Filter {
	return &Filter{
		cfg: cfg,
	}
}

// ApplyFilters returns the reviews that pass the configured criteria, in
// their original order, capped at max_reviews when that is set.
func (f *Filter) ApplyFilters(reviews []models.Review) []models.Review {
	var filtered []models.Review

	for _, review := range reviews {
		if f.matchesFilters(review) {
			filtered = append(filtered, review)
		}
		if f.cfg.Filters.MaxReviews > 0 && len(filtered) >= f.cfg.Filters.MaxReviews {
			break
		}
	}

	return filtered
}

// FilterPage applies the review filters to a scraped page in place and
// returns it. Pages carrying an error marker pass through untouched.
func (f *Filter) FilterPage(page *models.ScrapedPage) *models.ScrapedPage {
	if page.Error != "" {
		return page
	}
	page.Reviews = f.ApplyFilters(page.Reviews)
	return page
}

// matchesFilters checks if a review passes all filter criteria.
func (f *Filter) matchesFilters(review models.Review) bool {
	// Only filter by rating when one was extracted. Unrated reviews pass,
	// since a missing rating usually means the page just hid it.
	if review.Rating != nil && *review.Rating < f.cfg.Filters.MinRating {
		return false
	}

	return true
}

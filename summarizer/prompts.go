package summarizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SwayamChandak/accuraTraveller/models"
)

const (
	maxPromptAttractions    = 15
	maxPromptHotels         = 10
	maxAttractionExcerptLen = 200
	maxCombinedAttractions  = 10
	maxCombinedHotels       = 8
)

// AttractionsPrompt builds a summary prompt from a scraped attractions page.
// Headings double as the attraction names; paragraphs provide the excerpts,
// matched up by position among the kept attractions.
func AttractionsPrompt(page *models.ScrapedPage) string {
	var lines []string
	count := 0
	for _, h := range page.Content.Headings {
		if h.Level < 2 || h.Level > 3 {
			continue
		}
		if count >= maxPromptAttractions {
			break
		}
		excerpt := ""
		if count < len(page.Content.Paragraphs) {
			excerpt = truncateRunes(page.Content.Paragraphs[count], maxAttractionExcerptLen)
		}
		count++
		lines = append(lines, fmt.Sprintf("- %s: %s", h.Text, excerpt))
	}

	return fmt.Sprintf(`You are a travel expert. Analyze this data about things to do in a city and provide a comprehensive summary.

Title: %s
Total Attractions: %d
Scraped: %s

Top Attractions:
%s

Please provide:
1. A brief overview of the destination
2. Top 5 must-visit attractions with brief descriptions
3. Types of activities available (adventure, cultural, historical, etc.)
4. Best suited for which type of travelers
5. Key highlights and unique experiences

Keep the summary concise and informative (around 300-400 words).`,
		orNA(page.Content.Title), count, orNA(page.ScrapedAt), strings.Join(lines, "\n"))
}

// HotelsPrompt builds a summary prompt from scraped hotel pages. Search
// result pages contribute their per-hotel cards, price included; pages
// without cards fall back to one sample line per page.
func HotelsPrompt(pages []*models.ScrapedPage) string {
	hotels := collectHotels(pages)

	var lines []string
	var total int
	if len(hotels) > 0 {
		total = len(hotels)
		for _, h := range hotels {
			if len(lines) >= maxPromptHotels {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s | Location: %s | Price: %s | Rating: %s",
				h.Name, orNA(h.Location), orNA(h.Price), orNA(h.Rating)))
		}
	} else {
		for _, page := range pages {
			if page.Error != "" {
				continue
			}
			total++
			if len(lines) >= maxPromptHotels {
				continue
			}
			rating := "N/A"
			if page.Ratings.OverallRating != nil {
				rating = fmt.Sprintf("%g", *page.Ratings.OverallRating)
			}
			lines = append(lines, fmt.Sprintf("- %s | Location: %s | Price: %s | Rating: %s",
				orNA(page.Content.Title), orNA(page.Location.Address), "N/A", rating))
		}
	}

	scrapedAt := "N/A"
	searchURL := "N/A"
	if len(pages) > 0 {
		scrapedAt = orNA(pages[0].ScrapedAt)
		searchURL = orNA(pages[0].URL)
	}

	return fmt.Sprintf(`You are a travel accommodation expert. Analyze this hotel booking data and provide a helpful summary.

Search URL: %s
Total Hotels Found: %d
Scraped: %s

Sample Hotels:
%s

Please provide:
1. Overview of accommodation options in this area
2. Price range analysis (budget, mid-range, luxury)
3. Top 3-5 recommended hotels with reasons
4. Popular areas/neighborhoods mentioned
5. General recommendations for travelers

Keep the summary practical and informative (around 300-400 words).`,
		searchURL, total, scrapedAt, strings.Join(lines, "\n"))
}

// TravelGuidePrompt combines an attractions page and hotel pages into a
// single travel guide prompt.
func TravelGuidePrompt(attractions *models.ScrapedPage, hotels []*models.ScrapedPage) string {
	var attractionLines []string
	for _, h := range attractions.Content.Headings {
		if h.Level < 2 || h.Level > 3 {
			continue
		}
		if len(attractionLines) >= maxCombinedAttractions {
			break
		}
		attractionLines = append(attractionLines, fmt.Sprintf("%d. %s", len(attractionLines)+1, h.Text))
	}

	listings := collectHotels(hotels)

	var hotelLines []string
	var totalHotels int
	if len(listings) > 0 {
		totalHotels = len(listings)
		for _, h := range listings {
			if len(hotelLines) >= maxCombinedHotels {
				break
			}
			hotelLines = append(hotelLines, fmt.Sprintf("%d. %s - %s - %s",
				len(hotelLines)+1, h.Name, orNA(h.Location), orNA(h.Rating)))
		}
	} else {
		for _, page := range hotels {
			if page.Error != "" {
				continue
			}
			totalHotels++
			if len(hotelLines) >= maxCombinedHotels {
				continue
			}
			rating := "N/A"
			if page.Ratings.OverallRating != nil {
				rating = fmt.Sprintf("%g", *page.Ratings.OverallRating)
			}
			hotelLines = append(hotelLines, fmt.Sprintf("%d. %s - %s - %s",
				len(hotelLines)+1, orNA(page.Content.Title), orNA(page.Location.Address), rating))
		}
	}

	return fmt.Sprintf(`You are an expert travel planner. Create a comprehensive travel guide combining attractions and accommodation data.

ATTRACTIONS DATA:
Total Things to Do: %d
Top Attractions:
%s

ACCOMMODATION DATA:
Total Hotels Available: %d
Sample Hotels:
%s

Please create a complete travel guide that includes:
1. Destination Overview
2. Top 5 Must-Do Activities (from attractions data)
3. Recommended Hotels (from booking data)
4. Suggested Itinerary (2-3 days)
5. Budget Estimates
6. Best Time to Visit
7. Travel Tips

Make it practical, engaging, and ready for travelers to use. Around 500-600 words.`,
		len(attractionLines), strings.Join(attractionLines, "\n"),
		totalHotels, strings.Join(hotelLines, "\n"))
}

// collectHotels gathers the per-hotel cards from every successfully
// scraped page, in page order.
func collectHotels(pages []*models.ScrapedPage) []models.HotelListing {
	var hotels []models.HotelListing
	for _, page := range pages {
		if page.Error != "" {
			continue
		}
		hotels = append(hotels, page.Hotels...)
	}
	return hotels
}

// truncateRunes shortens s to at most n runes. Cutting by bytes could
// split a multi-byte character and produce invalid UTF-8.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

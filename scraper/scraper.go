package scraper

import (
	"log"
	"time"

	"github.com/SwayamChandak/accuraTraveller/fetcher"
	"github.com/SwayamChandak/accuraTraveller/models"
)

// Scraper fetches travel pages and extracts whatever structured data the
// markup happens to carry. Every extractor is best effort: a page without
// reviews or ratings still yields a usable record.
type Scraper struct {
	fetcher fetcher.Fetcher
	parser  *PageParser
	delay   time.Duration
}

// NewScraper creates a Scraper using the given fetcher. delay is the pause
// between consecutive pages in ScrapePages.
func NewScraper(f fetcher.Fetcher, delay time.Duration) *Scraper {
	return &Scraper{
		fetcher: f,
		parser:  NewPageParser(),
		delay:   delay,
	}
}

// ScrapePage fetches a single URL and extracts its content. It always
// returns a record: when fetching or parsing fails, the record carries the
// error message in its Error field instead of being dropped, so batch runs
// keep their URL-to-record correspondence.
func (s *Scraper) ScrapePage(url string) *models.ScrapedPage {
	page := &models.ScrapedPage{
		URL:       url,
		ScrapedAt: time.Now().Format("2006-01-02 15:04:05"),
		Reviews:   []models.Review{},
	}

	html, err := s.fetcher.Fetch(url)
	if err != nil {
		log.Printf("Failed to fetch %s: %v\n", url, err)
		page.Error = err.Error()
		return page
	}

	if err := s.parser.Parse(html, url, page); err != nil {
		log.Printf("Failed to parse %s: %v\n", url, err)
		page.Error = err.Error()
		return page
	}

	return page
}

// ScrapePages fetches the URLs sequentially, pausing between them. One
// record is returned per URL, in order, failures included.
func (s *Scraper) ScrapePages(urls []string) []*models.ScrapedPage {
	pages := make([]*models.ScrapedPage, 0, len(urls))
	for i, url := range urls {
		log.Printf("Scraping %d/%d: %s\n", i+1, len(urls), url)
		pages = append(pages, s.ScrapePage(url))
		if i < len(urls)-1 && s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	return pages
}

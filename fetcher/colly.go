package fetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher fetches pages over plain HTTP with browser-like headers.
// Travel sites block obvious bots, so the headers mimic a desktop Chrome;
// heavily protected pages still need the headless RodFetcher.
type CollyFetcher struct {
	collector *colly.Collector
}

// NewCollyFetcher creates a CollyFetcher with the given delay applied
// between requests to the same domain.
func NewCollyFetcher(delay time.Duration) *CollyFetcher {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(10 * time.Second)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       delay,
	})

	return &CollyFetcher{collector: c}
}

// Fetch implements the Fetcher interface. One attempt, no retry.
func (cf *CollyFetcher) Fetch(url string) (string, error) {
	var body string
	var fetchErr error

	// Clone drops callbacks but shares the HTTP backend, so per-call
	// handlers don't accumulate while the domain delay still applies.
	c := cf.collector.Clone()

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		r.Headers.Set("Connection", "keep-alive")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
	})
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit %s: %w", url, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, fetchErr)
	}
	if body == "" {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return body, nil
}

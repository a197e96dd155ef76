package fetcher

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// RodFetcher fetches pages through a headless browser. Booking.com and
// TripAdvisor answer plain HTTP clients with 403s or JS-only shells; a real
// browser gets the rendered markup.
type RodFetcher struct {
	browser *rod.Browser
}

// NewRodFetcher launches a headless browser and connects to it. Callers
// must Close the fetcher to release the browser.
func NewRodFetcher() (*RodFetcher, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(false).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("mute-audio")

	// Prefer a system Chrome/Chromium over downloading one.
	systemPaths := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, path := range systemPaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	browserURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodFetcher{browser: browser}, nil
}

// Close shuts the browser down.
func (rf *RodFetcher) Close() error {
	if rf.browser != nil {
		return rf.browser.Close()
	}
	return nil
}

// Fetch implements the Fetcher interface: navigate, wait for the page to
// render, return the resulting markup.
func (rf *RodFetcher) Fetch(url string) (string, error) {
	var page *rod.Page
	var pageErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				pageErr = fmt.Errorf("panic while creating page: %v", r)
			}
		}()
		page = rf.browser.MustPage()
	}()
	if pageErr != nil {
		return "", pageErr
	}
	if page == nil {
		return "", fmt.Errorf("failed to create page")
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	page.WaitLoad()
	time.Sleep(2 * time.Second) // give JavaScript time to render

	if err := page.Timeout(10 * time.Second).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: page %s did not stabilize within timeout, continuing anyway: %v\n", url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML for %s: %w", url, err)
	}

	return html, nil
}

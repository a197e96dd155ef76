package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SwayamChandak/accuraTraveller/config"
	"github.com/SwayamChandak/accuraTraveller/fetcher"
	"github.com/SwayamChandak/accuraTraveller/filter"
	"github.com/SwayamChandak/accuraTraveller/models"
	"github.com/SwayamChandak/accuraTraveller/scraper"
	"github.com/SwayamChandak/accuraTraveller/sheets"

	"github.com/joho/godotenv"
)

func main() {
	urls := flag.String("url", "", "Page URL(s) to scrape, comma separated")
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	useBrowser := flag.Bool("browser", false, "Fetch through a headless browser instead of plain HTTP")
	output := flag.String("output", "scraped_data.json", "Output JSON file")
	llmText := flag.String("llm-text", "", "Also write flattened text for LLM input to this file")
	spreadsheetURL := flag.String("spreadsheet", "", "Google Sheets URL to export results to (optional)")
	credentialsPath := flag.String("credentials", "", "Path to Google service account credentials JSON file (or use GOOGLE_SHEETS_CREDENTIALS env var)")
	flag.Parse()

	if *urls == "" {
		log.Fatal("Usage: scrape -url <url>[,<url>...] [-browser] [-output file.json] [-llm-text file.txt] [-spreadsheet url]")
	}

	godotenv.Load()

	cfg := loadConfig(*configPath)

	urlList := strings.Split(*urls, ",")
	for i := range urlList {
		urlList[i] = strings.TrimSpace(urlList[i])
	}

	f, cleanup, err := buildFetcher(*useBrowser || cfg.Scraper.UseBrowser, cfg.Delay())
	if err != nil {
		log.Fatalf("Failed to set up fetcher: %v\n", err)
	}
	defer cleanup()

	s := scraper.NewScraper(f, cfg.Delay())
	pages := s.ScrapePages(urlList)

	reviewFilter := filter.NewFilter(cfg)
	for _, page := range pages {
		reviewFilter.FilterPage(page)
	}

	failed := 0
	for _, page := range pages {
		if page.Error != "" {
			failed++
		}
	}
	fmt.Printf("Scraped %d pages (%d failed)\n", len(pages), failed)

	if err := scraper.SaveJSON(pages, *output); err != nil {
		log.Fatalf("Failed to save results: %v\n", err)
	}

	if *llmText != "" {
		var blocks []string
		for _, page := range pages {
			if page.Error != "" {
				continue
			}
			blocks = append(blocks, scraper.FormatForLLM(page))
		}
		if err := os.WriteFile(*llmText, []byte(strings.Join(blocks, "\n\n---\n\n")), 0644); err != nil {
			log.Fatalf("Failed to write LLM text: %v\n", err)
		}
		log.Printf("Flattened text saved to %s\n", *llmText)
	}

	if *spreadsheetURL != "" {
		exportToSheets(*spreadsheetURL, *credentialsPath, pages)
	}
}

// buildFetcher picks the plain HTTP fetcher or the headless browser and
// returns a cleanup func for the latter.
func buildFetcher(useBrowser bool, delay time.Duration) (fetcher.Fetcher, func(), error) {
	if !useBrowser {
		return fetcher.NewCollyFetcher(delay), func() {}, nil
	}
	rf, err := fetcher.NewRodFetcher()
	if err != nil {
		return nil, nil, err
	}
	return rf, func() {
		if err := rf.Close(); err != nil {
			log.Printf("Warning: failed to close browser: %v\n", err)
		}
	}, nil
}

func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Using default configuration (%v)\n", err)
		return config.GetDefaultConfig()
	}
	return cfg
}

func exportToSheets(spreadsheetURL, credentialsPath string, pages []*models.ScrapedPage) {
	spreadsheetID := sheets.ExtractSpreadsheetID(spreadsheetURL)
	if spreadsheetID == "" {
		log.Printf("Warning: Could not extract spreadsheet ID from URL: %s\n", spreadsheetURL)
		return
	}

	writer, err := sheets.NewWriter(spreadsheetID, credentialsPath)
	if err != nil {
		log.Printf("Warning: Failed to initialize Google Sheets writer: %v\n", err)
		return
	}

	for _, page := range pages {
		name := page.Content.Title
		if name == "" {
			name = fmt.Sprintf("Page_%s", time.Now().Format("20060102_150405"))
		}
		sheetName, sheetID, err := writer.CreateSheetAndWritePage(name, page)
		if err != nil {
			log.Printf("Warning: Failed to export %s to sheets: %v\n", page.URL, err)
			continue
		}
		log.Printf("Exported %s to sheet '%s' (gid=%d)\n", page.URL, sheetName, sheetID)
	}
}

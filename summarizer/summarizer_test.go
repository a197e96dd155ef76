package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/SwayamChandak/accuraTraveller/models"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "llama3.2" {
			t.Errorf("model = %q, want llama3.2", req.Model)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		if req.Prompt != "Summarize this." {
			t.Errorf("prompt = %q", req.Prompt)
		}

		json.NewEncoder(w).Encode(map[string]string{"response": "A fine summary."})
	}))
	defer server.Close()

	c := NewClient(server.URL, "llama3.2")
	got, err := c.Generate(context.Background(), "Summarize this.")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "A fine summary." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "missing-model")
	if _, err := c.Generate(context.Background(), "hello"); err == nil {
		t.Error("Generate() should fail on a non-200 response")
	}
}

func TestGenerateUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "llama3.2")
	if _, err := c.Generate(context.Background(), "hello"); err == nil {
		t.Error("Generate() should fail when Ollama is unreachable")
	}
}

func attractionsPage() *models.ScrapedPage {
	page := &models.ScrapedPage{
		URL:       "https://example.com/things-to-do",
		ScrapedAt: "2026-01-15 10:30:00",
		Content: models.PageContent{
			Title: "25 Things to Do in Pune",
		},
	}
	for i := 1; i <= 20; i++ {
		page.Content.Headings = append(page.Content.Headings,
			models.Heading{Level: 2, Text: fmt.Sprintf("Attraction %d", i)})
		page.Content.Paragraphs = append(page.Content.Paragraphs,
			fmt.Sprintf("Description of attraction number %d with enough detail to matter.", i))
	}
	return page
}

func hotelPage(title string, rating float64) *models.ScrapedPage {
	return &models.ScrapedPage{
		URL:       "https://example.com/hotels",
		ScrapedAt: "2026-01-15 10:30:00",
		Content:   models.PageContent{Title: title},
		Ratings:   models.RatingsSummary{OverallRating: &rating},
		Location:  models.LocationInfo{Address: "City Center"},
	}
}

func TestAttractionsPrompt(t *testing.T) {
	prompt := AttractionsPrompt(attractionsPage())

	if !strings.Contains(prompt, "Title: 25 Things to Do in Pune") {
		t.Error("prompt missing page title")
	}
	if !strings.Contains(prompt, "- Attraction 1:") {
		t.Error("prompt missing first attraction")
	}
	if !strings.Contains(prompt, "- Attraction 15:") {
		t.Error("prompt should include the fifteenth attraction")
	}
	if strings.Contains(prompt, "- Attraction 16:") {
		t.Error("attractions beyond the cap should be dropped")
	}
	if !strings.Contains(prompt, "300-400 words") {
		t.Error("prompt missing length guidance")
	}
}

func TestAttractionsPromptExcerptAlignment(t *testing.T) {
	page := &models.ScrapedPage{
		Content: models.PageContent{
			Title: "Things to Do",
			Headings: []models.Heading{
				{Level: 1, Text: "Things to Do in Pune"},
				{Level: 2, Text: "Shaniwar Wada"},
				{Level: 4, Text: "Advertisement"},
				{Level: 2, Text: "Aga Khan Palace"},
			},
			Paragraphs: []string{
				"An eighteenth century fortification in the heart of the old city.",
				"A palace built in 1892, now a memorial and museum.",
			},
		},
	}

	prompt := AttractionsPrompt(page)

	// Skipped h1/h4 headings must not shift the excerpts off their
	// attractions.
	if !strings.Contains(prompt, "- Shaniwar Wada: An eighteenth century fortification") {
		t.Errorf("first excerpt misaligned:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Aga Khan Palace: A palace built in 1892") {
		t.Errorf("second excerpt misaligned:\n%s", prompt)
	}
}

func TestAttractionsPromptMultibyteExcerpt(t *testing.T) {
	page := &models.ScrapedPage{
		Content: models.PageContent{
			Headings:   []models.Heading{{Level: 2, Text: "Old Town"}},
			Paragraphs: []string{strings.Repeat("û", 250)},
		},
	}

	prompt := AttractionsPrompt(page)
	if !utf8.ValidString(prompt) {
		t.Fatal("prompt is not valid UTF-8")
	}
	if strings.Contains(prompt, strings.Repeat("û", 201)) {
		t.Error("excerpt not truncated at 200 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("û", 200)) {
		t.Error("excerpt should keep 200 characters, not 200 bytes")
	}
}

func TestHotelsPromptFromListings(t *testing.T) {
	pages := []*models.ScrapedPage{
		{
			URL:       "https://www.booking.com/searchresults.html?ss=Pune",
			ScrapedAt: "2026-01-15 10:30:00",
			Hotels: []models.HotelListing{
				{Name: "Grand Palace Hotel", Price: "₹ 7,500", Rating: "8.7", Location: "Koregaon Park"},
				{Name: "Budget Inn", Price: "₹ 1,200"},
			},
		},
		{URL: "https://www.booking.com/down", Error: "timeout"},
	}

	prompt := HotelsPrompt(pages)

	if !strings.Contains(prompt, "Total Hotels Found: 2") {
		t.Errorf("total should count hotel cards:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Grand Palace Hotel | Location: Koregaon Park | Price: ₹ 7,500 | Rating: 8.7") {
		t.Errorf("prompt missing full hotel line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Budget Inn | Location: N/A | Price: ₹ 1,200 | Rating: N/A") {
		t.Errorf("prompt missing partial hotel line:\n%s", prompt)
	}
}

func TestHotelsPrompt(t *testing.T) {
	var pages []*models.ScrapedPage
	for i := 1; i <= 12; i++ {
		pages = append(pages, hotelPage(fmt.Sprintf("Hotel %d", i), 4.0))
	}
	pages = append(pages, &models.ScrapedPage{URL: "https://example.com/down", Error: "timeout"})

	prompt := HotelsPrompt(pages)

	if !strings.Contains(prompt, "Total Hotels Found: 12") {
		t.Errorf("failed pages should not count as hotels:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Hotel 10 |") {
		t.Error("prompt should include the tenth hotel")
	}
	if strings.Contains(prompt, "- Hotel 11 |") {
		t.Error("hotels beyond the sample cap should be dropped")
	}
	if !strings.Contains(prompt, "Rating: 4") {
		t.Error("prompt missing hotel rating")
	}
}

func TestTravelGuidePrompt(t *testing.T) {
	hotels := []*models.ScrapedPage{
		hotelPage("Grand Palace Hotel", 4.5),
		{URL: "https://example.com/down", Error: "connection refused"},
	}
	prompt := TravelGuidePrompt(attractionsPage(), hotels)

	if !strings.Contains(prompt, "Total Hotels Available: 1") {
		t.Errorf("failed pages should not count as hotels:\n%s", prompt)
	}

	if !strings.Contains(prompt, "1. Attraction 1") {
		t.Error("prompt missing numbered attraction")
	}
	if strings.Contains(prompt, "11. Attraction 11") {
		t.Error("combined guide should cap attractions at ten")
	}
	if !strings.Contains(prompt, "1. Grand Palace Hotel - City Center - 4.5") {
		t.Errorf("prompt missing hotel line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "500-600 words") {
		t.Error("prompt missing length guidance")
	}
}

func TestTravelGuidePromptFromListings(t *testing.T) {
	hotels := []*models.ScrapedPage{
		{
			URL: "https://www.booking.com/searchresults.html?ss=Pune",
			Hotels: []models.HotelListing{
				{Name: "Grand Palace Hotel", Location: "Koregaon Park", Rating: "8.7"},
				{Name: "Budget Inn"},
			},
		},
	}

	prompt := TravelGuidePrompt(attractionsPage(), hotels)

	if !strings.Contains(prompt, "Total Hotels Available: 2") {
		t.Errorf("total should count hotel cards:\n%s", prompt)
	}
	if !strings.Contains(prompt, "1. Grand Palace Hotel - Koregaon Park - 8.7") {
		t.Errorf("prompt missing hotel card line:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2. Budget Inn - N/A - N/A") {
		t.Errorf("prompt missing partial hotel card line:\n%s", prompt)
	}
}

func TestLoadPageRoundTrip(t *testing.T) {
	page := hotelPage("Grand Palace Hotel", 4.5)
	path := filepath.Join(t.TempDir(), "page.json")

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadPage(path)
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}
	if got.Content.Title != "Grand Palace Hotel" {
		t.Errorf("title = %q", got.Content.Title)
	}
	if got.Ratings.OverallRating == nil || *got.Ratings.OverallRating != 4.5 {
		t.Errorf("rating = %v", got.Ratings.OverallRating)
	}
}

func TestLoadPageMissingFile(t *testing.T) {
	if _, err := LoadPage(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("LoadPage() should fail for a missing file")
	}
}

func TestLoadPageInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPage(path); err == nil {
		t.Error("LoadPage() should fail for invalid JSON")
	}
}

func TestSaveSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	if err := SaveSummary("A fine summary.", path); err != nil {
		t.Fatalf("SaveSummary() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "A fine summary." {
		t.Errorf("saved summary = %q", data)
	}
}

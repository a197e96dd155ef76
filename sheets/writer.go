package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/SwayamChandak/accuraTraveller/models"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer handles writing scraped pages to Google Sheets
type Writer struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewWriter creates a new Google Sheets writer
func NewWriter(spreadsheetID string, credentialsPath string) (*Writer, error) {
	ctx := context.Background()

	// Read credentials from file or environment variable
	var credsJSON []byte
	var err error

	if credentialsPath != "" {
		credsJSON, err = os.ReadFile(credentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	} else {
		credsEnv := os.Getenv("GOOGLE_SHEETS_CREDENTIALS")
		if credsEnv == "" {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty or not set")
		}
		// Trim whitespace and newlines that might be in the environment variable
		credsEnv = strings.TrimSpace(credsEnv)
		if len(credsEnv) == 0 {
			return nil, fmt.Errorf("credentials not found: GOOGLE_SHEETS_CREDENTIALS environment variable is empty after trimming")
		}
		log.Printf("Reading credentials from GOOGLE_SHEETS_CREDENTIALS environment variable (%d bytes)\n", len(credsEnv))
		credsJSON = []byte(credsEnv)
	}

	// Parse and validate JSON
	var creds map[string]interface{}
	if err := json.Unmarshal(credsJSON, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON (check if JSON is properly formatted): %w", err)
	}

	// Validate that it's a service account credentials file
	if creds["type"] != "service_account" {
		return nil, fmt.Errorf("credentials must be a service account JSON file (type: service_account), got type: %v", creds["type"])
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

// CreateSheetAndWritePage creates a new sheet at the beginning of the
// spreadsheet and writes a scraped page to it: metadata rows first, then one
// row per review. Returns the sheet name and sheet ID (gid) that was created.
func (w *Writer) CreateSheetAndWritePage(sheetName string, page *models.ScrapedPage) (string, int64, error) {
	// Sanitize sheet name (Google Sheets has restrictions)
	sheetName = sanitizeSheetName(sheetName)
	if len(sheetName) > 100 {
		sheetName = sheetName[:100]
	}

	addSheetRequest := &sheets.AddSheetRequest{
		Properties: &sheets.SheetProperties{
			Title: sheetName,
			Index: 0,
		},
	}

	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: addSheetRequest,
			},
		},
	}

	batchUpdateResp, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, batchUpdateRequest).Do()
	if err != nil {
		return "", 0, fmt.Errorf("failed to create sheet: %w", err)
	}

	var sheetID int64
	if len(batchUpdateResp.Replies) > 0 && batchUpdateResp.Replies[0].AddSheet != nil {
		sheetID = batchUpdateResp.Replies[0].AddSheet.Properties.SheetId
	}

	log.Printf("Created sheet '%s' with ID %d\n", sheetName, sheetID)

	values := pageRows(page)

	range_ := fmt.Sprintf("%s!A1", sheetName)
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err = w.service.Spreadsheets.Values.Update(w.spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Do()

	if err != nil {
		return "", 0, fmt.Errorf("failed to write to sheet: %w", err)
	}

	log.Printf("Successfully wrote page '%s' with %d reviews to sheet '%s'\n", page.URL, len(page.Reviews), sheetName)
	return sheetName, sheetID, nil
}

// pageRows flattens a scraped page into spreadsheet rows: metadata first,
// then a header and one row per review.
func pageRows(page *models.ScrapedPage) [][]interface{} {
	var values [][]interface{}

	values = append(values, []interface{}{"URL", page.URL})
	values = append(values, []interface{}{"Scraped At", page.ScrapedAt})
	if page.Content.Title != "" {
		values = append(values, []interface{}{"Title", page.Content.Title})
	}
	if page.Error != "" {
		values = append(values, []interface{}{"Error", page.Error})
		return values
	}
	if page.Ratings.OverallRating != nil {
		values = append(values, []interface{}{"Overall Rating", *page.Ratings.OverallRating})
	}
	if page.Ratings.TotalReviews != nil {
		values = append(values, []interface{}{"Total Reviews", *page.Ratings.TotalReviews})
	}
	if page.Location.Address != "" {
		values = append(values, []interface{}{"Address", page.Location.Address})
	}
	if len(page.Amenities) > 0 {
		values = append(values, []interface{}{"Amenities", strings.Join(page.Amenities, ", ")})
	}

	values = append(values, []interface{}{})
	values = append(values, []interface{}{"Rating", "Title", "Text", "Date", "Author"})

	for _, review := range page.Reviews {
		rating := interface{}("")
		if review.Rating != nil {
			rating = *review.Rating
		}
		values = append(values, []interface{}{
			rating,
			review.Title,
			review.Text,
			review.Date,
			review.Author,
		})
	}

	return values
}

// sanitizeSheetName removes invalid characters from sheet name
func sanitizeSheetName(name string) string {
	// Google Sheets sheet names cannot contain: / \ ? * [ ]
	invalidChars := []string{"/", "\\", "?", "*", "[", "]"}
	result := name
	for _, char := range invalidChars {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	if result == "" {
		result = "Sheet1"
	}
	return result
}

// ExtractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func ExtractSpreadsheetID(url string) string {
	// Handle various URL formats:
	// https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit
	// https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit?usp=sharing
	// etc.

	parts := strings.Split(url, "/d/")
	if len(parts) < 2 {
		return ""
	}

	idPart := parts[1]
	if idx := strings.Index(idPart, "/"); idx != -1 {
		idPart = idPart[:idx]
	}
	if idx := strings.Index(idPart, "?"); idx != -1 {
		idPart = idPart[:idx]
	}

	return strings.TrimSpace(idPart)
}

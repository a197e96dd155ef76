package models

// Heading is a single h1-h6 heading with its level.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// ListBlock is one ul/ol list found on the page.
type ListBlock struct {
	Type  string   `json:"type"` // "ul" or "ol"
	Items []string `json:"items"`
}

// PageContent is the structured text content of a page.
type PageContent struct {
	Title      string            `json:"title"`
	Headings   []Heading         `json:"headings"`
	Paragraphs []string          `json:"paragraphs"`
	Lists      []ListBlock       `json:"lists"`
	Metadata   map[string]string `json:"metadata"`
}

// Review is a single user review. Every field is best-effort: whatever the
// markup didn't expose stays at its zero value.
type Review struct {
	Rating *float64 `json:"rating,omitempty"`
	Title  string   `json:"title,omitempty"`
	Text   string   `json:"text,omitempty"`
	Date   string   `json:"date,omitempty"`
	Author string   `json:"author,omitempty"`
}

// RatingsSummary holds the page-level rating aggregate. Pointers stay nil
// when the page doesn't expose a value, which serializes as JSON null the
// same way the old scripts emitted None.
type RatingsSummary struct {
	OverallRating *float64 `json:"overall_rating"`
	TotalReviews  *int     `json:"total_reviews"`
}

// LocationInfo is the address/coordinate information found on a page,
// assembled from address-like elements and schema.org ld+json blocks.
type LocationInfo struct {
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city,omitempty"`
	Country     string       `json:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// LinkSet groups the links found on a page. Internal/external is decided
// against the host of the scraped URL.
type LinkSet struct {
	Internal []string `json:"internal"`
	External []string `json:"external"`
	Images   []string `json:"images"`
}

// HotelListing is one hotel card from a booking search-results page. All
// fields are best-effort text as the page showed them; Price in particular
// keeps its currency formatting.
type HotelListing struct {
	Name        string   `json:"name"`
	Price       string   `json:"price,omitempty"`
	Rating      string   `json:"rating,omitempty"`
	ReviewCount string   `json:"review_count,omitempty"`
	Location    string   `json:"location,omitempty"`
	Distance    string   `json:"distance,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// ScrapedPage is the aggregate record for one fetch of one URL. It is built
// once and never merged or updated. When the fetch itself fails, Error is
// set and every other field is empty; callers must check Error before using
// the rest.
type ScrapedPage struct {
	URL       string         `json:"url"`
	ScrapedAt string         `json:"scraped_at"`
	Content   PageContent    `json:"content"`
	Reviews   []Review       `json:"reviews"`
	Ratings   RatingsSummary `json:"ratings"`
	Amenities []string       `json:"amenities"`
	Location  LocationInfo   `json:"location"`
	Links     LinkSet        `json:"links"`
	Hotels    []HotelListing `json:"hotels,omitempty"`
	Error     string         `json:"error,omitempty"`
}

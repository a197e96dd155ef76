package scraper

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/SwayamChandak/accuraTraveller/models"

	"github.com/PuerkitoBio/goquery"
)

// PageParser extracts structured travel data from page markup. Travel sites
// change their class names constantly, so every lookup matches loose class
// patterns and tolerates absence.
type PageParser struct {
	reviewClassRe   *regexp.Regexp
	ratingClassRe   *regexp.Regexp
	titleClassRe    *regexp.Regexp
	textClassRe     *regexp.Regexp
	dateClassRe     *regexp.Regexp
	authorClassRe   *regexp.Regexp
	overallClassRe  *regexp.Regexp
	countClassRe    *regexp.Regexp
	amenityClassRe  *regexp.Regexp
	addressClassRe  *regexp.Regexp
	ratingValueRe   *regexp.Regexp
	anyNumberRe     *regexp.Regexp
	wholeNumberRe   *regexp.Regexp

	priceClassRe       *regexp.Regexp
	reviewScoreClassRe *regexp.Regexp
	distanceClassRe    *regexp.Regexp
}

// NewPageParser creates a new PageParser instance.
func NewPageParser() *PageParser {
	return &PageParser{
		reviewClassRe:  regexp.MustCompile(`(?i)review`),
		ratingClassRe:  regexp.MustCompile(`(?i)rating|bubble`),
		titleClassRe:   regexp.MustCompile(`(?i)title`),
		textClassRe:    regexp.MustCompile(`(?i)text|partial_entry`),
		dateClassRe:    regexp.MustCompile(`(?i)date|ratingDate`),
		authorClassRe:  regexp.MustCompile(`(?i)username|member|author`),
		overallClassRe: regexp.MustCompile(`(?i)overall.*rating|rating.*overall`),
		countClassRe:   regexp.MustCompile(`(?i)review.*count|count.*review|reviewCount`),
		amenityClassRe: regexp.MustCompile(`(?i)amenity|amenities|feature`),
		addressClassRe: regexp.MustCompile(`(?i)address|location|street`),
		ratingValueRe:  regexp.MustCompile(`(\d+\.?\d*)\s*(?:of|out of)?\s*\d+`),
		anyNumberRe:    regexp.MustCompile(`(\d+\.?\d*)`),
		wholeNumberRe:  regexp.MustCompile(`(\d+)`),

		priceClassRe:       regexp.MustCompile(`(?i)price`),
		reviewScoreClassRe: regexp.MustCompile(`(?i)review-score`),
		distanceClassRe:    regexp.MustCompile(`(?i)distance`),
	}
}

// Parse fills page from the given markup. Extractors run independently:
// missing sections leave their fields zero rather than failing the parse.
func (p *PageParser) Parse(htmlContent, pageURL string, page *models.ScrapedPage) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	page.Content = p.extractContent(doc)
	page.Reviews = p.extractReviews(doc)
	page.Ratings = p.extractRatings(doc)
	page.Amenities = p.extractAmenities(doc)
	page.Location = p.extractLocation(doc)
	page.Links = p.extractLinks(doc, pageURL)
	page.Hotels = p.extractHotels(doc, pageURL)

	return nil
}

// extractContent pulls the title, headings, paragraphs, lists and meta tags.
func (p *PageParser) extractContent(doc *goquery.Document) models.PageContent {
	content := models.PageContent{
		Headings:   []models.Heading{},
		Paragraphs: []string{},
		Lists:      []models.ListBlock{},
		Metadata:   map[string]string{},
	}

	content.Title = strings.TrimSpace(doc.Find("title").First().Text())

	for level := 1; level <= 6; level++ {
		lvl := level
		doc.Find(fmt.Sprintf("h%d", level)).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" {
				content.Headings = append(content.Headings, models.Heading{Level: lvl, Text: text})
			}
		})
	}

	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			content.Paragraphs = append(content.Paragraphs, text)
		}
	})

	doc.Find("ul, ol").Each(func(i int, s *goquery.Selection) {
		var items []string
		s.Find("li").Each(func(j int, li *goquery.Selection) {
			items = append(items, strings.TrimSpace(li.Text()))
		})
		if len(items) > 0 {
			content.Lists = append(content.Lists, models.ListBlock{
				Type:  goquery.NodeName(s),
				Items: items,
			})
		}
	})

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			name, _ = s.Attr("property")
		}
		metaContent, _ := s.Attr("content")
		if name != "" && metaContent != "" {
			content.Metadata[name] = metaContent
		}
	})

	return content
}

// extractReviews finds review containers by class pattern and pulls out
// whatever fields each one carries. A review with no recognizable fields is
// skipped entirely.
func (p *PageParser) extractReviews(doc *goquery.Document) []models.Review {
	reviews := []models.Review{}

	doc.Find("div, article").Each(func(i int, container *goquery.Selection) {
		if !p.classMatches(container, p.reviewClassRe) {
			return
		}

		var review models.Review
		found := false

		container.Find("span, div").EachWithBreak(func(j int, s *goquery.Selection) bool {
			if !p.classMatches(s, p.ratingClassRe) {
				return true
			}
			class, _ := s.Attr("class")
			aria, _ := s.Attr("aria-label")
			if rating := p.parseRating(class + " " + aria); rating != nil {
				review.Rating = rating
				found = true
			}
			return false
		})

		if title := p.firstTextByClass(container, "span, div, a", p.titleClassRe); title != "" {
			review.Title = title
			found = true
		}
		if text := p.firstTextByClass(container, "p, span, div, q", p.textClassRe); text != "" {
			review.Text = text
			found = true
		}
		if date := p.firstTextByClass(container, "span, div", p.dateClassRe); date != "" {
			review.Date = date
			found = true
		}
		if author := p.firstTextByClass(container, "span, div, a", p.authorClassRe); author != "" {
			review.Author = author
			found = true
		}

		if found {
			reviews = append(reviews, review)
		}
	})

	return reviews
}

// extractRatings pulls the page-level rating summary.
func (p *PageParser) extractRatings(doc *goquery.Document) models.RatingsSummary {
	var summary models.RatingsSummary

	doc.Find("span, div").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !p.classMatches(s, p.overallClassRe) {
			return true
		}
		summary.OverallRating = p.parseRating(strings.TrimSpace(s.Text()))
		return false
	})

	doc.Find("span, div, a").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !p.classMatches(s, p.countClassRe) {
			return true
		}
		summary.TotalReviews = p.parseCount(strings.TrimSpace(s.Text()))
		return false
	})

	return summary
}

// extractAmenities collects short texts from amenity-classed elements,
// deduplicated. Anything 100 characters or longer is assumed to be prose
// that happened to share a class name.
func (p *PageParser) extractAmenities(doc *goquery.Document) []string {
	seen := map[string]bool{}
	amenities := []string{}

	doc.Find("div, span, li").Each(func(i int, s *goquery.Selection) {
		if !p.classMatches(s, p.amenityClassRe) {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || len(text) >= 100 || seen[text] {
			return
		}
		seen[text] = true
		amenities = append(amenities, text)
	})

	return amenities
}

// extractLocation reads address-classed elements, then lets schema.org
// structured data override them when present.
func (p *PageParser) extractLocation(doc *goquery.Document) models.LocationInfo {
	var location models.LocationInfo

	doc.Find("span, div, address").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if goquery.NodeName(s) != "address" && !p.classMatches(s, p.addressClassRe) {
			return true
		}
		location.Address = strings.TrimSpace(s.Text())
		return false
	})

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		switch addr := data["address"].(type) {
		case string:
			location.Address = addr
		case map[string]interface{}:
			if street, ok := addr["streetAddress"].(string); ok {
				location.Address = street
			}
			if city, ok := addr["addressLocality"].(string); ok {
				location.City = city
			}
			if country, ok := addr["addressCountry"].(string); ok {
				location.Country = country
			}
		}
		if geo, ok := data["geo"].(map[string]interface{}); ok {
			lat, latOK := toFloat(geo["latitude"])
			lon, lonOK := toFloat(geo["longitude"])
			if latOK && lonOK {
				location.Coordinates = &models.Coordinates{Lat: lat, Lon: lon}
			}
		}
	})

	return location
}

// extractLinks resolves every anchor and image against the page URL and
// splits anchors into internal (same host or relative) and external.
func (p *PageParser) extractLinks(doc *goquery.Document, pageURL string) models.LinkSet {
	links := models.LinkSet{
		Internal: []string{},
		External: []string{},
		Images:   []string{},
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	seenInternal := map[string]bool{}
	seenExternal := map[string]bool{}
	seenImages := map[string]bool{}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref)
		abs := absolute.String()
		if absolute.Host == "" || absolute.Host == base.Host {
			if !seenInternal[abs] {
				seenInternal[abs] = true
				links.Internal = append(links.Internal, abs)
			}
		} else if !seenExternal[abs] {
			seenExternal[abs] = true
			links.External = append(links.External, abs)
		}
	})

	doc.Find("img[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if !seenImages[abs] {
			seenImages[abs] = true
			links.Images = append(links.Images, abs)
		}
	})

	return links
}

// classMatches reports whether the selection's class attribute matches re.
func (p *PageParser) classMatches(s *goquery.Selection, re *regexp.Regexp) bool {
	class, ok := s.Attr("class")
	return ok && re.MatchString(class)
}

// firstTextByClass returns the text of the first child matching selector
// whose class attribute matches re.
func (p *PageParser) firstTextByClass(container *goquery.Selection, selector string, re *regexp.Regexp) string {
	var text string
	container.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if !p.classMatches(s, re) {
			return true
		}
		text = strings.TrimSpace(s.Text())
		return false
	})
	return text
}

// parseRating extracts a numeric rating from text like "4.5 of 5 bubbles" or
// "Rated 4.0". Returns nil when no number is present.
func (p *PageParser) parseRating(text string) *float64 {
	match := p.ratingValueRe.FindStringSubmatch(text)
	if match == nil {
		match = p.anyNumberRe.FindStringSubmatch(text)
	}
	if match == nil {
		return nil
	}
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	return &value
}

// parseCount extracts an integer from text like "1,234 reviews".
func (p *PageParser) parseCount(text string) *int {
	text = strings.ReplaceAll(text, ",", "")
	match := p.wholeNumberRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &value
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/SwayamChandak/accuraTraveller/models"

	"github.com/PuerkitoBio/goquery"
)

// extractHotels pulls per-hotel listings from booking search-results pages.
// Cards are located by data-testid first, then by class pattern, since
// booking sites rotate their markup; each field inside a card falls back
// the same way. A card without at least a name is dropped.
func (p *PageParser) extractHotels(doc *goquery.Document, pageURL string) []models.HotelListing {
	cards := doc.Find(`div[data-testid="property-card"]`)
	if cards.Length() == 0 {
		cards = doc.Find("div").FilterFunction(func(i int, s *goquery.Selection) bool {
			class, ok := s.Attr("class")
			return ok && strings.Contains(strings.ToLower(class), "property-card")
		})
	}
	if cards.Length() == 0 {
		return nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	var hotels []models.HotelListing
	cards.Each(func(i int, card *goquery.Selection) {
		hotel := models.HotelListing{
			Name:        p.cardText(card, `div[data-testid="title"]`, "h3", "div", p.titleClassRe),
			Price:       p.cardText(card, `span[data-testid="price-and-discounted-price"]`, "", "div, span", p.priceClassRe),
			Rating:      p.cardText(card, `div[data-testid="review-score"]`, "", "div", p.reviewScoreClassRe),
			ReviewCount: p.cardText(card, `div[data-testid="review-score-text"]`, "", "", nil),
			Location:    p.cardText(card, `span[data-testid="address"]`, "", "span", p.addressClassRe),
			Distance:    p.cardText(card, `span[data-testid="distance"]`, "", "span", p.distanceClassRe),
		}
		if hotel.Name == "" {
			return
		}

		card.Find("div").EachWithBreak(func(j int, s *goquery.Selection) bool {
			class, ok := s.Attr("class")
			if !ok || !strings.Contains(strings.ToLower(class), "facility") {
				return true
			}
			s.Find("span, div").Each(func(k int, item *goquery.Selection) {
				if text := strings.TrimSpace(item.Text()); text != "" {
					hotel.Amenities = append(hotel.Amenities, text)
				}
			})
			return false
		})

		if img := card.Find("img").First(); img.Length() > 0 {
			src, ok := img.Attr("src")
			if !ok || src == "" {
				src, _ = img.Attr("data-src")
			}
			hotel.ImageURL = src
		}

		if link := card.Find("a[href]").First(); link.Length() > 0 {
			href, _ := link.Attr("href")
			if ref, err := url.Parse(href); err == nil {
				hotel.Link = base.ResolveReference(ref).String()
			}
		}

		hotels = append(hotels, hotel)
	})

	return hotels
}

// cardText tries an exact selector, then a bare tag, then tag(s) filtered
// by class pattern, returning the first non-empty trimmed text.
func (p *PageParser) cardText(card *goquery.Selection, exact, tag, classTags string, classRe *regexp.Regexp) string {
	if text := strings.TrimSpace(card.Find(exact).First().Text()); text != "" {
		return text
	}
	if tag != "" {
		if text := strings.TrimSpace(card.Find(tag).First().Text()); text != "" {
			return text
		}
	}
	if classTags != "" && classRe != nil {
		var text string
		card.Find(classTags).EachWithBreak(func(i int, s *goquery.Selection) bool {
			class, ok := s.Attr("class")
			if !ok || !classRe.MatchString(class) {
				return true
			}
			text = strings.TrimSpace(s.Text())
			return false
		})
		if text != "" {
			return text
		}
	}
	return ""
}

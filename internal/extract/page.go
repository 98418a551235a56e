package extract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// GenericPage extracts the generic record from raw markup. The source URL is
// used for relative URL resolution, link partitioning, and path-based page
// classification.
func GenericPage(html, sourceURL string, statusCode int, now time.Time) (*PageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	// Everything that needs the raw tree is harvested before the chrome is
	// stripped; JSON-LD lives in a script tag and would not survive it.
	jsonLD, ld := firstJSONLD(doc)
	price, currency := resolvePrice(doc, ld)
	images := harvestImages(doc, base)
	internalLinks, externalCount := partitionLinks(doc, base)

	rec := &PageRecord{
		URL:               sourceURL,
		StatusCode:        statusCode,
		Title:             elementText(doc, "title"),
		H1:                elementText(doc, "h1"),
		MetaDescription:   metaContent(doc, "description"),
		MetaKeywords:      metaContent(doc, "keywords"),
		Canonical:         doc.Find(`link[rel="canonical"]`).First().AttrOr("href", ""),
		OGImage:           doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""),
		Images:            images,
		InternalLinks:     internalLinks,
		InternalLinkCount: len(internalLinks),
		ExternalLinkCount: externalCount,
		JSONLD:            jsonLD,
		Price:             price,
		Currency:          currency,
		PageType:          classifyPage(base, ld),
		CrawledAt:         now,
	}

	stripChrome(doc)
	text := selectContent(doc)
	rec.WordCount = wordCount(text)
	rec.Content = truncateChars(text, maxContentChars)
	return rec, nil
}

func elementText(doc *goquery.Document, selector string) string {
	return collapseWhitespace(doc.Find(selector).First().Text())
}

func metaContent(doc *goquery.Document, name string) string {
	return strings.TrimSpace(doc.Find(`meta[name="`+name+`"]`).First().AttrOr("content", ""))
}

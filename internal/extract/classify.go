package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// URL path shapes checked before the JSON-LD fallback, in priority order.
var (
	articlePathPattern  = regexp.MustCompile(`^/a/\d+(/.*)?$`)
	categoryPathPattern = regexp.MustCompile(`^/c/\d+(/.*)?$`)
	productPathPattern  = regexp.MustCompile(`^/p/\d+(/.*)?$`)
)

// classifyPage resolves the page type. URL path patterns win over the
// JSON-LD @type; pages matching neither default to the generic "page"
// classification.
func classifyPage(pageURL *url.URL, ld map[string]any) PageType {
	if pageURL != nil {
		path := pageURL.Path
		switch {
		case articlePathPattern.MatchString(path):
			return PageTypeArticle
		case categoryPathPattern.MatchString(path):
			return PageTypeCategory
		case productPathPattern.MatchString(path):
			return PageTypeProduct
		case strings.Contains(strings.ToLower(path), "gallery"),
			strings.Contains(strings.ToLower(path), "galerie"):
			return PageTypeGallery
		}
	}

	switch ldType(ld) {
	case "Product":
		return PageTypeProduct
	case "Article", "NewsArticle", "BlogPosting":
		return PageTypeArticle
	}
	return PageTypePage
}

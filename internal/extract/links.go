package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// harvestImages collects all image sources resolved against the page URL.
// Malformed URLs are silently skipped.
func harvestImages(doc *goquery.Document, base *url.URL) []string {
	out := make([]string, 0)
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			return
		}
		if resolved := resolveRef(base, src); resolved != "" {
			out = append(out, resolved)
		}
	})
	return out
}

// partitionLinks splits anchors into internal links (returned in full) and a
// count of external ones. Path-relative links count as internal without a
// hostname check; fragment, mailto and tel links are excluded from both
// sides. Malformed hrefs are silently skipped.
func partitionLinks(doc *goquery.Document, base *url.URL) (internal []string, externalCount int) {
	internal = make([]string, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" ||
			strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "tel:") {
			return
		}

		if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
			if resolved := resolveRef(base, href); resolved != "" {
				internal = append(internal, resolved)
			} else {
				internal = append(internal, href)
			}
			return
		}

		parsed, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := parsed
		if base != nil {
			resolved = base.ResolveReference(parsed)
		}
		if base != nil && strings.EqualFold(resolved.Hostname(), base.Hostname()) {
			internal = append(internal, resolved.String())
			return
		}
		externalCount++
	})
	return internal, externalCount
}

// resolveRef resolves a possibly relative reference against base, returning
// "" for unparseable input.
func resolveRef(base *url.URL, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

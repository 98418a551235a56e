package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// articleBodySelectors is the priority order for locating the article body.
var articleBodySelectors = []string{
	"article",
	".article-content",
	".article-body",
	".post-content",
}

// embedSourceAttrs is the resolution order for an iframe's effective source.
// Consent/privacy layers blank the standard src attribute and park the real
// URL in a data attribute, so that one is checked first.
var embedSourceAttrs = []string{"data-cookieblock-src", "src", "data-src"}

var (
	styleWidthPattern  = regexp.MustCompile(`(?:^|[;\s])width\s*:\s*([0-9.]+(?:px|%|em|rem|vw|vh)?)`)
	styleHeightPattern = regexp.MustCompile(`(?:^|[;\s])height\s*:\s*([0-9.]+(?:px|%|em|rem|vw|vh)?)`)
	bareNumberPattern  = regexp.MustCompile(`^[0-9.]+$`)
)

// ArticlePage extracts the article record from raw markup.
func ArticlePage(html, sourceURL string, now time.Time) (*ArticleRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	canonical := doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")
	if canonical == "" {
		canonical = sourceURL
	}
	title := elementText(doc, "h1")
	if title == "" {
		title = elementText(doc, "title")
	}

	body := articleBody(doc)
	contentHTML, err := body.Html()
	if err != nil {
		contentHTML = ""
	}
	embeds := parseEmbeds(body)

	body.Find("script, style, noscript, iframe").Remove()
	contentText := collapseWhitespace(body.Text())

	return &ArticleRecord{
		URL:         canonical,
		Title:       title,
		ContentHTML: strings.TrimSpace(contentHTML),
		ContentText: contentText,
		Embeds:      embeds,
		CrawledAt:   now,
	}, nil
}

func articleBody(doc *goquery.Document) *goquery.Selection {
	for _, selector := range articleBodySelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Find("body")
}

func parseEmbeds(body *goquery.Selection) []Embed {
	embeds := make([]Embed, 0)
	body.Find("iframe").Each(func(_ int, frame *goquery.Selection) {
		src := ""
		for _, attr := range embedSourceAttrs {
			if v := strings.TrimSpace(frame.AttrOr(attr, "")); v != "" {
				src = v
				break
			}
		}
		embeds = append(embeds, Embed{
			Type:   classifyEmbed(src),
			Source: src,
			Width:  embedDimension(frame, "width", styleWidthPattern),
			Height: embedDimension(frame, "height", styleHeightPattern),
		})
	})
	return embeds
}

func classifyEmbed(src string) EmbedType {
	if src == "" {
		return EmbedUnknown
	}
	lower := strings.ToLower(src)
	if strings.Contains(lower, "youtube") || strings.Contains(lower, "youtu.be") {
		return EmbedYouTube
	}
	return EmbedIframe
}

// embedDimension reads a dimension from inline style first, then from the
// element attribute. Bare numeric values are normalized to a pixel unit.
func embedDimension(frame *goquery.Selection, attr string, stylePattern *regexp.Regexp) string {
	style := frame.AttrOr("style", "")
	if m := stylePattern.FindStringSubmatch(style); m != nil {
		return ensurePixelUnit(m[1])
	}
	if v := strings.TrimSpace(frame.AttrOr(attr, "")); v != "" {
		return ensurePixelUnit(v)
	}
	return ""
}

func ensurePixelUnit(v string) string {
	if bareNumberPattern.MatchString(v) {
		return v + "px"
	}
	return v
}

package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxContentChars bounds the content text kept on a generic page record. The
// word count is computed from the untruncated text.
const maxContentChars = 2000

// strippedSelectors name the subtrees removed before content selection.
const strippedSelectors = "script, style, noscript, iframe, svg, nav, header, footer"

// contentSelectors is the priority order for the content container cascade.
// The first selector with non-empty text wins; the full body is the final
// fallback.
var contentSelectors = []string{
	"main",
	"article",
	".content",
	".main-content",
	"#content",
	".post-content",
	".entry-content",
}

// stripChrome removes script/style/noscript/iframe/svg/nav/header/footer
// subtrees in place.
func stripChrome(doc *goquery.Document) {
	doc.Find(strippedSelectors).Remove()
}

// selectContent returns the collapsed text of the first matching content
// container, falling back to the whole body.
func selectContent(doc *goquery.Document) string {
	for _, sel := range contentSelectors {
		if text := collapseWhitespace(doc.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return collapseWhitespace(doc.Find("body").Text())
}

// collapseWhitespace folds all whitespace runs into single spaces and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateChars hard-truncates s to at most n characters.
func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const genericPageHTML = `<!DOCTYPE html>
<html>
<head>
	<title>Garden Shed 3x2</title>
	<meta name="description" content="A sturdy garden shed.">
	<meta name="keywords" content="shed, garden">
	<link rel="canonical" href="https://shop.example.com/p/55/garden-shed">
	<meta property="og:image" content="https://cdn.example.com/shed-og.jpg">
	<script type="application/ld+json">{"@type":"Product","offers":{"price":"770","priceCurrency":"EUR"}}</script>
</head>
<body>
	<nav><a href="/c/1">Category nav</a> boilerplate nav text</nav>
	<header>site header</header>
	<main>
		<h1>Garden Shed 3x2</h1>
		<p>Hello world</p>
		<img src="/img/shed.jpg">
		<a href="/p/56/other-shed">Other shed</a>
		<a href="https://shop.example.com/c/2">Sheds</a>
		<a href="https://elsewhere.example.org/review">Review</a>
		<a href="mailto:info@example.com">Mail</a>
		<a href="#top">Top</a>
	</main>
	<footer>footer text</footer>
	<script>console.log("noise")</script>
</body>
</html>`

func TestGenericPage(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rec, err := GenericPage(genericPageHTML, "https://shop.example.com/p/55/garden-shed", 200, now)
	require.NoError(t, err)

	require.Equal(t, "https://shop.example.com/p/55/garden-shed", rec.URL)
	require.Equal(t, 200, rec.StatusCode)
	require.Equal(t, "Garden Shed 3x2", rec.Title)
	require.Equal(t, "Garden Shed 3x2", rec.H1)
	require.Equal(t, "A sturdy garden shed.", rec.MetaDescription)
	require.Equal(t, "shed, garden", rec.MetaKeywords)
	require.Equal(t, "https://shop.example.com/p/55/garden-shed", rec.Canonical)
	require.Equal(t, "https://cdn.example.com/shed-og.jpg", rec.OGImage)
	require.Equal(t, PageTypeProduct, rec.PageType)
	require.Equal(t, now, rec.CrawledAt)

	require.Equal(t, "770", rec.Price)
	require.Equal(t, "EUR", rec.Currency)
	require.Contains(t, rec.JSONLD, `"@type":"Product"`)

	require.Equal(t, []string{"https://shop.example.com/img/shed.jpg"}, rec.Images)

	// mailto and fragment links count for neither side.
	require.Equal(t, 3, rec.InternalLinkCount)
	require.Equal(t, 1, rec.ExternalLinkCount)
	require.Contains(t, rec.InternalLinks, "https://shop.example.com/p/56/other-shed")
	require.Contains(t, rec.InternalLinks, "https://shop.example.com/c/2")

	require.Contains(t, rec.Content, "Hello world")
	require.NotContains(t, rec.Content, "boilerplate nav text")
	require.NotContains(t, rec.Content, "footer text")
	require.NotContains(t, rec.Content, "console.log")
}

func TestGenericPageContentTruncation(t *testing.T) {
	t.Parallel()

	words := make([]string, 600)
	for i := range words {
		words[i] = "word"
	}
	html := "<html><body><main><p>" + strings.Join(words, " ") + "</p></main></body></html>"

	rec, err := GenericPage(html, "https://example.com/long", 200, time.Now().UTC())
	require.NoError(t, err)

	require.Len(t, rec.Content, maxContentChars)
	require.Equal(t, 600, rec.WordCount)
}

func TestGenericPageContentFallsBackToBody(t *testing.T) {
	t.Parallel()

	html := `<html><body><div><p>plain body text only</p></div></body></html>`
	rec, err := GenericPage(html, "https://example.com/plain", 200, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, "plain body text only", rec.Content)
	require.Equal(t, PageTypePage, rec.PageType)
}

func TestGenericPageMalformedJSONLDIgnored(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<script type="application/ld+json">{not valid json</script>
	</head><body><p>hi</p></body></html>`
	rec, err := GenericPage(html, "https://example.com/x", 200, time.Now().UTC())
	require.NoError(t, err)
	require.Empty(t, rec.JSONLD)
	require.Equal(t, PageTypePage, rec.PageType)
}

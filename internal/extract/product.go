package extract

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Product page selectors, broad enough to survive markup drift on one site.
const (
	shortDescSelectors    = ".short-description, .perex"
	longDescSelectors     = ".description, #description, .product-description"
	breadcrumbSelectors   = ".breadcrumb a, .breadcrumbs a"
	parameterRowSelectors = "table.parameters tr, .parameters tr"
	variantHeadSelectors  = "table.variants thead th, .variants thead th"
	variantRowSelectors   = "table.variants tbody tr, .variants tbody tr"
	availabilitySelectors = ".availability, .stock"
	badgeSelectors        = ".badge, .product-flag, .flag"
	galleryImageSelectors = ".product-gallery img[src], .gallery img[src], .product-detail img[src]"
)

// stockOKColor is the inline color marking an in-stock availability cell.
// The status text varies too much to match on; the color does not.
const stockOKColor = "#28a745"

// ProductPage extracts the product record from raw markup.
func ProductPage(html, sourceURL string) (*ProductRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		base = nil
	}

	canonical := doc.Find(`link[rel="canonical"]`).First().AttrOr("href", "")
	if canonical == "" {
		canonical = sourceURL
	}

	rec := &ProductRecord{
		Name:             elementText(doc, "h1"),
		URL:              canonical,
		ShortDescription: collapseWhitespace(doc.Find(shortDescSelectors).First().Text()),
		LongDescription:  collapseWhitespace(doc.Find(longDescSelectors).First().Text()),
		Breadcrumbs:      breadcrumbTrail(doc),
		Category:         breadcrumbCategory(doc, base),
		Parameters:       parseParameters(doc),
		Variants:         parseVariants(doc),
		Images:           productImages(doc, base),
		Badges:           badgeList(doc),
	}

	// Pages without a variant table still expose a single displayed price;
	// downstream consumers always see at least one variant when any price
	// exists.
	if len(rec.Variants) == 0 {
		if v, ok := synthesizeVariant(doc); ok {
			rec.Variants = []Variant{v}
		}
	}
	return rec, nil
}

func breadcrumbTrail(doc *goquery.Document) []string {
	trail := make([]string, 0)
	doc.Find(breadcrumbSelectors).Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(s.Text()); text != "" {
			trail = append(trail, text)
		}
	})
	return trail
}

// breadcrumbCategory takes the last breadcrumb anchor as the product's
// category; the product itself is rendered as plain text, not a link.
func breadcrumbCategory(doc *goquery.Document, base *url.URL) Category {
	last := doc.Find(breadcrumbSelectors).Last()
	if last.Length() == 0 {
		return Category{}
	}
	href := strings.TrimSpace(last.AttrOr("href", ""))
	return Category{
		Name: collapseWhitespace(last.Text()),
		URL:  resolveRef(base, href),
	}
}

func parseParameters(doc *goquery.Document) map[string]string {
	params := make(map[string]string)
	doc.Find(parameterRowSelectors).Each(func(_ int, row *goquery.Selection) {
		label := collapseWhitespace(row.Find("th").First().Text())
		if label == "" {
			label = collapseWhitespace(row.Find("td").First().Text())
		}
		value := collapseWhitespace(row.Find("td").Last().Text())
		if label == "" || value == "" || label == value {
			return
		}
		params[CanonicalKey(label)] = value
	})
	return params
}

func parseVariants(doc *goquery.Document) []Variant {
	headers := make([]string, 0)
	doc.Find(variantHeadSelectors).Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, CanonicalKey(th.Text()))
	})

	variants := make([]Variant, 0)
	doc.Find(variantRowSelectors).Each(func(_ int, row *goquery.Selection) {
		v := Variant{Attributes: make(map[string]string)}
		row.Find("td").Each(func(i int, cell *goquery.Selection) {
			key := fmt.Sprintf("col_%d", i)
			if i < len(headers) {
				key = headers[i]
			}
			text := collapseWhitespace(cell.Text())
			switch key {
			case "price_incl_vat":
				if val, ok := ParsePrice(text); ok {
					v.PriceInclVAT = FormatPrice(val)
					v.PriceExclVAT = PriceExclVAT(val)
				}
			case "price_excl_vat":
				// Derived from the VAT-inclusive price; the cell is ignored.
			case "availability":
				v.StatusText = text
				v.InStock = hasStockColor(cell)
			default:
				if text != "" {
					v.Attributes[key] = text
				}
			}
		})
		variants = append(variants, v)
	})
	return variants
}

// synthesizeVariant builds the implicit single variant from the page's
// displayed price. ok is false when no parseable price is shown.
func synthesizeVariant(doc *goquery.Document) (Variant, bool) {
	text := doc.Find(priceSelectors).First().Text()
	val, ok := ParsePrice(text)
	if !ok {
		return Variant{}, false
	}
	status := doc.Find(availabilitySelectors).First()
	return Variant{
		Attributes:   make(map[string]string),
		PriceInclVAT: FormatPrice(val),
		PriceExclVAT: PriceExclVAT(val),
		StatusText:   collapseWhitespace(status.Text()),
		InStock:      hasStockColor(status),
	}, true
}

// hasStockColor reports whether the cell or any child carries the
// stock-positive inline color.
func hasStockColor(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	if strings.Contains(strings.ToLower(sel.AttrOr("style", "")), stockOKColor) {
		return true
	}
	found := false
	sel.Find("[style]").Each(func(_ int, child *goquery.Selection) {
		if strings.Contains(strings.ToLower(child.AttrOr("style", "")), stockOKColor) {
			found = true
		}
	})
	return found
}

func productImages(doc *goquery.Document, base *url.URL) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{})
	doc.Find(galleryImageSelectors).Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			return
		}
		resolved := resolveRef(base, src)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	})
	return out
}

func badgeList(doc *goquery.Document) []string {
	badges := make([]string, 0)
	doc.Find(badgeSelectors).Each(func(_ int, s *goquery.Selection) {
		if text := collapseWhitespace(s.Text()); text != "" {
			badges = append(badges, text)
		}
	})
	return badges
}

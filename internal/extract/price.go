package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// vatRate converts VAT-inclusive prices to the ex-VAT value.
const vatRate = 1.21

// priceSelectors is the last resort of the price cascade.
const priceSelectors = ".price, .product-price"

// ParsePrice parses a locale-formatted price string where a period or space
// separates thousands and a comma separates decimals (e.g. "1 250,00 €").
// ok is false when no numeric value is present; unparseable input never
// yields zero.
func ParsePrice(raw string) (value float64, ok bool) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	// Drop periods acting as thousands separators: those followed by exactly
	// three digits and then a comma, a chained separator, or the end of the
	// string.
	var cleaned strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && isThousandsSeparator(s, i) {
			continue
		}
		cleaned.WriteByte(s[i])
	}
	normalized := strings.ReplaceAll(cleaned.String(), ",", ".")

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func isThousandsSeparator(s string, i int) bool {
	if i+4 > len(s) {
		return false
	}
	for j := i + 1; j <= i+3; j++ {
		if s[j] < '0' || s[j] > '9' {
			return false
		}
	}
	return i+4 == len(s) || s[i+4] == ',' || s[i+4] == '.'
}

// PriceExclVAT derives the ex-VAT price from a VAT-inclusive value,
// formatted to exactly two decimal places.
func PriceExclVAT(incl float64) string {
	return strconv.FormatFloat(incl/vatRate, 'f', 2, 64)
}

// FormatPrice renders a parsed price with two decimal places.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// resolvePrice runs the ordered price cascade: JSON-LD offers, then
// itemprop="price", then generic price class selectors. The first source
// yielding a non-empty price wins; currency may stay empty even when a price
// is found.
func resolvePrice(doc *goquery.Document, ld map[string]any) (price, currency string) {
	if p, c := priceFromOffers(ld); p != "" {
		return p, c
	}
	if p, c := priceFromItemprop(doc); p != "" {
		return p, c
	}
	if p := priceFromSelectors(doc); p != "" {
		return p, ""
	}
	return "", ""
}

func priceFromOffers(ld map[string]any) (price, currency string) {
	if ld == nil {
		return "", ""
	}
	offers, ok := ld["offers"]
	if !ok {
		return "", ""
	}
	node, ok := offers.(map[string]any)
	if !ok {
		// An offer list falls back to its first entry.
		list, isList := offers.([]any)
		if !isList || len(list) == 0 {
			return "", ""
		}
		node, ok = list[0].(map[string]any)
		if !ok {
			return "", ""
		}
	}

	price = stringifyLDValue(node["price"])
	if price == "" {
		price = stringifyLDValue(node["lowPrice"])
	}
	currency = stringifyLDValue(node["priceCurrency"])
	if price == "" {
		return "", ""
	}
	return price, currency
}

func priceFromItemprop(doc *goquery.Document) (price, currency string) {
	sel := doc.Find(`[itemprop="price"]`).First()
	if sel.Length() == 0 {
		return "", ""
	}
	price = strings.TrimSpace(sel.AttrOr("content", ""))
	if price == "" {
		price = strings.TrimSpace(sel.Text())
	}
	if price == "" {
		return "", ""
	}
	currency = strings.TrimSpace(doc.Find(`[itemprop="priceCurrency"]`).First().AttrOr("content", ""))
	return price, currency
}

func priceFromSelectors(doc *goquery.Document) string {
	text := strings.TrimSpace(doc.Find(priceSelectors).First().Text())
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stringifyLDValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

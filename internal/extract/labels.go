package extract

import "strings"

// knownLabels maps frequent human-readable field labels straight to their
// canonical keys. It is consulted before the mechanical normalization so
// label spelling drift on the site does not fragment the parameter keys.
var knownLabels = map[string]string{
	"price incl. vat":    "price_incl_vat",
	"price incl vat":     "price_incl_vat",
	"price excl. vat":    "price_excl_vat",
	"price excl vat":     "price_excl_vat",
	"price":              "price_incl_vat",
	"availability":       "availability",
	"in stock":           "availability",
	"stock":              "availability",
	"colour":             "color",
	"color":              "color",
	"size":               "size",
	"dimensions":         "dimensions",
	"width":              "width",
	"height":             "height",
	"depth":              "depth",
	"length":             "length",
	"weight":             "weight",
	"material":           "material",
	"brand":              "brand",
	"manufacturer":       "brand",
	"producer":           "brand",
	"warranty":           "warranty",
	"ean":                "ean",
	"sku":                "sku",
	"code":               "sku",
	"product code":       "sku",
}

// CanonicalKey normalizes a human-readable label into its canonical
// lowercase-underscore form. Known labels resolve through a fixed table;
// everything else falls back to mechanical case/whitespace transformation.
func CanonicalKey(label string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(label), " "))
	norm = strings.TrimSuffix(norm, ":")
	if key, ok := knownLabels[norm]; ok {
		return key
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range norm {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// firstJSONLD locates the first application/ld+json block and parses it as an
// object. A parse failure is treated as absence, never as an error. raw is
// the compact re-serialization of the parsed object.
func firstJSONLD(doc *goquery.Document) (raw string, data map[string]any) {
	text := strings.TrimSpace(doc.Find(`script[type="application/ld+json"]`).First().Text())
	if text == "" {
		return "", nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return "", nil
	}
	serialized, err := json.Marshal(obj)
	if err != nil {
		return "", nil
	}
	return string(serialized), obj
}

// ldType extracts @type, which may be a string or a list.
func ldType(ld map[string]any) string {
	if ld == nil {
		return ""
	}
	switch t := ld["@type"].(type) {
	case string:
		return t
	case []any:
		for _, entry := range t {
			if s, ok := entry.(string); ok {
				return s
			}
		}
	}
	return ""
}

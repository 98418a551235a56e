package extract

import "time"

// Record is the tagged union of the three extraction shapes.
type Record interface {
	Kind() string
}

// PageType classifies what kind of page a URL points at.
type PageType string

// Supported page classifications.
const (
	PageTypeArticle  PageType = "article"
	PageTypeCategory PageType = "category"
	PageTypeProduct  PageType = "product"
	PageTypeGallery  PageType = "gallery"
	PageTypePage     PageType = "page"
)

// PageRecord is the generic extraction shape produced in page mode.
type PageRecord struct {
	URL               string    `json:"url"`
	StatusCode        int       `json:"status_code"`
	Title             string    `json:"title"`
	H1                string    `json:"h1"`
	MetaDescription   string    `json:"meta_description"`
	MetaKeywords      string    `json:"meta_keywords"`
	Canonical         string    `json:"canonical"`
	OGImage           string    `json:"og_image"`
	Content           string    `json:"content"`
	WordCount         int       `json:"word_count"`
	Images            []string  `json:"images"`
	InternalLinks     []string  `json:"internal_links"`
	InternalLinkCount int       `json:"internal_link_count"`
	ExternalLinkCount int       `json:"external_link_count"`
	JSONLD            string    `json:"json_ld,omitempty"`
	Price             string    `json:"price,omitempty"`
	Currency          string    `json:"currency,omitempty"`
	PageType          PageType  `json:"page_type"`
	CrawledAt         time.Time `json:"crawled_at"`
}

// Kind implements Record.
func (*PageRecord) Kind() string { return "page" }

// Category names a product's category with its link.
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Variant is one purchasable variation of a product. Attributes is an open
// mapping keyed by canonical label-derived keys.
type Variant struct {
	Attributes   map[string]string `json:"attributes"`
	PriceInclVAT string            `json:"price_incl_vat"`
	PriceExclVAT string            `json:"price_excl_vat"`
	InStock      bool              `json:"in_stock"`
	StatusText   string            `json:"status_text"`
}

// ProductRecord is the extraction shape produced in product mode.
type ProductRecord struct {
	Name             string            `json:"name"`
	URL              string            `json:"url"`
	ShortDescription string            `json:"short_description"`
	LongDescription  string            `json:"long_description"`
	Breadcrumbs      []string          `json:"breadcrumbs"`
	Category         Category          `json:"category"`
	Parameters       map[string]string `json:"parameters"`
	Variants         []Variant         `json:"variants"`
	Images           []string          `json:"images"`
	Badges           []string          `json:"badges"`
}

// Kind implements Record.
func (*ProductRecord) Kind() string { return "product" }

// EmbedType classifies an embedded media frame.
type EmbedType string

// Supported embed classifications.
const (
	EmbedYouTube EmbedType = "youtube"
	EmbedIframe  EmbedType = "iframe"
	EmbedUnknown EmbedType = "unknown"
)

// Embed is one embedded media element found in an article body.
type Embed struct {
	Type   EmbedType `json:"type"`
	Source string    `json:"source"`
	Width  string    `json:"width,omitempty"`
	Height string    `json:"height,omitempty"`
}

// ArticleRecord is the extraction shape produced in article mode.
type ArticleRecord struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHTML string    `json:"content_html"`
	ContentText string    `json:"content_text"`
	Embeds      []Embed   `json:"embeds"`
	CrawledAt   time.Time `json:"crawled_at"`
}

// Kind implements Record.
func (*ArticleRecord) Kind() string { return "article" }

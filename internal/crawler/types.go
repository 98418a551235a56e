package crawler

import (
	"time"

	"github.com/siteharvest/siteharvest/internal/extract"
)

// Mode selects which record shape the extraction engine produces.
type Mode string

// Supported crawl modes.
const (
	ModePage    Mode = "page"
	ModeProduct Mode = "product"
	ModeArticle Mode = "article"
)

// FetchOutcome is the transient result of one successful GET. It is consumed
// immediately by the extraction engine and never persisted.
type FetchOutcome struct {
	StatusCode int
	Body       []byte
}

// Outcome records the result of one URL's fetch+extract attempt. Exactly one
// of Record or ErrorMessage is set.
type Outcome struct {
	URL          string
	Record       extract.Record
	ErrorMessage string
	StatusCode   *int
}

// Success reports whether the outcome carries an extracted record.
func (o Outcome) Success() bool {
	return o.Record != nil
}

// Summary captures aggregate statistics for one crawl run. It is derived once
// and never mutated afterwards.
type Summary struct {
	RunID        string
	RawURLs      int
	DedupedURLs  int
	FilteredURLs int
	Crawled      int
	Succeeded    int
	Failed       int
	SuccessRate  float64
	Elapsed      time.Duration
	GeneratedAt  time.Time
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// ProgressFunc is invoked once per URL as its fetch+extract settles.
// Completed is strictly increasing and never exceeds total.
type ProgressFunc func(completed, total int, url string, outcome Outcome)

package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalFetches tracks the number of HTTP requests dispatched.
	TotalFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_fetches_total",
		Help: "The total number of HTTP requests sent.",
	})
	// TotalFetchErrors tracks failed fetches partitioned by failure kind.
	TotalFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_fetch_errors_total",
		Help: "The total number of failed HTTP requests by failure kind.",
	}, []string{"kind"})
	// TotalRetries tracks how often the single-retry wrapper re-attempted.
	TotalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crawler_retries_total",
		Help: "The total number of retry attempts.",
	})
	// TotalExtracted tracks successfully extracted records by crawl mode.
	TotalExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crawler_records_extracted_total",
		Help: "The total number of records extracted by crawl mode.",
	}, []string{"mode"})
)

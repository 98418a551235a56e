// Package crawler implements the crawl pipeline: URL deduplication, batched
// concurrent fetching, retry handling, and result aggregation.
package crawler

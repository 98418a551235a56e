// Package progress defines the event stream emitted while a crawl run
// executes, plus the non-blocking hub that batches events out to sinks.
package progress

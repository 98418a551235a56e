package crawler

import "time"

// Aggregate partitions outcomes into successes and failures and derives the
// run summary. The success rate is a percentage of attempted URLs and is 0
// for an empty attempted set. Pipeline-stage counts (raw/deduped/filtered)
// belong to the orchestrator and are filled in by it.
func Aggregate(outcomes []Outcome, elapsed time.Duration, now time.Time) (successes, failures []Outcome, summary Summary) {
	successes = make([]Outcome, 0, len(outcomes))
	failures = make([]Outcome, 0)
	for _, o := range outcomes {
		if o.Success() {
			successes = append(successes, o)
		} else {
			failures = append(failures, o)
		}
	}

	rate := 0.0
	if len(outcomes) > 0 {
		rate = float64(len(successes)) / float64(len(outcomes)) * 100
	}
	summary = Summary{
		Crawled:     len(outcomes),
		Succeeded:   len(successes),
		Failed:      len(failures),
		SuccessRate: rate,
		Elapsed:     elapsed,
		GeneratedAt: now,
	}
	return successes, failures, summary
}

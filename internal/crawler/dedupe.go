package crawler

import "strings"

// Dedupe removes duplicate URLs while preserving first-occurrence order.
// Membership is tested on a key with exactly one trailing slash stripped, so
// trailing-slash variants of the same page collapse; the original string of
// the first occurrence is retained in the output. The function is pure and
// idempotent.
func Dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		key := strings.TrimSuffix(u, "/")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, u)
	}
	return out
}

package crawler

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RunBatches partitions items into consecutive windows of size concurrency,
// runs task for every item in a window concurrently, and sleeps delay between
// windows (never after the last one). The returned slice is in input order
// regardless of completion order. onItemDone fires as each task settles;
// invocations are serialized so every call observes a distinct, strictly
// increasing completed count.
//
// task must convert its own failures into result values; nothing may error
// past this boundary. The context is checked before each window starts: on
// cancellation the remaining windows are skipped and the results gathered so
// far are returned alongside ctx.Err().
func RunBatches[T, R any](
	ctx context.Context,
	items []T,
	concurrency int,
	delay time.Duration,
	task func(context.Context, T) R,
	onItemDone func(completed, total int, item T, result R),
) ([]R, error) {
	if concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	total := len(items)
	results := make([]R, total)

	var (
		mu        sync.Mutex
		completed int
	)

	for start := 0; start < total; start += concurrency {
		if err := ctx.Err(); err != nil {
			return results[:start], err
		}
		end := min(start+concurrency, total)

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				res := task(ctx, items[idx])
				results[idx] = res

				mu.Lock()
				completed++
				if onItemDone != nil {
					onItemDone(completed, total, items[idx], res)
				}
				mu.Unlock()
			}(i)
		}
		wg.Wait()

		if end < total && delay > 0 {
			select {
			case <-ctx.Done():
				return results[:end], ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return results, nil
}

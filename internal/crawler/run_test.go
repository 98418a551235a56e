package crawler

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siteharvest/siteharvest/internal/progress"
)

// fakeFetcher serves canned responses keyed by URL. Unknown URLs fail with a
// 404 so retry kicks in exactly as it would against a live site.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]FetchOutcome
	calls     map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: make(map[string]FetchOutcome),
		calls:     make(map[string]int),
	}
}

func (f *fakeFetcher) serve(url, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[url] = FetchOutcome{StatusCode: 200, Body: []byte(body)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (FetchOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	out, ok := f.responses[url]
	if !ok {
		return FetchOutcome{}, NewHTTPStatusError(404)
	}
	return out, nil
}

func (f *fakeFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// captureEmitter records every event the crawler publishes.
type captureEmitter struct {
	mu     sync.Mutex
	events []progress.Event
}

func (c *captureEmitter) Emit(evt progress.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, evt)
}

func (c *captureEmitter) byStage(stage progress.Stage) []progress.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]progress.Event, 0)
	for _, evt := range c.events {
		if evt.Stage == stage {
			out = append(out, evt)
		}
	}
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func testRunConfig() Config {
	cfg := DefaultConfig()
	cfg.Concurrency = 2
	cfg.InterBatchDelay = 0
	return cfg
}

const fakePageHTML = `<html><head><title>T</title></head><body><main><p>hi</p></main></body></html>`

func TestCrawlerRun(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.serve("https://example.com/one", fakePageHTML)
	fetcher.serve("https://example.com/two/", fakePageHTML)
	fetcher.serve("https://example.com/three", fakePageHTML)

	emitter := &captureEmitter{}
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	c, err := New(testRunConfig(), fetcher, emitter, clock, nil)
	require.NoError(t, err)

	urls := []string{
		"https://example.com/one",
		"https://example.com/two/",
		"https://example.com/two",
		"https://example.com/three",
	}
	outcomes, summary, err := c.Run(context.Background(), urls, nil)
	require.NoError(t, err)

	// The duplicate of /two is scheduled once; outcomes follow dedup order.
	require.Len(t, outcomes, 3)
	require.Equal(t, "https://example.com/one", outcomes[0].URL)
	require.Equal(t, "https://example.com/two/", outcomes[1].URL)
	require.Equal(t, "https://example.com/three", outcomes[2].URL)
	for _, out := range outcomes {
		require.True(t, out.Success())
		require.Equal(t, "page", out.Record.Kind())
	}

	require.Equal(t, 4, summary.RawURLs)
	require.Equal(t, 3, summary.DedupedURLs)
	require.Equal(t, 3, summary.FilteredURLs)
	require.Equal(t, 3, summary.Crawled)
	require.Equal(t, 3, summary.Succeeded)
	require.Zero(t, summary.Failed)
	require.InDelta(t, 100.0, summary.SuccessRate, 0.001)
	require.NotEmpty(t, summary.RunID)

	require.Len(t, emitter.byStage(progress.StageRunStart), 1)
	require.Len(t, emitter.byStage(progress.StageItemDone), 3)
	require.Len(t, emitter.byStage(progress.StageRunDone), 1)
}

func TestCrawlerRunFoldsFailuresIntoOutcomes(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.serve("https://example.com/good", fakePageHTML)

	c, err := New(testRunConfig(), fetcher, nil, nil, nil)
	require.NoError(t, err)

	outcomes, summary, err := c.Run(context.Background(), []string{
		"https://example.com/good",
		"https://example.com/missing",
	}, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	require.True(t, outcomes[0].Success())

	failed := outcomes[1]
	require.False(t, failed.Success())
	require.Equal(t, "HTTP 404 Not Found", failed.ErrorMessage)
	require.NotNil(t, failed.StatusCode)
	require.Equal(t, 404, *failed.StatusCode)

	// The failing URL gets exactly one extra attempt.
	require.Equal(t, 2, fetcher.callCount("https://example.com/missing"))
	require.Equal(t, 1, fetcher.callCount("https://example.com/good"))

	require.Equal(t, 1, summary.Succeeded)
	require.Equal(t, 1, summary.Failed)
	require.InDelta(t, 50.0, summary.SuccessRate, 0.001)
}

func TestCrawlerRunEmptyURLList(t *testing.T) {
	t.Parallel()

	c, err := New(testRunConfig(), newFakeFetcher(), nil, nil, nil)
	require.NoError(t, err)

	_, _, err = c.Run(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestCrawlerRunIncludeFilter(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	fetcher.serve("https://example.com/p/1", fakePageHTML)

	cfg := testRunConfig()
	cfg.IncludeFilter = regexp.MustCompile(`/p/\d+`)
	c, err := New(cfg, fetcher, nil, nil, nil)
	require.NoError(t, err)

	outcomes, summary, err := c.Run(context.Background(), []string{
		"https://example.com/p/1",
		"https://example.com/about",
	}, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, "https://example.com/p/1", outcomes[0].URL)
	require.Equal(t, 2, summary.DedupedURLs)
	require.Equal(t, 1, summary.FilteredURLs)
	require.Zero(t, fetcher.callCount("https://example.com/about"))
}

func TestCrawlerRunProgressCallback(t *testing.T) {
	t.Parallel()

	fetcher := newFakeFetcher()
	total := 5
	urls := make([]string, 0, total)
	for i := range total {
		url := fmt.Sprintf("https://example.com/page/%d", i)
		fetcher.serve(url, fakePageHTML)
		urls = append(urls, url)
	}

	c, err := New(testRunConfig(), fetcher, nil, nil, nil)
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		ordinals []int
	)
	_, _, err = c.Run(context.Background(), urls, func(completed, gotTotal int, _ string, _ Outcome) {
		mu.Lock()
		ordinals = append(ordinals, completed)
		mu.Unlock()
		require.Equal(t, total, gotTotal)
	})
	require.NoError(t, err)

	require.Len(t, ordinals, total)
	for i, got := range ordinals {
		require.Equal(t, i+1, got)
	}
}

func TestCrawlerRunModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode Mode
		kind string
	}{
		{mode: ModePage, kind: "page"},
		{mode: ModeProduct, kind: "product"},
		{mode: ModeArticle, kind: "article"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()

			fetcher := newFakeFetcher()
			fetcher.serve("https://example.com/x", fakePageHTML)

			cfg := testRunConfig()
			cfg.Mode = tt.mode
			c, err := New(cfg, fetcher, nil, nil, nil)
			require.NoError(t, err)

			outcomes, _, err := c.Run(context.Background(), []string{"https://example.com/x"}, nil)
			require.NoError(t, err)
			require.Len(t, outcomes, 1)
			require.True(t, outcomes[0].Success())
			require.Equal(t, tt.kind, outcomes[0].Record.Kind())
		})
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}, newFakeFetcher(), nil, nil, nil)
	require.Error(t, err)

	_, err = New(testRunConfig(), nil, nil, nil, nil)
	require.Error(t, err)
}

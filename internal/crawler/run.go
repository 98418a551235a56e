package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siteharvest/siteharvest/internal/extract"
	"github.com/siteharvest/siteharvest/internal/progress"
)

// Crawler drives the full pipeline over a URL list: dedupe, filter, batched
// fetch+extract, aggregate. Config is read-only once the Crawler is built.
type Crawler struct {
	cfg     Config
	fetcher Fetcher
	emitter progress.Emitter
	clock   Clock
	logger  *zap.Logger
}

// New validates cfg and constructs a Crawler. emitter may be nil when no
// progress stream is wanted.
func New(cfg Config, fetcher Fetcher, emitter progress.Emitter, clock Clock, logger *zap.Logger) (*Crawler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid crawl config: %w", err)
	}
	if fetcher == nil {
		return nil, errors.New("fetcher is required")
	}
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Crawler{
		cfg:     cfg,
		fetcher: fetcher,
		emitter: emitter,
		clock:   clock,
		logger:  logger,
	}, nil
}

// Run crawls urls and returns one Outcome per scheduled URL in input order,
// plus the run summary. An empty URL list is a configuration error and is
// reported before any scheduling begins. A canceled context aborts remaining
// windows and returns the partial outcomes with ctx.Err().
func (c *Crawler) Run(ctx context.Context, urls []string, onProgress ProgressFunc) ([]Outcome, Summary, error) {
	if len(urls) == 0 {
		return nil, Summary{}, errors.New("url list is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.New()
	deduped := Dedupe(urls)
	filtered := c.applyFilter(deduped)
	total := len(filtered)
	start := c.clock.Now()

	c.logger.Info("crawl run starting",
		zap.String("run_id", runID.String()),
		zap.String("mode", string(c.cfg.Mode)),
		zap.Int("raw", len(urls)),
		zap.Int("deduped", len(deduped)),
		zap.Int("filtered", total),
		zap.Int("concurrency", c.cfg.Concurrency),
	)
	c.emit(progress.Event{
		RunID: progress.UUIDToBytes(runID),
		TS:    start,
		Stage: progress.StageRunStart,
		Total: total,
	})

	task := func(ctx context.Context, url string) Outcome {
		return c.crawlOne(ctx, url)
	}
	outcomes, runErr := RunBatches(ctx, filtered, c.cfg.Concurrency, c.cfg.InterBatchDelay, task,
		func(completed, total int, url string, out Outcome) {
			c.emitItem(runID, completed, total, url, out)
			if onProgress != nil {
				onProgress(completed, total, url, out)
			}
		})

	elapsed := c.clock.Now().Sub(start)
	_, _, summary := Aggregate(outcomes, elapsed, c.clock.Now())
	summary.RunID = runID.String()
	summary.RawURLs = len(urls)
	summary.DedupedURLs = len(deduped)
	summary.FilteredURLs = total

	stage := progress.StageRunDone
	note := ""
	if runErr != nil {
		stage = progress.StageRunError
		note = runErr.Error()
	}
	c.emit(progress.Event{
		RunID:     progress.UUIDToBytes(runID),
		TS:        summary.GeneratedAt,
		Stage:     stage,
		Completed: summary.Crawled,
		Total:     total,
		Dur:       elapsed,
		Note:      note,
	})
	c.logger.Info("crawl run finished",
		zap.String("run_id", runID.String()),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Float64("success_rate", summary.SuccessRate),
		zap.Duration("elapsed", elapsed),
	)
	return outcomes, summary, runErr
}

// crawlOne fetches and extracts a single URL. Failures are folded into the
// Outcome; nothing escapes past the scheduler boundary.
func (c *Crawler) crawlOne(ctx context.Context, url string) Outcome {
	res, err := WithRetry(ctx, c.logger, func(ctx context.Context) (FetchOutcome, error) {
		return c.fetcher.Fetch(ctx, url)
	})
	if err != nil {
		out := Outcome{URL: url, ErrorMessage: err.Error()}
		var fe *FetchError
		if errors.As(err, &fe) {
			out.StatusCode = fe.StatusCode
		}
		c.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		return out
	}

	record, err := c.extractRecord(url, res)
	if err != nil {
		code := res.StatusCode
		c.logger.Warn("extract failed", zap.String("url", url), zap.Error(err))
		return Outcome{URL: url, ErrorMessage: fmt.Sprintf("extract: %v", err), StatusCode: &code}
	}
	TotalExtracted.WithLabelValues(string(c.cfg.Mode)).Inc()
	code := res.StatusCode
	return Outcome{URL: url, Record: record, StatusCode: &code}
}

func (c *Crawler) extractRecord(url string, res FetchOutcome) (extract.Record, error) {
	html := string(res.Body)
	switch c.cfg.Mode {
	case ModeProduct:
		rec, err := extract.ProductPage(html, url)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case ModeArticle:
		rec, err := extract.ArticlePage(html, url, c.clock.Now())
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		rec, err := extract.GenericPage(html, url, res.StatusCode, c.clock.Now())
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

func (c *Crawler) applyFilter(urls []string) []string {
	if c.cfg.IncludeFilter == nil {
		return urls
	}
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if c.cfg.IncludeFilter.MatchString(u) {
			out = append(out, u)
		}
	}
	return out
}

func (c *Crawler) emit(evt progress.Event) {
	if c.emitter == nil {
		return
	}
	c.emitter.Emit(evt)
}

func (c *Crawler) emitItem(runID uuid.UUID, completed, total int, url string, out Outcome) {
	code := 0
	if out.StatusCode != nil {
		code = *out.StatusCode
	}
	c.emit(progress.Event{
		RunID:       progress.UUIDToBytes(runID),
		TS:          c.clock.Now(),
		Stage:       progress.StageItemDone,
		URL:         url,
		Completed:   completed,
		Total:       total,
		StatusClass: progress.ClassifyStatus(code),
		Note:        out.ErrorMessage,
	})
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

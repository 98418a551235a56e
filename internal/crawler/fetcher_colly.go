package crawler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Fetcher performs one HTTP GET and returns the body or a classified error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchOutcome, error)
}

// CollyFetcher implements Fetcher using the Colly collector. The base
// collector holds the pooled transport; every Fetch clones it so requests
// stay independent.
type CollyFetcher struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg Config, logger *zap.Logger) *CollyFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	base := colly.NewCollector(colly.Async(false))
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	// Colly treats every status >= 203 as an error; response parsing is
	// enabled so the non-2xx decision stays in one place below.
	base.ParseHTTPErrorResponse = true
	base.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.Concurrency * 2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ForceAttemptHTTP2:     true,
		ExpectContinueTimeout: 1 * time.Second,
	})
	return &CollyFetcher{
		cfg:    cfg,
		base:   base,
		logger: logger,
	}
}

// Fetch issues a single GET with the configured timeout, a bounded redirect
// chain, and a User-Agent picked at random from the rotation pool.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (FetchOutcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := f.base.Clone()
	collector.Context = ctx
	collector.SetRequestTimeout(f.cfg.RequestTimeout)
	collector.SetRedirectHandler(func(_ *http.Request, via []*http.Request) error {
		if len(via) >= f.cfg.MaxRedirects {
			return fmt.Errorf("stopped after %d redirects", f.cfg.MaxRedirects)
		}
		return nil
	})

	var (
		outcome  FetchOutcome
		fetchErr error
	)
	userAgent := pickUserAgent(f.cfg.UserAgents)
	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	})
	collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode < 200 || r.StatusCode >= 300 {
			fetchErr = NewHTTPStatusError(r.StatusCode)
			return
		}
		outcome = FetchOutcome{
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
		}
	})
	collector.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	TotalFetches.Inc()
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(rawURL)
	}()

	var visitErr error
	select {
	case <-ctx.Done():
		visitErr = ctx.Err()
	case visitErr = <-done:
	}

	if fetchErr == nil {
		fetchErr = visitErr
	}
	if fetchErr != nil {
		fe := ClassifyFetchError(fetchErr)
		TotalFetchErrors.WithLabelValues(string(fe.Kind)).Inc()
		f.logger.Debug("fetch failed",
			zap.String("url", rawURL),
			zap.String("kind", string(fe.Kind)),
			zap.Error(fe),
		)
		return FetchOutcome{}, fe
	}
	if outcome.StatusCode == 0 {
		err := ClassifyFetchError(errors.New("no response received"))
		TotalFetchErrors.WithLabelValues(string(err.Kind)).Inc()
		return FetchOutcome{}, err
	}
	return outcome, nil
}

// Command siteharvest crawls an externally supplied URL list belonging to one
// web property and reports per-URL extraction outcomes plus aggregate
// statistics. Exporting the outcomes is left to downstream tooling.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/siteharvest/siteharvest/internal/clock/system"
	"github.com/siteharvest/siteharvest/internal/config"
	"github.com/siteharvest/siteharvest/internal/crawler"
	"github.com/siteharvest/siteharvest/internal/logging"
	"github.com/siteharvest/siteharvest/internal/progress"
	"github.com/siteharvest/siteharvest/internal/progress/sinks"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "siteharvest:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("SITEHARVEST_CONFIG")
	if cfgPath == "" {
		if _, statErr := os.Stat("config.yaml"); statErr == nil {
			cfgPath = "config.yaml"
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	crawlCfg, err := cfg.CrawlerConfig()
	if err != nil {
		return err
	}
	urls, err := readURLList(cfg.Input.URLFile)
	if err != nil {
		return err
	}

	promSink, err := sinks.NewPrometheusSink(nil)
	if err != nil {
		return err
	}
	hub := progress.NewHub(progress.Config{Logger: logger}, sinks.NewLogSink(logger), promSink)

	fetcher := crawler.NewCollyFetcher(crawlCfg, logger)
	c, err := crawler.New(crawlCfg, fetcher, hub, system.New(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, summary, runErr := c.Run(ctx, urls, nil)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hub.Close(closeCtx); err != nil {
		logger.Warn("progress hub close failed", zap.Error(err))
	}

	logger.Info("crawl summary",
		zap.String("run_id", summary.RunID),
		zap.Int("raw", summary.RawURLs),
		zap.Int("deduped", summary.DedupedURLs),
		zap.Int("filtered", summary.FilteredURLs),
		zap.Int("crawled", summary.Crawled),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Float64("success_rate", summary.SuccessRate),
		zap.Duration("elapsed", summary.Elapsed),
	)
	return runErr
}

// readURLList loads one URL per line, skipping blanks and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	urls := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return urls, nil
}

package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/audit-api/internal/model"
	"github.com/sells-group/audit-api/internal/urlcheck"
)

// HTMLFetcher parses SEO signals from a page.
type HTMLFetcher interface {
	Scrape(ctx context.Context, url string) (*model.HTMLData, error)
}

// PerformanceAnalyzer returns normalized page-performance sub-scores.
type PerformanceAnalyzer interface {
	Analyze(ctx context.Context, url string) (*model.PageSpeedData, error)
}

// CrawlChecker probes robots.txt and sitemap.xml.
type CrawlChecker interface {
	Check(ctx context.Context, url string) (model.CrawlabilityData, error)
}

// Orchestrator runs the three scrapers concurrently with failure isolation.
type Orchestrator struct {
	html  HTMLFetcher
	perf  PerformanceAnalyzer
	crawl CrawlChecker
}

// NewOrchestrator creates an Orchestrator over the given scrapers.
func NewOrchestrator(html HTMLFetcher, perf PerformanceAnalyzer, crawl CrawlChecker) *Orchestrator {
	return &Orchestrator{html: html, perf: perf, crawl: crawl}
}

// ScrapeWebsite scrapes targetURL and merges the results. Unsafe URLs
// short-circuit to nil. Each scraper may fail without aborting the others:
// outcomes are settled and inspected, never short-circuited. When both the
// HTML and performance scrapes fail the whole operation returns nil and the
// caller falls back to AI-only analysis; a crawlability failure alone
// degrades to a neutral default.
func (o *Orchestrator) ScrapeWebsite(ctx context.Context, targetURL string) *model.ScrapedData {
	if !urlcheck.IsSafe(targetURL) {
		zap.L().Warn("scrape: url blocked by safety filter", zap.String("url", targetURL))
		return nil
	}

	start := time.Now()

	var (
		htmlData  *model.HTMLData
		htmlErr   error
		perfData  *model.PageSpeedData
		perfErr   error
		crawlData model.CrawlabilityData
		crawlErr  error
	)

	// Plain group, each task soaking its own error: one scraper's failure
	// must never cancel the others.
	g := new(errgroup.Group)

	g.Go(func() error {
		htmlData, htmlErr = o.html.Scrape(ctx, targetURL)
		return nil
	})
	g.Go(func() error {
		perfData, perfErr = o.perf.Analyze(ctx, targetURL)
		return nil
	})
	g.Go(func() error {
		crawlData, crawlErr = o.crawl.Check(ctx, targetURL)
		return nil
	})

	_ = g.Wait()

	if htmlErr != nil {
		zap.L().Warn("scrape: html scrape failed", zap.String("url", targetURL), zap.Error(htmlErr))
		htmlData = nil
	}
	if perfErr != nil {
		zap.L().Warn("scrape: pagespeed failed", zap.String("url", targetURL), zap.Error(perfErr))
		perfData = nil
	}
	if crawlErr != nil {
		zap.L().Warn("scrape: crawlability check failed", zap.String("url", targetURL), zap.Error(crawlErr))
		crawlData = model.NeutralCrawlability()
	}

	if htmlData == nil && perfData == nil {
		zap.L().Warn("scrape: all scrapers failed, falling back to ai-only",
			zap.String("url", targetURL),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}

	zap.L().Info("scrape: website scrape complete",
		zap.String("url", targetURL),
		zap.Bool("html", htmlData != nil),
		zap.Bool("pagespeed", perfData != nil),
		zap.Duration("duration", time.Since(start)),
	)

	return &model.ScrapedData{
		HTML:         htmlData,
		PageSpeed:    perfData,
		Crawlability: crawlData,
	}
}

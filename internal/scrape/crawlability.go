package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/audit-api/internal/model"
)

// CrawlabilityChecker probes a site's robots.txt and sitemap.xml.
type CrawlabilityChecker struct {
	client  *http.Client
	timeout time.Duration
}

// NewCrawlabilityChecker creates a checker with the given per-fetch timeout.
func NewCrawlabilityChecker(timeout time.Duration) *CrawlabilityChecker {
	return &CrawlabilityChecker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Check fetches {origin}/robots.txt and {origin}/sitemap.xml concurrently
// with independent timeouts. Either fetch failing means "absent", never a
// failure of the whole check.
func (c *CrawlabilityChecker) Check(ctx context.Context, rawURL string) (model.CrawlabilityData, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return model.NeutralCrawlability(), eris.Wrap(err, "scrape: parse origin")
	}
	origin := u.Scheme + "://" + u.Host

	data := model.CrawlabilityData{RobotsTxtAllowsCrawling: true}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exists, allows := c.checkRobots(gctx, origin+"/robots.txt")
		data.RobotsTxtExists = exists
		data.RobotsTxtAllowsCrawling = allows
		return nil
	})

	g.Go(func() error {
		data.SitemapExists = c.checkSitemap(gctx, origin+"/sitemap.xml")
		return nil
	})

	_ = g.Wait()
	return data, nil
}

// checkRobots reports whether robots.txt exists and whether its wildcard
// user-agent group permits crawling the site root.
func (c *CrawlabilityChecker) checkRobots(ctx context.Context, robotsURL string) (exists, allows bool) {
	body, ok := c.fetch(ctx, robotsURL)
	if !ok {
		return false, true
	}

	robots, err := robotstxt.FromBytes(body)
	if err != nil {
		return true, true
	}
	return true, robots.TestAgent("/", "*")
}

// checkSitemap reports whether sitemap.xml exists and actually looks like
// XML. Some hosts return a styled 200 error page for missing files, so a
// 2xx status alone is not trusted.
func (c *CrawlabilityChecker) checkSitemap(ctx context.Context, sitemapURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return false
	}

	return looksLikeXML(resp.Header.Get("Content-Type"), body)
}

func looksLikeXML(contentType string, body []byte) bool {
	if strings.Contains(contentType, "xml") {
		return true
	}
	head := strings.TrimSpace(string(body))
	return strings.HasPrefix(head, "<?xml") ||
		strings.HasPrefix(head, "<urlset") ||
		strings.HasPrefix(head, "<sitemapindex")
}

func (c *CrawlabilityChecker) fetch(ctx context.Context, fetchURL string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, false
	}
	return body, true
}

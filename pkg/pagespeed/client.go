// Package pagespeed wraps the PageSpeed Insights API.
package pagespeed

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/sells-group/audit-api/internal/model"
)

const defaultBaseURL = "https://www.googleapis.com/pagespeedonline/v5"

// Client runs page-performance analysis for a URL.
type Client interface {
	Analyze(ctx context.Context, targetURL string) (*model.PageSpeedData, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.HTTPClient.Timeout = d
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *retryablehttp.Client
}

// NewClient creates a PageSpeed Insights client. The API key may be empty;
// the API accepts unauthenticated requests at a lower quota.
func NewClient(apiKey string, opts ...Option) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second

	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    rc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Analyze requests mobile-strategy performance, SEO and accessibility
// categories and extracts the three 0–100 sub-scores plus optional Core
// Web Vitals. A category absent from the response scores zero.
func (c *httpClient) Analyze(ctx context.Context, targetURL string) (*model.PageSpeedData, error) {
	q := url.Values{}
	q.Set("url", targetURL)
	q.Set("strategy", "mobile")
	q["category"] = []string{"performance", "seo", "accessibility"}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/runPagespeed?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: send request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "pagespeed: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("pagespeed: unexpected status %d", resp.StatusCode)
	}

	return parseResult(body), nil
}

// parseResult extracts sub-scores from the nested Lighthouse result.
// Category scores come back as 0–1 fractions.
func parseResult(body []byte) *model.PageSpeedData {
	data := &model.PageSpeedData{
		Performance:   categoryScore(body, "performance"),
		SEO:           categoryScore(body, "seo"),
		Accessibility: categoryScore(body, "accessibility"),
	}

	if lcp := gjson.GetBytes(body, "lighthouseResult.audits.largest-contentful-paint.numericValue"); lcp.Exists() {
		v := lcp.Float()
		data.LCPMs = &v
	}
	if cls := gjson.GetBytes(body, "lighthouseResult.audits.cumulative-layout-shift.numericValue"); cls.Exists() {
		v := cls.Float()
		data.CLS = &v
	}

	return data
}

func categoryScore(body []byte, category string) int {
	score := gjson.GetBytes(body, "lighthouseResult.categories."+category+".score")
	if !score.Exists() {
		return 0
	}
	return model.ClampScore(score.Float() * 100)
}

// Package scrape fetches a business website and derives the SEO and
// crawlability signals consumed by the AI-readiness scorer.
package scrape

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/audit-api/internal/model"
)

const (
	userAgent   = "Mozilla/5.0 (compatible; AuditBot/1.0)"
	maxBodySize = 2 * 1024 * 1024
)

// HTMLScraper fetches a page and parses its structured SEO signals.
type HTMLScraper struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTMLScraper creates an HTMLScraper with the given fetch timeout.
func NewHTMLScraper(timeout time.Duration) *HTMLScraper {
	return &HTMLScraper{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: timeout,
				}).DialContext,
				TLSHandshakeTimeout: timeout,
			},
		},
		// Polite outbound pacing so repeated audits of the same site
		// don't hammer it.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
	}
}

// Scrape fetches targetURL and parses title, meta tags, JSON-LD entries,
// heading structure, image alt coverage, and link counts. Fails on non-2xx
// status or when the fetch exceeds the configured timeout.
func (s *HTMLScraper) Scrape(ctx context.Context, targetURL string) (*model.HTMLData, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "scrape: rate wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: create request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("scrape: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse html")
	}

	page, err := url.Parse(targetURL)
	if err != nil {
		return nil, eris.Wrap(err, "scrape: parse url")
	}

	data := &model.HTMLData{
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: metaContent(doc, `meta[name="description"]`),
		OGTitle:         metaContent(doc, `meta[property="og:title"]`),
		OGDescription:   metaContent(doc, `meta[property="og:description"]`),
		OGImage:         metaContent(doc, `meta[property="og:image"]`),
		HTTPS:           page.Scheme == "https",
	}

	data.StructuredData = collectJSONLD(doc)
	data.Headings = countHeadings(doc)
	data.ImageAltCoverage = altCoverage(doc)
	data.InternalLinks, data.ExternalLinks = countLinks(doc, page)

	return data, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

// collectJSONLD parses every application/ld+json script block, flattening
// arrays and @graph wrappers. Malformed blocks are skipped, never fatal.
func collectJSONLD(doc *goquery.Document) []model.StructuredDataEntry {
	var entries []model.StructuredDataEntry
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(sel.Text()), &raw); err != nil {
			return
		}
		entries = append(entries, flattenJSONLD(raw)...)
	})
	return entries
}

// flattenJSONLD walks a decoded JSON-LD value, descending into arrays and
// @graph wrappers, and summarizes each object node.
func flattenJSONLD(raw any) []model.StructuredDataEntry {
	switch v := raw.(type) {
	case []any:
		var out []model.StructuredDataEntry
		for _, item := range v {
			out = append(out, flattenJSONLD(item)...)
		}
		return out
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return flattenJSONLD(graph)
		}
		return []model.StructuredDataEntry{summarizeJSONLD(v)}
	default:
		return nil
	}
}

func summarizeJSONLD(obj map[string]any) model.StructuredDataEntry {
	entry := model.StructuredDataEntry{
		HasName:    nonEmptyString(obj["name"]),
		HasAddress: obj["address"] != nil,
		HasPhone:   nonEmptyString(obj["telephone"]),
		HasHours:   obj["openingHours"] != nil || obj["openingHoursSpecification"] != nil,
	}

	// @type can be a string or a list of types.
	switch t := obj["@type"].(type) {
	case string:
		entry.Type = t
	case []any:
		if len(t) > 0 {
			if s, ok := t[0].(string); ok {
				entry.Type = s
			}
		}
	}

	return entry
}

func nonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// countHeadings tallies h1–h3 and derives the hierarchy flag: exactly one
// h1, and any h3 must be accompanied by at least one h2.
func countHeadings(doc *goquery.Document) model.HeadingCounts {
	h := model.HeadingCounts{
		H1: doc.Find("h1").Length(),
		H2: doc.Find("h2").Length(),
		H3: doc.Find("h3").Length(),
	}
	h.ProperHierarchy = h.H1 == 1 && (h.H3 == 0 || h.H2 > 0)
	return h
}

// altCoverage returns the percentage of images with non-empty alt text.
// A page with no images counts as fully covered.
func altCoverage(doc *goquery.Document) float64 {
	imgs := doc.Find("img")
	total := imgs.Length()
	if total == 0 {
		return 100
	}
	withAlt := 0
	imgs.Each(func(_ int, sel *goquery.Selection) {
		if alt, ok := sel.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			withAlt++
		}
	})
	return float64(withAlt) / float64(total) * 100
}

// countLinks classifies anchors as internal or external relative to the
// page's own hostname. Fragment, mailto and tel links are ignored.
func countLinks(doc *goquery.Document, page *url.URL) (internal, external int) {
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "javascript:") {
			return
		}
		u, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := page.ResolveReference(u)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Hostname() == page.Hostname() {
			internal++
		} else {
			external++
		}
	})
	return internal, external
}

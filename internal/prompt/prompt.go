// Package prompt renders the bounded, injection-resistant model request
// for audit report generation.
package prompt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sells-group/audit-api/internal/model"
)

// System is the fixed system instruction for the report model.
const System = "You are a local business marketing consultant. You respond with a single JSON object and nothing else: no prose, no markdown fences."

const schemaExample = `{
  "overallScore": 72,
  "summary": "One paragraph overview of the business's online visibility.",
  "categories": [
    {
      "category": "Google Business Profile",
      "score": 65,
      "emoji": "📍",
      "actionItems": [
        {"action": "Claim and complete your profile", "priority": "high", "estimatedImpact": "More calls from map searches"}
      ]
    }
  ],
  "quickWin": "The single fastest improvement to make this week.",
  "topPriorities": ["First priority", "Second priority", "Third priority"],
  "competitiveInsight": "One paragraph on how the business compares locally."
}`

// Build renders the audit prompt. Every user-supplied field is sanitized by
// stripping control characters and truncating to its cap — the defense is
// length and character bounds, not semantic filtering.
func Build(req model.AuditRequest, scraped *model.ScrapedData) string {
	var b strings.Builder

	b.WriteString("Produce a local online-visibility audit for the business below.\n")
	b.WriteString("Return ONLY a JSON object matching this exact schema (same keys, same types):\n\n")
	b.WriteString(schemaExample)
	b.WriteString("\n\nScore five categories: Google Business Profile, Website & SEO, ")
	b.WriteString("Online Reviews, Social Presence, Local Directories. ")
	b.WriteString("All scores are integers from 0 to 100. Every actionItem priority is high, medium, or low.\n\n")

	fmt.Fprintf(&b, "Business name: %s\n", sanitize(req.BusinessName, model.MaxBusinessNameLen))
	fmt.Fprintf(&b, "City: %s\n", sanitize(req.City, model.MaxCityLen))
	fmt.Fprintf(&b, "Business type: %s\n", sanitize(req.BusinessType, model.MaxBusinessNameLen))
	if req.WebsiteURL != "" {
		fmt.Fprintf(&b, "Website: %s\n", sanitize(req.WebsiteURL, model.MaxWebsiteURLLen))
	}
	if req.AdditionalContext != "" {
		fmt.Fprintf(&b, "Additional context from the owner: %s\n", sanitize(req.AdditionalContext, model.MaxContextLen))
	}

	if scraped != nil {
		b.WriteString("\nWebsite scan results (measured, treat as ground truth):\n")
		writeScrapeSummary(&b, scraped)
	}

	return b.String()
}

// writeScrapeSummary renders the human-readable scrape block embedded in
// the prompt when scrape data is available.
func writeScrapeSummary(b *strings.Builder, data *model.ScrapedData) {
	if ps := data.PageSpeed; ps != nil {
		fmt.Fprintf(b, "- PageSpeed (mobile): performance %d, SEO %d, accessibility %d\n",
			ps.Performance, ps.SEO, ps.Accessibility)
	}
	if h := data.HTML; h != nil {
		if len(h.StructuredData) > 0 {
			types := make([]string, 0, len(h.StructuredData))
			for _, e := range h.StructuredData {
				if e.Type != "" {
					types = append(types, e.Type)
				}
			}
			fmt.Fprintf(b, "- Structured data schemas found: %s\n", strings.Join(types, ", "))
		} else {
			b.WriteString("- No structured data (JSON-LD) found\n")
		}
		if h.MetaDescription != "" {
			fmt.Fprintf(b, "- Meta description present (%d characters)\n", len(h.MetaDescription))
		} else {
			b.WriteString("- Meta description missing\n")
		}
		fmt.Fprintf(b, "- Image alt-text coverage: %.0f%%\n", h.ImageAltCoverage)
		fmt.Fprintf(b, "- HTTPS: %t\n", h.HTTPS)
	}
	fmt.Fprintf(b, "- robots.txt present: %t, sitemap.xml present: %t\n",
		data.Crawlability.RobotsTxtExists, data.Crawlability.SitemapExists)
}

// sanitize strips control characters and truncates to max bytes.
func sanitize(s string, max int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > max {
		cleaned = cleaned[:max]
	}
	return cleaned
}

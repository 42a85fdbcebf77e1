// Package readiness computes the AI-readiness composite score: how well a
// website exposes machine-readable signals to AI-driven search and
// recommendation agents. Calculate is a pure function — identical input
// always yields identical output.
package readiness

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/audit-api/internal/model"
)

// Signal is one named, weighted sub-score. Weights sum to 100.
type Signal struct {
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
}

// Result is the scorer output.
type Result struct {
	OverallScore    int      `json:"overallScore"`
	Signals         []Signal `json:"signals"`
	Recommendations []string `json:"recommendations"`
}

const maxRecommendations = 3

// localBusinessTypes is the JSON-LD type family treated as a proper
// local-business schema match.
var localBusinessTypes = []string{
	"localbusiness",
	"restaurant",
	"cafeorcoffeeshop",
	"foodestablishment",
	"store",
	"professionalservice",
	"medicalbusiness",
	"healthandbeautybusiness",
	"beautysalon",
	"automotivebusiness",
	"autorepair",
	"realestateagent",
	"exercisegym",
	"homeandconstructionbusiness",
}

// Calculate scores the scraped data across six weighted signals and derives
// at most three prioritized recommendations.
func Calculate(data model.ScrapedData) Result {
	signals := []Signal{
		{Name: "Structured Data", Weight: 25, Score: scoreStructuredData(data.HTML), MaxScore: 100},
		{Name: "Semantic HTML", Weight: 20, Score: scoreSemanticHTML(data.HTML), MaxScore: 100},
		{Name: "Meta Descriptions", Weight: 15, Score: scoreMeta(data.HTML), MaxScore: 100},
		{Name: "Crawlability", Weight: 15, Score: scoreCrawlability(data.Crawlability), MaxScore: 100},
		{Name: "Performance", Weight: 15, Score: passthrough(data.PageSpeed, func(p *model.PageSpeedData) int { return p.Performance }), MaxScore: 100},
		{Name: "Accessibility", Weight: 10, Score: passthrough(data.PageSpeed, func(p *model.PageSpeedData) int { return p.Accessibility }), MaxScore: 100},
	}

	return Result{
		OverallScore:    WeightedOverall(signals),
		Signals:         signals,
		Recommendations: recommend(signals, data),
	}
}

// WeightedOverall computes round(Σ score×weight / 100).
func WeightedOverall(signals []Signal) int {
	sum := 0.0
	for _, s := range signals {
		sum += float64(s.Score) * float64(s.Weight)
	}
	return int(math.Round(sum / 100))
}

func scoreStructuredData(h *model.HTMLData) int {
	if h == nil || len(h.StructuredData) == 0 {
		return 0
	}

	score := 40

	var hasName, hasAddress, hasPhone, hasHours, typeMatch bool
	for _, e := range h.StructuredData {
		hasName = hasName || e.HasName
		hasAddress = hasAddress || e.HasAddress
		hasPhone = hasPhone || e.HasPhone
		hasHours = hasHours || e.HasHours
		typeMatch = typeMatch || isLocalBusinessType(e.Type)
	}

	if typeMatch {
		score += 20
	}
	for _, present := range []bool{hasName, hasAddress, hasPhone, hasHours} {
		if present {
			score += 10
		}
	}

	return cap100(score)
}

func isLocalBusinessType(t string) bool {
	lower := strings.ToLower(strings.TrimSpace(t))
	for _, lb := range localBusinessTypes {
		if lower == lb {
			return true
		}
	}
	return strings.HasSuffix(lower, "business")
}

func scoreSemanticHTML(h *model.HTMLData) int {
	if h == nil {
		return 0
	}

	score := 0
	switch {
	case h.Headings.H1 == 1:
		score += 30
	case h.Headings.H1 > 0:
		score += 15
	}
	if h.Headings.H2 > 0 {
		score += 20
	}
	if h.Headings.ProperHierarchy {
		score += 20
	}

	switch {
	case h.ImageAltCoverage >= 90:
		score += 30
	case h.ImageAltCoverage >= 70:
		score += 20
	case h.ImageAltCoverage >= 50:
		score += 10
	}

	return cap100(score)
}

func scoreMeta(h *model.HTMLData) int {
	if h == nil {
		return 0
	}

	score := 0
	if h.Title != "" {
		score += 25
	}
	if h.MetaDescription != "" {
		score += 25
		if l := len(h.MetaDescription); l >= 120 && l <= 160 {
			score += 15
		}
	}
	if h.OGTitle != "" || h.OGDescription != "" || h.OGImage != "" {
		score += 20
	}
	if h.HTTPS {
		score += 15
	}

	return cap100(score)
}

func scoreCrawlability(c model.CrawlabilityData) int {
	score := 0
	if c.RobotsTxtExists {
		score += 30
	}
	if c.RobotsTxtAllowsCrawling {
		score += 30
	}
	if c.SitemapExists {
		score += 40
	}
	return score
}

// passthrough returns the sub-score when performance data exists, else a
// neutral 50.
func passthrough(p *model.PageSpeedData, pick func(*model.PageSpeedData) int) int {
	if p == nil {
		return 50
	}
	return cap100(pick(p))
}

// recommend walks signals ascending by score and emits the first specific
// piece of advice each weak signal triggers, capped at three. A signal
// whose score triggers nothing is skipped.
func recommend(signals []Signal, data model.ScrapedData) []string {
	ordered := make([]Signal, len(signals))
	copy(ordered, signals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score < ordered[j].Score
	})

	var recs []string
	for _, s := range ordered {
		if len(recs) >= maxRecommendations {
			break
		}
		if advice := adviceFor(s, data); advice != "" {
			recs = append(recs, advice)
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Your website is already well optimized for AI discovery — keep content fresh and accurate.")
	}
	return recs
}

func adviceFor(s Signal, data model.ScrapedData) string {
	h := data.HTML

	switch s.Name {
	case "Structured Data":
		if h == nil || len(h.StructuredData) == 0 {
			return "Add JSON-LD structured data describing your business (LocalBusiness schema with name, address, phone, and hours)."
		}
		if s.Score < 70 {
			return "Expand your structured data to include address, phone number, and opening hours."
		}
	case "Semantic HTML":
		if h == nil {
			return ""
		}
		if h.Headings.H1 != 1 {
			return "Use exactly one H1 heading that names your business and main service."
		}
		if h.ImageAltCoverage < 70 {
			return "Add descriptive alt text to your images so AI systems can understand them."
		}
		if s.Score < 60 {
			return "Improve heading structure: organize content into H2 sections under a single H1."
		}
	case "Meta Descriptions":
		if h == nil {
			return ""
		}
		if h.MetaDescription == "" {
			return "Write a meta description of 120-160 characters summarizing your business and location."
		}
		if l := len(h.MetaDescription); l < 120 || l > 160 {
			return "Adjust your meta description to the ideal 120-160 character range."
		}
		if h.OGTitle == "" && h.OGDescription == "" && h.OGImage == "" {
			return "Add Open Graph tags so link previews and AI agents pick up your branding."
		}
	case "Crawlability":
		if !data.Crawlability.RobotsTxtAllowsCrawling {
			return "Your robots.txt blocks crawlers — allow indexing so AI search tools can read your site."
		}
		if !data.Crawlability.SitemapExists {
			return "Publish a sitemap.xml to help crawlers discover all of your pages."
		}
		if !data.Crawlability.RobotsTxtExists {
			return "Add a robots.txt file to make your crawl permissions explicit."
		}
	case "Performance":
		if s.Score < 50 {
			return "Improve mobile page speed — slow pages get crawled less and ranked lower."
		}
	case "Accessibility":
		if s.Score < 50 {
			return "Fix accessibility issues — accessible markup doubles as machine-readable structure."
		}
	}
	return ""
}

func cap100(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

package model

// ScrapedData is the merged result of one scrape pass over a website.
// Each sub-result is independently nullable: partial data is an expected
// state, not an error. Created per request, never persisted.
type ScrapedData struct {
	HTML         *HTMLData        `json:"html,omitempty"`
	PageSpeed    *PageSpeedData   `json:"pageSpeed,omitempty"`
	Crawlability CrawlabilityData `json:"crawlability"`
}

// HTMLData holds structured SEO signals parsed from a single page.
type HTMLData struct {
	Title            string                `json:"title"`
	MetaDescription  string                `json:"metaDescription"`
	OGTitle          string                `json:"ogTitle"`
	OGDescription    string                `json:"ogDescription"`
	OGImage          string                `json:"ogImage"`
	StructuredData   []StructuredDataEntry `json:"structuredData"`
	Headings         HeadingCounts         `json:"headings"`
	ImageAltCoverage float64               `json:"imageAltCoverage"` // percent, 100 when no images
	InternalLinks    int                   `json:"internalLinks"`
	ExternalLinks    int                   `json:"externalLinks"`
	HTTPS            bool                  `json:"https"`
}

// StructuredDataEntry summarizes one JSON-LD object found on the page.
type StructuredDataEntry struct {
	Type       string `json:"type"`
	HasName    bool   `json:"hasName"`
	HasAddress bool   `json:"hasAddress"`
	HasPhone   bool   `json:"hasPhone"`
	HasHours   bool   `json:"hasHours"`
}

// HeadingCounts tracks the page's heading structure. ProperHierarchy is
// true when there is exactly one h1 and any h3 is accompanied by an h2.
type HeadingCounts struct {
	H1              int  `json:"h1"`
	H2              int  `json:"h2"`
	H3              int  `json:"h3"`
	ProperHierarchy bool `json:"properHierarchy"`
}

// PageSpeedData holds normalized sub-scores from the performance API.
type PageSpeedData struct {
	Performance   int      `json:"performance"`
	SEO           int      `json:"seo"`
	Accessibility int      `json:"accessibility"`
	LCPMs         *float64 `json:"lcpMs,omitempty"`
	CLS           *float64 `json:"cls,omitempty"`
}

// CrawlabilityData reports robots.txt and sitemap.xml findings.
type CrawlabilityData struct {
	RobotsTxtExists         bool `json:"robotsTxtExists"`
	RobotsTxtAllowsCrawling bool `json:"robotsTxtAllowsCrawling"`
	SitemapExists           bool `json:"sitemapExists"`
}

// NeutralCrawlability is the degraded default used when the crawlability
// check itself fails: assume crawling is allowed, claim nothing else.
func NeutralCrawlability() CrawlabilityData {
	return CrawlabilityData{RobotsTxtExists: false, RobotsTxtAllowsCrawling: true, SitemapExists: false}
}

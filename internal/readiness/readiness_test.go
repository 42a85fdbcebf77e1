package readiness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/audit-api/internal/model"
)

func richScrape() model.ScrapedData {
	lcp := 1800.0
	cls := 0.05
	return model.ScrapedData{
		HTML: &model.HTMLData{
			Title:           "Joe's Pizza — Austin's Favorite Wood-Fired Pizzeria",
			MetaDescription: "Joe's Pizza serves wood-fired Neapolitan pizza in downtown Austin. Dine in, take out, or order delivery seven days a week from 11am to 10pm daily.",
			OGTitle:         "Joe's Pizza",
			StructuredData: []model.StructuredDataEntry{
				{Type: "Restaurant", HasName: true, HasAddress: true, HasPhone: true, HasHours: true},
			},
			Headings:         model.HeadingCounts{H1: 1, H2: 3, H3: 4, ProperHierarchy: true},
			ImageAltCoverage: 95,
			HTTPS:            true,
		},
		PageSpeed: &model.PageSpeedData{
			Performance:   88,
			SEO:           92,
			Accessibility: 85,
			LCPMs:         &lcp,
			CLS:           &cls,
		},
		Crawlability: model.CrawlabilityData{
			RobotsTxtExists:         true,
			RobotsTxtAllowsCrawling: true,
			SitemapExists:           true,
		},
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	data := richScrape()
	first := Calculate(data)
	second := Calculate(data)
	assert.Equal(t, first, second)
}

func TestCalculate_WeightsSumTo100(t *testing.T) {
	res := Calculate(richScrape())
	sum := 0
	for _, s := range res.Signals {
		sum += s.Weight
		assert.Equal(t, 100, s.MaxScore)
	}
	assert.Equal(t, 100, sum)
	assert.Len(t, res.Signals, 6)
}

func TestWeightedOverall_UniformScores(t *testing.T) {
	signals := []Signal{
		{Weight: 25, Score: 80},
		{Weight: 20, Score: 80},
		{Weight: 15, Score: 80},
		{Weight: 15, Score: 80},
		{Weight: 15, Score: 80},
		{Weight: 10, Score: 80},
	}
	assert.Equal(t, 80, WeightedOverall(signals))
}

func TestWeightedOverall_Rounds(t *testing.T) {
	signals := []Signal{
		{Weight: 50, Score: 1},
		{Weight: 50, Score: 0},
	}
	// 0.5 rounds up, not truncates.
	assert.Equal(t, 1, WeightedOverall(signals))
}

func TestCalculate_NoScrapedHTML(t *testing.T) {
	res := Calculate(model.ScrapedData{Crawlability: model.NeutralCrawlability()})

	for _, s := range res.Signals {
		switch s.Name {
		case "Structured Data", "Semantic HTML", "Meta Descriptions":
			assert.Equal(t, 0, s.Score, s.Name)
		case "Performance", "Accessibility":
			// Missing pagespeed data is neutral, not zero.
			assert.Equal(t, 50, s.Score, s.Name)
		case "Crawlability":
			assert.Equal(t, 30, s.Score, s.Name)
		}
	}
}

func TestCalculate_RecommendationsCapped(t *testing.T) {
	// Everything weak: lots of advice triggers, only three survive.
	data := model.ScrapedData{
		HTML: &model.HTMLData{
			Headings:         model.HeadingCounts{H1: 0},
			ImageAltCoverage: 10,
		},
		Crawlability: model.CrawlabilityData{RobotsTxtAllowsCrawling: false},
	}

	res := Calculate(data)
	require.NotEmpty(t, res.Recommendations)
	assert.LessOrEqual(t, len(res.Recommendations), 3)
}

func TestCalculate_WeakestSignalRecommendedFirst(t *testing.T) {
	// Structured data absent (weight 25, score 0) must head the list.
	data := richScrape()
	data.HTML.StructuredData = nil

	res := Calculate(data)
	require.NotEmpty(t, res.Recommendations)
	assert.Contains(t, res.Recommendations[0], "JSON-LD")
}

func TestCalculate_WellOptimizedFallback(t *testing.T) {
	res := Calculate(richScrape())
	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "already well optimized")
}

func TestScoreStructuredData(t *testing.T) {
	t.Run("full local business entry", func(t *testing.T) {
		h := &model.HTMLData{StructuredData: []model.StructuredDataEntry{
			{Type: "LocalBusiness", HasName: true, HasAddress: true, HasPhone: true, HasHours: true},
		}}
		assert.Equal(t, 100, scoreStructuredData(h))
	})

	t.Run("generic schema without fields", func(t *testing.T) {
		h := &model.HTMLData{StructuredData: []model.StructuredDataEntry{{Type: "WebSite"}}}
		assert.Equal(t, 40, scoreStructuredData(h))
	})

	t.Run("type suffix match", func(t *testing.T) {
		h := &model.HTMLData{StructuredData: []model.StructuredDataEntry{{Type: "SportingGoodsBusiness"}}}
		assert.Equal(t, 60, scoreStructuredData(h))
	})

	t.Run("fields merged across entries", func(t *testing.T) {
		h := &model.HTMLData{StructuredData: []model.StructuredDataEntry{
			{Type: "WebSite", HasName: true},
			{Type: "Restaurant", HasAddress: true},
		}}
		assert.Equal(t, 80, scoreStructuredData(h))
	})

	t.Run("none", func(t *testing.T) {
		assert.Equal(t, 0, scoreStructuredData(&model.HTMLData{}))
		assert.Equal(t, 0, scoreStructuredData(nil))
	})
}

func TestScoreSemanticHTML(t *testing.T) {
	tests := []struct {
		name string
		html model.HTMLData
		want int
	}{
		{
			name: "perfect page",
			html: model.HTMLData{
				Headings:         model.HeadingCounts{H1: 1, H2: 2, ProperHierarchy: true},
				ImageAltCoverage: 100,
			},
			want: 100,
		},
		{
			name: "multiple h1s",
			html: model.HTMLData{
				Headings:         model.HeadingCounts{H1: 3, H2: 2, ProperHierarchy: false},
				ImageAltCoverage: 100,
			},
			want: 65,
		},
		{
			name: "mid alt coverage",
			html: model.HTMLData{
				Headings:         model.HeadingCounts{H1: 1, H2: 1, ProperHierarchy: true},
				ImageAltCoverage: 75,
			},
			want: 90,
		},
		{
			name: "bare page",
			html: model.HTMLData{ImageAltCoverage: 0},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreSemanticHTML(&tt.html))
		})
	}
}

func TestScoreMeta_DescriptionLengthBonus(t *testing.T) {
	short := &model.HTMLData{MetaDescription: "too short"}
	assert.Equal(t, 25, scoreMeta(short))

	ideal := &model.HTMLData{MetaDescription: strings.Repeat("a", 140)}
	assert.Equal(t, 40, scoreMeta(ideal))
}

func TestScoreCrawlability(t *testing.T) {
	assert.Equal(t, 100, scoreCrawlability(model.CrawlabilityData{RobotsTxtExists: true, RobotsTxtAllowsCrawling: true, SitemapExists: true}))
	assert.Equal(t, 30, scoreCrawlability(model.NeutralCrawlability()))
	assert.Equal(t, 0, scoreCrawlability(model.CrawlabilityData{}))
}

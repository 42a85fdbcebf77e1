// Package audit orchestrates the audit pipeline: scrape, model call,
// response normalization, readiness scoring, and lead persistence.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/audit-api/internal/lead"
	"github.com/sells-group/audit-api/internal/model"
	"github.com/sells-group/audit-api/internal/prompt"
	"github.com/sells-group/audit-api/internal/readiness"
	"github.com/sells-group/audit-api/pkg/llm"
)

// Sentinel errors let the HTTP layer choose a status without seeing any
// upstream detail.
var (
	ErrNotConfigured = eris.New("audit: model api key not configured")
	ErrModelTimeout  = eris.New("audit: model call timed out")
	ErrModelFailed   = eris.New("audit: model call failed")
	ErrBadReport     = eris.New("audit: model returned an unusable report")
)

// Scraper collects website signals. Scraping is best-effort: it returns
// nil instead of failing and never blocks report generation.
type Scraper interface {
	ScrapeWebsite(ctx context.Context, url string) *model.ScrapedData
}

// Config holds the pipeline's model settings.
type Config struct {
	Configured   bool // whether the model API key is present
	Model        string
	MaxTokens    int
	Temperature  float64
	ModelTimeout time.Duration
}

// Input is one audit request plus its caller identity.
type Input struct {
	Request model.AuditRequest
	IP      string
}

// Service runs the audit pipeline. The request is assumed validated by the
// caller; everything from the scrape stage onward records exactly one lead.
type Service struct {
	llm     llm.Client
	scraper Scraper
	leads   lead.Store
	cfg     Config
}

// NewService creates a Service.
func NewService(client llm.Client, scraper Scraper, leads lead.Store, cfg Config) *Service {
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 300 * time.Second
	}
	return &Service{llm: client, scraper: scraper, leads: leads, cfg: cfg}
}

// Run executes the pipeline for one validated request.
func (s *Service) Run(ctx context.Context, in Input) (*model.AuditReport, error) {
	if !s.cfg.Configured {
		zap.L().Error("audit: model api key not configured")
		return nil, ErrNotConfigured
	}

	start := time.Now()
	log := zap.L().With(
		zap.String("business", in.Request.BusinessName),
		zap.String("city", in.Request.City),
	)

	// Scrape phase: best-effort, never fails the request.
	var scraped *model.ScrapedData
	if in.Request.WebsiteURL != "" && s.scraper != nil {
		scraped = s.scraper.ScrapeWebsite(ctx, in.Request.WebsiteURL)
	}

	userPrompt := prompt.Build(in.Request, scraped)

	mctx, cancel := context.WithTimeout(ctx, s.cfg.ModelTimeout)
	defer cancel()

	temp := s.cfg.Temperature
	resp, err := s.llm.Complete(mctx, llm.Request{
		Model:       s.cfg.Model,
		System:      prompt.System,
		Prompt:      userPrompt,
		Temperature: &temp,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		if eris.Is(err, context.DeadlineExceeded) {
			s.recordFailure(ctx, in, scraped, model.LeadStatusTimeout, "Model call timed out", start)
			return nil, eris.Wrap(ErrModelTimeout, "audit: run")
		}
		log.Error("audit: model call failed", zap.Error(err))
		s.recordFailure(ctx, in, scraped, model.LeadStatusError, "Model API call failed", start)
		return nil, eris.Wrap(ErrModelFailed, "audit: run")
	}

	report, failMsg := parseReport(resp.Text)
	if report == nil {
		log.Error("audit: unusable model response", zap.String("reason", failMsg))
		s.recordFailure(ctx, in, scraped, model.LeadStatusError, failMsg, start)
		return nil, eris.Wrap(ErrBadReport, "audit: run")
	}

	var readinessScore *int
	if scraped != nil {
		r := readiness.Calculate(*scraped)
		report.Categories = append(report.Categories, readinessCategory(r))
		readinessScore = &r.OverallScore
	}

	rec := s.baseLead(in, scraped, start)
	rec.Status = model.LeadStatusSuccess
	rec.OverallScore = &report.OverallScore
	rec.AIReadinessScore = readinessScore
	s.persist(ctx, rec)

	log.Info("audit: complete",
		zap.Int("overall_score", report.OverallScore),
		zap.Bool("scraped", scraped != nil),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// readinessCategory converts a readiness result into the report category
// appended when scrape data exists.
func readinessCategory(r readiness.Result) model.CategoryResult {
	priority := model.PriorityLow
	switch {
	case r.OverallScore < 50:
		priority = model.PriorityHigh
	case r.OverallScore < 75:
		priority = model.PriorityMedium
	}

	items := make([]model.ActionItem, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		items = append(items, model.ActionItem{
			Action:          rec,
			Priority:        priority,
			EstimatedImpact: "Better visibility in AI-driven search and assistants",
		})
	}

	return model.CategoryResult{
		Category:    "AI Readiness",
		Score:       r.OverallScore,
		Emoji:       "🤖",
		ActionItems: items,
	}
}

func (s *Service) baseLead(in Input, scraped *model.ScrapedData, start time.Time) model.Lead {
	return model.Lead{
		ID:                   uuid.NewString(),
		Timestamp:            time.Now().UTC(),
		IP:                   in.IP,
		BusinessName:         in.Request.BusinessName,
		City:                 in.Request.City,
		BusinessType:         in.Request.BusinessType,
		WebsiteURL:           in.Request.WebsiteURL,
		DurationMs:           time.Since(start).Milliseconds(),
		ScrapedDataAvailable: scraped != nil,
	}
}

func (s *Service) recordFailure(ctx context.Context, in Input, scraped *model.ScrapedData, status model.LeadStatus, msg string, start time.Time) {
	rec := s.baseLead(in, scraped, start)
	rec.Status = status
	rec.ErrorMessage = msg
	s.persist(ctx, rec)
}

// persist appends the lead; a persistence failure is logged, never
// propagated to the caller.
func (s *Service) persist(ctx context.Context, rec model.Lead) {
	if s.leads == nil {
		return
	}
	if err := s.leads.Append(ctx, rec); err != nil {
		zap.L().Error("audit: persist lead failed", zap.String("lead_id", rec.ID), zap.Error(err))
	}
}

package main

import (
	"time"

	"github.com/sells-group/audit-api/internal/audit"
	"github.com/sells-group/audit-api/internal/config"
	"github.com/sells-group/audit-api/internal/lead"
	"github.com/sells-group/audit-api/internal/scrape"
	"github.com/sells-group/audit-api/pkg/llm"
	"github.com/sells-group/audit-api/pkg/pagespeed"
)

// newAuditService assembles the pipeline from configuration. Every
// collaborator is constructed here and injected; nothing is global.
func newAuditService(cfg *config.Config) *audit.Service {
	orchestrator := scrape.NewOrchestrator(
		scrape.NewHTMLScraper(time.Duration(cfg.Scrape.HTMLTimeoutSecs)*time.Second),
		pagespeed.NewClient(cfg.PageSpeed.Key,
			pagespeed.WithBaseURL(cfg.PageSpeed.BaseURL),
			pagespeed.WithTimeout(time.Duration(cfg.PageSpeed.TimeoutSecs)*time.Second),
		),
		scrape.NewCrawlabilityChecker(time.Duration(cfg.Scrape.CrawlTimeoutSecs)*time.Second),
	)

	return audit.NewService(
		newLLMClient(cfg.LLM),
		orchestrator,
		lead.NewFileStore(cfg.Leads.Path),
		audit.Config{
			Configured:   cfg.LLM.Key != "",
			Model:        cfg.LLM.Model,
			MaxTokens:    cfg.LLM.MaxTokens,
			Temperature:  cfg.LLM.Temperature,
			ModelTimeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		},
	)
}

func newLLMClient(cfg config.LLMConfig) llm.Client {
	if cfg.Provider == "anthropic" {
		return llm.NewAnthropicClient(cfg.Key)
	}
	return llm.NewChatClient(cfg.Key, llm.WithBaseURL(cfg.BaseURL))
}

package model

import "time"

// LeadStatus is the terminal outcome of one audit attempt.
type LeadStatus string

const (
	LeadStatusSuccess LeadStatus = "success"
	LeadStatusError   LeadStatus = "error"
	LeadStatusTimeout LeadStatus = "timeout"
)

// Lead is one persisted record of an audit attempt and its outcome.
// Leads are appended to the log once per request and never mutated.
type Lead struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	IP        string    `json:"ip"`

	BusinessName string `json:"businessName"`
	City         string `json:"city"`
	BusinessType string `json:"businessType"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`

	Status               LeadStatus `json:"status"`
	OverallScore         *int       `json:"overallScore,omitempty"`
	ErrorMessage         string     `json:"errorMessage,omitempty"`
	DurationMs           int64      `json:"durationMs"`
	ScrapedDataAvailable bool       `json:"scrapedDataAvailable"`
	AIReadinessScore     *int       `json:"aiReadinessScore,omitempty"`
}

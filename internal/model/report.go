package model

import "math"

// Action priorities accepted in a report. Anything else is coerced to medium.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// AuditReport is the externally visible result of one audit.
type AuditReport struct {
	OverallScore       int              `json:"overallScore"`
	Summary            string           `json:"summary"`
	Categories         []CategoryResult `json:"categories"`
	QuickWin           string           `json:"quickWin"`
	TopPriorities      []string         `json:"topPriorities"`
	CompetitiveInsight string           `json:"competitiveInsight"`
}

// CategoryResult is one scored category within a report.
type CategoryResult struct {
	Category    string       `json:"category"`
	Score       int          `json:"score"`
	Emoji       string       `json:"emoji"`
	ActionItems []ActionItem `json:"actionItems"`
}

// ActionItem is a single recommended action within a category.
type ActionItem struct {
	Action          string `json:"action"`
	Priority        string `json:"priority"`
	EstimatedImpact string `json:"estimatedImpact"`
}

// ClampScore rounds a raw score and clamps it into [0, 100].
func ClampScore(raw float64) int {
	s := int(math.Round(raw))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// NormalizePriority coerces an arbitrary priority value into the valid set.
// Invalid values become medium rather than failing the report.
func NormalizePriority(p string) string {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

package audit

import (
	"encoding/json"

	"github.com/sells-group/audit-api/internal/model"
)

// Failure messages recorded on the lead when the model response cannot be
// turned into a report.
const (
	errNoJSON        = "No JSON in response"
	errInvalidJSON   = "Invalid JSON in response"
	errInvalidFormat = "Invalid report format"
)

// Raw report shapes tolerate the model's looseness: scores may be floats
// or out of range, priorities may be anything. Sanitization coerces them.
type rawReport struct {
	OverallScore       float64       `json:"overallScore"`
	Summary            string        `json:"summary"`
	Categories         []rawCategory `json:"categories"`
	QuickWin           string        `json:"quickWin"`
	TopPriorities      []string      `json:"topPriorities"`
	CompetitiveInsight string        `json:"competitiveInsight"`
}

type rawCategory struct {
	Category    string      `json:"category"`
	Score       float64     `json:"score"`
	Emoji       string      `json:"emoji"`
	ActionItems []rawAction `json:"actionItems"`
}

type rawAction struct {
	Action          string `json:"action"`
	Priority        any    `json:"priority"`
	EstimatedImpact string `json:"estimatedImpact"`
}

// parseReport extracts, validates and sanitizes the report embedded in the
// model's raw text. On failure it returns a lead-appropriate message.
func parseReport(text string) (*model.AuditReport, string) {
	obj, ok := extractJSONObject(text)
	if !ok {
		return nil, errNoJSON
	}

	// Minimal shape check before the typed decode: overallScore must be
	// numeric and categories must be a list.
	var shape map[string]any
	if err := json.Unmarshal([]byte(obj), &shape); err != nil {
		return nil, errInvalidJSON
	}
	if _, ok := shape["overallScore"].(float64); !ok {
		return nil, errInvalidFormat
	}
	if _, ok := shape["categories"].([]any); !ok {
		return nil, errInvalidFormat
	}

	var raw rawReport
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, errInvalidFormat
	}

	return sanitizeReport(raw), ""
}

// sanitizeReport clamps every score into [0,100] and coerces invalid
// action priorities to medium. Out-of-range model output is corrected,
// never rejected.
func sanitizeReport(raw rawReport) *model.AuditReport {
	report := &model.AuditReport{
		OverallScore:       model.ClampScore(raw.OverallScore),
		Summary:            raw.Summary,
		QuickWin:           raw.QuickWin,
		TopPriorities:      raw.TopPriorities,
		CompetitiveInsight: raw.CompetitiveInsight,
		Categories:         make([]model.CategoryResult, 0, len(raw.Categories)),
	}

	for _, rc := range raw.Categories {
		cat := model.CategoryResult{
			Category:    rc.Category,
			Score:       model.ClampScore(rc.Score),
			Emoji:       rc.Emoji,
			ActionItems: make([]model.ActionItem, 0, len(rc.ActionItems)),
		}
		for _, ra := range rc.ActionItems {
			priority, _ := ra.Priority.(string)
			cat.ActionItems = append(cat.ActionItems, model.ActionItem{
				Action:          ra.Action,
				Priority:        model.NormalizePriority(priority),
				EstimatedImpact: ra.EstimatedImpact,
			})
		}
		report.Categories = append(report.Categories, cat)
	}

	return report
}

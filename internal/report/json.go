package report

import (
	"encoding/json"

	"github.com/agentready/arv/internal/registry"
)

// JSON output structs. These are the machine-parseable RunReport shape that
// CI pipelines and dashboards consume; field names are part of the contract.

type jsonReport struct {
	Environment string          `json:"environment"`
	Verdict     string          `json:"verdict"`
	Summary     jsonSummary     `json:"summary"`
	Checks      []jsonOutcome   `json:"checks"`
	Violations  []jsonViolation `json:"violations"`
}

type jsonSummary struct {
	TotalChecks      int            `json:"totalChecks"`
	Passed           int            `json:"passedCount"`
	Failed           int            `json:"failedCount"`
	Skipped          int            `json:"skippedCount"`
	ViolationsByRule map[string]int `json:"violationsByRule"`
	Blocking         int            `json:"blockingViolations"`
	Warnings         int            `json:"warningViolations"`
}

// jsonOutcome deliberately omits the observed run duration: report bytes
// must not change between runs over unchanged input.
type jsonOutcome struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Required    bool   `json:"required"`
	Passed      bool   `json:"passed"`
	Skipped     bool   `json:"skipped,omitempty"`
	Details     string `json:"details,omitempty"`
	ExitCode    *int   `json:"exitCode,omitempty"`
}

type jsonViolation struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId"`
	Message  string `json:"message"`
	Line     int    `json:"lineNumber,omitempty"`
	Severity string `json:"severity"`
}

// MarshalJSONReport renders the report as indented JSON. Map keys are sorted
// by the encoder and slices keep report order, so output is deterministic.
func MarshalJSONReport(r *RunReport) ([]byte, error) {
	doc := jsonReport{
		Environment: string(r.Environment),
		Verdict:     string(r.Verdict),
		Summary: jsonSummary{
			TotalChecks:      r.Summary.TotalChecks,
			Passed:           r.Summary.PassedCount,
			Failed:           r.Summary.FailedCount,
			Skipped:          r.Summary.SkippedCount,
			ViolationsByRule: r.Summary.ViolationsByRule,
			Blocking:         r.Summary.BlockingCount,
			Warnings:         r.Summary.WarningCount,
		},
		Checks:     []jsonOutcome{},
		Violations: []jsonViolation{},
	}

	byCategory := r.OutcomesByCategory()
	for _, cat := range registry.KnownCategories {
		for _, o := range byCategory[cat] {
			jo := jsonOutcome{
				ID:          o.Check.ID,
				Description: o.Check.Description,
				Category:    string(o.Check.Category),
				Required:    o.Check.Required,
				Passed:      o.Passed,
				Skipped:     o.Skipped,
				Details:     o.Details,
			}
			if !o.Skipped {
				code := o.ExitCode
				jo.ExitCode = &code
			}
			doc.Checks = append(doc.Checks, jo)
		}
	}

	for _, v := range r.Violations {
		doc.Violations = append(doc.Violations, jsonViolation{
			FilePath: v.FilePath,
			RuleID:   v.RuleID,
			Message:  v.Message,
			Line:     v.Line,
			Severity: string(v.Severity),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

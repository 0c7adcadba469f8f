// Package report aggregates dynamic check outcomes and static violations
// into one deterministic run report and derives the final verdict.
package report

import (
	"sort"

	"github.com/agentready/arv/internal/analyzer"
	"github.com/agentready/arv/internal/executor"
	"github.com/agentready/arv/internal/registry"
)

// Verdict is the final pass/fail decision of one run.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Summary holds the derived counts of a run.
type Summary struct {
	TotalChecks      int
	PassedCount      int
	FailedCount      int
	SkippedCount     int
	ViolationsByRule map[string]int
	BlockingCount    int
	WarningCount     int
}

// RunReport is the complete result of one engine run. Outcomes keep registry
// definition order; violations are sorted by rule id, then file path, then
// line, so repeated runs over unchanged input render byte-identically.
type RunReport struct {
	Environment registry.Environment
	Outcomes    []executor.Outcome
	Violations  []analyzer.Violation
	Summary     Summary
	Verdict     Verdict
}

// Aggregate builds the run report. The verdict is fail iff at least one
// required, non-skipped outcome failed, or at least one blocking violation
// exists. Optional check results and warning-severity violations never
// change the verdict.
func Aggregate(env registry.Environment, outcomes []executor.Outcome, violations []analyzer.Violation) *RunReport {
	sorted := make([]analyzer.Violation, len(violations))
	copy(sorted, violations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RuleID != sorted[j].RuleID {
			return sorted[i].RuleID < sorted[j].RuleID
		}
		if sorted[i].FilePath != sorted[j].FilePath {
			return sorted[i].FilePath < sorted[j].FilePath
		}
		return sorted[i].Line < sorted[j].Line
	})

	summary := Summary{
		TotalChecks:      len(outcomes),
		ViolationsByRule: make(map[string]int),
	}
	verdict := VerdictPass

	for _, o := range outcomes {
		switch {
		case o.Skipped:
			summary.SkippedCount++
		case o.Passed:
			summary.PassedCount++
		default:
			summary.FailedCount++
			if o.Check.Required {
				verdict = VerdictFail
			}
		}
	}

	for _, v := range sorted {
		summary.ViolationsByRule[v.RuleID]++
		if v.Severity == analyzer.SeverityBlocking {
			summary.BlockingCount++
			verdict = VerdictFail
		} else {
			summary.WarningCount++
		}
	}

	return &RunReport{
		Environment: env,
		Outcomes:    outcomes,
		Violations:  sorted,
		Summary:     summary,
		Verdict:     verdict,
	}
}

// OutcomesByCategory groups outcomes by category, preserving definition order
// inside each group. Iterate registry.KnownCategories for a stable order.
func (r *RunReport) OutcomesByCategory() map[registry.Category][]executor.Outcome {
	out := make(map[registry.Category][]executor.Outcome)
	for _, o := range r.Outcomes {
		out[o.Check.Category] = append(out[o.Check.Category], o)
	}
	return out
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/agentready/arv/internal/analyzer"
	"github.com/agentready/arv/internal/registry"
)

// WriteText renders the human-readable grouped summary. Output is grouped by
// category, then by rule id, and is byte-identical across runs on unchanged
// input. Verbose includes per-check details for passing checks too.
func WriteText(w io.Writer, r *RunReport, verbose bool) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Agent readiness verification, environment: %s\n\n", r.Environment)

	idWidth := 0
	for _, o := range r.Outcomes {
		if w := runewidth.StringWidth(o.Check.ID); w > idWidth {
			idWidth = w
		}
	}

	byCategory := r.OutcomesByCategory()
	for _, cat := range registry.KnownCategories {
		outcomes := byCategory[cat]
		if len(outcomes) == 0 {
			continue
		}
		fmt.Fprintf(&b, "[%s]\n", cat)
		for _, o := range outcomes {
			fmt.Fprintf(&b, "  %s  %s  %s\n", statusLabel(o.Passed, o.Skipped), padRight(o.Check.ID, idWidth), requirementLabel(o.Check.Required))
			if o.Details != "" && (verbose || (!o.Passed && !o.Skipped)) {
				fmt.Fprintf(&b, "        %s\n", o.Details)
			}
		}
		b.WriteString("\n")
	}

	if len(r.Violations) > 0 {
		b.WriteString("Static analysis violations:\n")
		currentRule := ""
		for _, v := range r.Violations {
			if v.RuleID != currentRule {
				currentRule = v.RuleID
				fmt.Fprintf(&b, "  [%s] (%d)\n", v.RuleID, r.Summary.ViolationsByRule[v.RuleID])
			}
			loc := v.FilePath
			if v.Line > 0 {
				loc = fmt.Sprintf("%s:%d", v.FilePath, v.Line)
			}
			marker := "FAIL"
			if v.Severity == analyzer.SeverityWarning {
				marker = "WARN"
			}
			fmt.Fprintf(&b, "    %s  %s: %s\n", marker, loc, v.Message)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Checks: %d total, %d passed, %d failed, %d skipped\n",
		r.Summary.TotalChecks, r.Summary.PassedCount, r.Summary.FailedCount, r.Summary.SkippedCount)
	fmt.Fprintf(&b, "Violations: %d blocking, %d warnings\n", r.Summary.BlockingCount, r.Summary.WarningCount)
	fmt.Fprintf(&b, "Verdict: %s\n", strings.ToUpper(string(r.Verdict)))

	_, err := io.WriteString(w, b.String())
	return err
}

func statusLabel(passed, skipped bool) string {
	switch {
	case skipped:
		return "SKIP"
	case passed:
		return "PASS"
	default:
		return "FAIL"
	}
}

func requirementLabel(required bool) string {
	if required {
		return "(required)"
	}
	return "(optional)"
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

package analyzer

import (
	"fmt"
	"strings"
)

// DirectCallRule scans agent modules for textual call patterns that indicate
// bypassing the runtime abstraction, such as calling a raw generation method
// on a model client. The scan is line-based, so it still works on files the
// parser rejected.
type DirectCallRule struct {
	patterns []string
}

var _ SourceRule = (*DirectCallRule)(nil)

// NewDirectCallRule builds the rule from the configured call patterns.
func NewDirectCallRule(opts Options) *DirectCallRule {
	return &DirectCallRule{patterns: opts.DirectCallPatterns}
}

func (*DirectCallRule) ID() string { return RuleDirectCall }

// Inspect reports the first matching line only: one finding is enough to
// send the author back to the runtime abstraction.
func (r *DirectCallRule) Inspect(m *Module) []Violation {
	if m.Role != RoleAgent {
		return nil
	}
	for i, line := range strings.Split(string(m.Source), "\n") {
		for _, pattern := range r.patterns {
			if strings.Contains(line, pattern) {
				return []Violation{{
					FilePath: m.RelPath,
					RuleID:   RuleDirectCall,
					Message:  fmt.Sprintf("direct model call %q bypasses the agent runtime", pattern),
					Line:     i + 1,
					Severity: SeverityBlocking,
				}}
			}
		}
	}
	return nil
}

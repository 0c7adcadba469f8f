package analyzer

import (
	"fmt"
	"strings"
)

// ProhibitedDependencyRule flags imports of alternative agent frameworks and
// direct model-client SDKs. Agents must go through the platform runtime, not
// bring their own.
type ProhibitedDependencyRule struct {
	denylist []string
}

var _ SourceRule = (*ProhibitedDependencyRule)(nil)

// NewProhibitedDependencyRule builds the rule from the configured denylist.
func NewProhibitedDependencyRule(opts Options) *ProhibitedDependencyRule {
	return &ProhibitedDependencyRule{denylist: opts.ProhibitedImports}
}

func (*ProhibitedDependencyRule) ID() string { return RuleDepProhibited }

// Inspect emits one violation per prohibited import statement.
func (r *ProhibitedDependencyRule) Inspect(m *Module) []Violation {
	if m.Tree == nil {
		return nil
	}
	var out []Violation
	for _, imp := range m.Tree.Imports {
		entry := matchDenylist(imp.Path, r.denylist)
		if entry == "" {
			continue
		}
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleDepProhibited,
			Message:  fmt.Sprintf("prohibited dependency %q (matches denylist entry %q)", imp.Path, entry),
			Line:     imp.Line,
			Severity: SeverityBlocking,
		})
	}
	return out
}

// matchDenylist returns the denylist entry that importPath matches exactly or
// by path prefix, or "" if none.
func matchDenylist(importPath string, denylist []string) string {
	for _, entry := range denylist {
		if importPath == entry || strings.HasPrefix(importPath, entry+"/") {
			return entry
		}
	}
	return ""
}

package analyzer

import (
	"fmt"
	"strings"
)

// RunnerBoundaryRule enforces the proxy contract on gateway modules: a
// network-facing gateway must forward work to the remote execution endpoint,
// never import or drive the agent runtime in-process. Missing the expected
// outbound-call pattern is reported as a warning only, since some gateways
// delegate the outbound call to a helper module.
type RunnerBoundaryRule struct {
	runtimeImport     string
	runMethodPatterns []string
	outboundPatterns  []string
}

var _ SourceRule = (*RunnerBoundaryRule)(nil)

// NewRunnerBoundaryRule builds the rule from the boundary policy.
func NewRunnerBoundaryRule(opts Options) *RunnerBoundaryRule {
	return &RunnerBoundaryRule{
		runtimeImport:     opts.RuntimeImport,
		runMethodPatterns: opts.RunMethodPatterns,
		outboundPatterns:  opts.OutboundPatterns,
	}
}

func (*RunnerBoundaryRule) ID() string { return RuleRunnerBoundary }

func (r *RunnerBoundaryRule) Inspect(m *Module) []Violation {
	if m.Role != RoleGateway {
		return nil
	}

	var out []Violation

	if m.Tree != nil {
		for _, imp := range m.Tree.Imports {
			if imp.Path == r.runtimeImport || strings.HasPrefix(imp.Path, r.runtimeImport+"/") {
				out = append(out, Violation{
					FilePath: m.RelPath,
					RuleID:   RuleRunnerBoundary,
					Message:  fmt.Sprintf("gateway imports the agent runtime %q; gateways must call the remote execution endpoint", imp.Path),
					Line:     imp.Line,
					Severity: SeverityBlocking,
				})
			}
		}
	}

	source := string(m.Source)
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		for _, pattern := range r.runMethodPatterns {
			if strings.Contains(line, pattern) {
				out = append(out, Violation{
					FilePath: m.RelPath,
					RuleID:   RuleRunnerBoundary,
					Message:  fmt.Sprintf("gateway runs agents in-process via %q", pattern),
					Line:     i + 1,
					Severity: SeverityBlocking,
				})
				break
			}
		}
	}

	if !r.hasOutboundCall(source) {
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleRunnerBoundary,
			Message:  "gateway has no recognizable outbound call to the remote execution endpoint",
			Severity: SeverityWarning,
		})
	}

	return out
}

func (r *RunnerBoundaryRule) hasOutboundCall(source string) bool {
	for _, pattern := range r.outboundPatterns {
		if strings.Contains(source, pattern) {
			return true
		}
	}
	return false
}

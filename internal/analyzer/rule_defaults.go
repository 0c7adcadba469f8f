package analyzer

import (
	"fmt"
	"strings"
)

// UnsafeDefaultRule polices the default values passed to env-lookup calls in
// config modules. Capability-enabling flags must default off and safety flags
// must default on, so a missing environment variable can never widen what an
// agent is allowed to do.
type UnsafeDefaultRule struct {
	callees      []string
	flagDefaults map[string]bool
}

var _ SourceRule = (*UnsafeDefaultRule)(nil)

// NewUnsafeDefaultRule builds the rule from the flag policy table.
func NewUnsafeDefaultRule(opts Options) *UnsafeDefaultRule {
	return &UnsafeDefaultRule{
		callees:      opts.EnvLookupCallees,
		flagDefaults: opts.FlagDefaults,
	}
}

func (*UnsafeDefaultRule) ID() string { return RuleUnsafeDefault }

func (r *UnsafeDefaultRule) Inspect(m *Module) []Violation {
	if m.Role != RoleConfig || m.Tree == nil {
		return nil
	}

	var out []Violation
	for _, call := range m.Tree.Calls {
		if !r.isEnvLookup(call.Callee) {
			continue
		}
		flagName, defaultVal, ok := boolLookupArgs(call.Args)
		if !ok {
			continue
		}
		safe, policed := r.flagDefaults[flagName]
		if !policed || defaultVal == safe {
			continue
		}
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleUnsafeDefault,
			Message:  fmt.Sprintf("flag %s defaults to %t but must default to %t", flagName, defaultVal, safe),
			Line:     call.Line,
			Severity: SeverityBlocking,
		})
	}
	return out
}

// isEnvLookup matches the callee against the configured helper names, either
// exactly or by method suffix (so a wrapped receiver like cfg.GetBool still
// matches config.GetBool's suffix).
func (r *UnsafeDefaultRule) isEnvLookup(callee string) bool {
	for _, want := range r.callees {
		if callee == want {
			return true
		}
		if idx := strings.LastIndex(want, "."); idx >= 0 && strings.HasSuffix(callee, want[idx:]) {
			return true
		}
	}
	return false
}

// boolLookupArgs extracts the (flag name, bool default) pair from an
// env-lookup call's literal arguments.
func boolLookupArgs(args []Arg) (string, bool, bool) {
	if len(args) < 2 {
		return "", false, false
	}
	if args[0].Kind != ArgString || args[1].Kind != ArgBool {
		return "", false, false
	}
	return args[0].Str, args[1].Bool, true
}

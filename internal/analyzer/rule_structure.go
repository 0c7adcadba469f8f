package analyzer

import (
	"fmt"
	"strings"
)

// RequiredStructureRule verifies an agent module has the three mandated
// elements: the runtime import, the NewAgent factory function, and the
// exported Agent binding. Each missing element is its own violation so the
// report names exactly what to add.
type RequiredStructureRule struct {
	runtimeImport string
	factoryName   string
	bindingName   string
}

var _ SourceRule = (*RequiredStructureRule)(nil)

// NewRequiredStructureRule builds the rule from the mandated element names.
func NewRequiredStructureRule(opts Options) *RequiredStructureRule {
	return &RequiredStructureRule{
		runtimeImport: opts.RuntimeImport,
		factoryName:   opts.FactoryName,
		bindingName:   opts.BindingName,
	}
}

func (*RequiredStructureRule) ID() string { return RuleStructure }

func (r *RequiredStructureRule) Inspect(m *Module) []Violation {
	if m.Role != RoleAgent || m.Tree == nil {
		return nil
	}

	var out []Violation
	if !r.hasRuntimeImport(m.Tree) {
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleStructure,
			Message:  fmt.Sprintf("missing mandated runtime import %q", r.runtimeImport),
			Severity: SeverityBlocking,
		})
	}
	if !hasFunc(m.Tree, r.factoryName) {
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleStructure,
			Message:  fmt.Sprintf("missing mandated factory function %s", r.factoryName),
			Severity: SeverityBlocking,
		})
	}
	if !hasBinding(m.Tree, r.bindingName) {
		out = append(out, Violation{
			FilePath: m.RelPath,
			RuleID:   RuleStructure,
			Message:  fmt.Sprintf("missing mandated exported binding %s", r.bindingName),
			Severity: SeverityBlocking,
		})
	}
	return out
}

func (r *RequiredStructureRule) hasRuntimeImport(t *Tree) bool {
	for _, imp := range t.Imports {
		if imp.Path == r.runtimeImport || strings.HasPrefix(imp.Path, r.runtimeImport+"/") {
			return true
		}
	}
	return false
}

func hasFunc(t *Tree, name string) bool {
	for _, fn := range t.Funcs {
		if fn.Name == name {
			return true
		}
	}
	return false
}

func hasBinding(t *Tree, name string) bool {
	for _, b := range t.Bindings {
		if b.Name == name && b.Exported {
			return true
		}
	}
	return false
}

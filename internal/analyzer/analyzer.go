package analyzer

import (
	"context"
	"errors"
	"fmt"
	"go/scanner"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

// Analyzer runs a rule catalog over a discovered source tree.
type Analyzer struct {
	rules  []SourceRule
	logger *slog.Logger
}

// New builds an analyzer over the given rule catalog.
func New(rules []SourceRule, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{rules: rules, logger: logger}
}

// Analyze discovers candidate modules under root and inspects them all.
// Only a failure to discover anything at all surfaces as an error; per-file
// problems become violations so one bad file never hides the rest.
func (a *Analyzer) Analyze(ctx context.Context, root string, workers int) ([]Violation, error) {
	modules, err := Discover(root)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeModules(ctx, modules, workers), nil
}

// AnalyzeModules inspects the given modules. With workers > 1, files are
// processed on a bounded pool; per-module results are collected by index so
// output order matches discovery order regardless of scheduling.
func (a *Analyzer) AnalyzeModules(ctx context.Context, modules []DiscoveredModule, workers int) []Violation {
	perModule := make([][]Violation, len(modules))

	if workers <= 1 {
		for i, dm := range modules {
			perModule[i] = a.analyzeOne(dm)
		}
	} else {
		g, _ := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i, dm := range modules {
			g.Go(func() error {
				perModule[i] = a.analyzeOne(dm)
				return nil
			})
		}
		_ = g.Wait()
	}

	var out []Violation
	for _, vs := range perModule {
		out = append(out, vs...)
	}
	return out
}

func (a *Analyzer) analyzeOne(dm DiscoveredModule) []Violation {
	src, err := os.ReadFile(dm.Path)
	if err != nil {
		return []Violation{{
			FilePath: dm.RelPath,
			RuleID:   RuleFileError,
			Message:  fmt.Sprintf("cannot read file: %v", err),
			Severity: SeverityBlocking,
		}}
	}

	m := &Module{
		Path:    dm.Path,
		RelPath: dm.RelPath,
		Role:    dm.Role,
		Source:  src,
	}

	var out []Violation
	tree, parseErr := ParseModule(dm.Path, src)
	if parseErr != nil {
		out = append(out, Violation{
			FilePath: dm.RelPath,
			RuleID:   RuleSyntaxError,
			Message:  fmt.Sprintf("cannot parse file: %v", parseErr),
			Line:     parseErrorLine(parseErr),
			Severity: SeverityBlocking,
		})
	} else {
		m.Tree = tree
	}

	// Structural rules see a nil tree after a parse failure and return
	// nothing; textual rules still run against the raw source.
	for _, rule := range a.rules {
		out = append(out, a.runRule(rule, m)...)
	}
	return out
}

// runRule guards one rule invocation: a panicking rule yields zero
// violations and a logged warning instead of aborting the whole run.
func (a *Analyzer) runRule(rule SourceRule, m *Module) (violations []Violation) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("rule panicked, treating as no violations",
				"rule", rule.ID(), "file", m.RelPath, "panic", r)
			violations = nil
		}
	}()
	return rule.Inspect(m)
}

// parseErrorLine pulls a line number out of a go/parser error when one is
// available. Zero means the position is unknown.
func parseErrorLine(err error) int {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Pos.Line
	}
	return 0
}

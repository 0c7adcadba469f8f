package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeFlagsProhibitedImportAndMissingStructure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agents/support/agent.go", `package support

import "github.com/tmc/langchaingo/llms"

func helper() { _ = llms.CallOptions{} }
`)

	a := New(DefaultRules(DefaultOptions()), nil)
	violations, err := a.Analyze(context.Background(), root, 1)
	require.NoError(t, err)

	byRule := make(map[string]int)
	for _, v := range violations {
		require.Equal(t, "agents/support/agent.go", v.FilePath)
		byRule[v.RuleID]++
	}
	require.Equal(t, 1, byRule[RuleDepProhibited])
	require.Equal(t, 3, byRule[RuleStructure]) // import, factory, binding all missing
}

func TestAnalyzeSyntaxErrorStillRunsTextualRules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agents/x/agent.go", `package x

func broken( {
	key := "sk-abcdefghijklmnopqrstuvwxyz123456"
	client.Predict(input)
`)

	a := New(DefaultRules(DefaultOptions()), nil)
	violations, err := a.Analyze(context.Background(), root, 1)
	require.NoError(t, err)

	byRule := make(map[string]int)
	for _, v := range violations {
		byRule[v.RuleID]++
	}
	require.Equal(t, 1, byRule[RuleSyntaxError])
	require.Equal(t, 1, byRule[RuleEmbeddedSecret])
	require.Equal(t, 1, byRule[RuleDirectCall])
	// Structural rules must not fire on a nil tree.
	require.Zero(t, byRule[RuleStructure])
	require.Zero(t, byRule[RuleDepProhibited])
}

func TestAnalyzeUnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored for root")
	}
	root := t.TempDir()
	writeFile(t, root, "agents/x/agent.go", "package x\n")
	require.NoError(t, os.Chmod(filepath.Join(root, "agents/x/agent.go"), 0000))

	a := New(DefaultRules(DefaultOptions()), nil)
	violations, err := a.Analyze(context.Background(), root, 1)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	require.Equal(t, RuleFileError, violations[0].RuleID)
}

// panicRule simulates a broken rule implementation.
type panicRule struct{}

func (panicRule) ID() string                  { return "panic-rule" }
func (panicRule) Inspect(*Module) []Violation { panic("boom") }

func TestAnalyzeRecoversFromPanickingRule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agents/x/agent.go", `package x

import "github.com/tmc/langchaingo/llms"

var _ = llms.CallOptions{}
`)

	rules := append([]SourceRule{panicRule{}}, NewProhibitedDependencyRule(DefaultOptions()))
	a := New(rules, nil)

	violations, err := a.Analyze(context.Background(), root, 1)
	require.NoError(t, err)

	// The broken rule contributes nothing; the healthy rule still runs.
	require.Len(t, violations, 1)
	require.Equal(t, RuleDepProhibited, violations[0].RuleID)
}

func TestAnalyzeParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "agents/a/agent.go", "package a\n\nimport \"github.com/tmc/langchaingo\"\n\nvar _ = langchaingo.X\n")
	writeFile(t, root, "agents/b/agent.go", "package b\n")
	writeFile(t, root, "config/flags.go", "package config\n\nvar x = envutil.Bool(\"DRY_RUN\", false)\n")
	writeFile(t, root, "gateway/handler.go", "package gateway\n")

	a := New(DefaultRules(DefaultOptions()), nil)

	sequential, err := a.Analyze(context.Background(), root, 1)
	require.NoError(t, err)
	parallel, err := a.Analyze(context.Background(), root, 4)
	require.NoError(t, err)

	require.Equal(t, sequential, parallel)
	require.NotEmpty(t, sequential)
}

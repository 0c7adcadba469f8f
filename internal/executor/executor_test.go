package executor

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/agentready/arv/internal/flags"
	"github.com/agentready/arv/internal/registry"
)

func testCheck(id, command string) registry.CheckDefinition {
	return registry.CheckDefinition{
		ID:          id,
		Description: id,
		Category:    registry.CategoryTests,
		Required:    true,
		Command:     command,
	}
}

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name         string
		command      string
		wantPassed   bool
		wantExitCode int
	}{
		{name: "exit zero passes", command: "exit 0", wantPassed: true, wantExitCode: 0},
		{name: "exit seven fails", command: "exit 7", wantPassed: false, wantExitCode: 7},
		{name: "exit one fails", command: "echo broken >&2; exit 1", wantPassed: false, wantExitCode: 1},
	}

	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := runner.Run(context.Background(), testCheck("t", tt.command))
			require.Equal(t, tt.wantPassed, outcome.Passed)
			require.Equal(t, tt.wantExitCode, outcome.ExitCode)
			require.False(t, outcome.Skipped)
		})
	}
}

func TestRunFailureDetailsIncludeOutput(t *testing.T) {
	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	outcome := runner.Run(context.Background(), testCheck("t", "echo some stdout; echo some stderr >&2; exit 3"))

	require.False(t, outcome.Passed)
	require.Equal(t, 3, outcome.ExitCode)
	require.Contains(t, outcome.Details, "exit code 3")
	require.Contains(t, outcome.Details, "some stdout")
	require.Contains(t, outcome.Details, "some stderr")
}

func TestRunTruncatesLongOutput(t *testing.T) {
	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	outcome := runner.Run(context.Background(), testCheck("t", "yes x | head -c 2000; exit 5"))

	require.False(t, outcome.Passed)
	require.Contains(t, outcome.Details, "(truncated)")
	// exit code prefix + bounded stdout head, never the full 2000 bytes
	require.Less(t, len(outcome.Details), 700)
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
	}{
		{name: "two byte runes", input: strings.Repeat("é", 400), limit: 501},
		{name: "three byte runes", input: strings.Repeat("日", 400), limit: 500},
		{name: "four byte runes", input: strings.Repeat("🜁", 400), limit: 502},
		{name: "ascii unaffected", input: strings.Repeat("x", 400), limit: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := truncate(tt.input, tt.limit)
			require.True(t, utf8.ValidString(out))
			require.Contains(t, out, "(truncated)")
			require.LessOrEqual(t, len(out), tt.limit+len("... (truncated)"))
		})
	}
}

func TestRunTimeout(t *testing.T) {
	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	runner.Timeout = 100 * time.Millisecond

	outcome := runner.Run(context.Background(), testCheck("t", "sleep 5"))
	require.False(t, outcome.Passed)
	require.Equal(t, ExitCodeTimeout, outcome.ExitCode)
	require.Contains(t, outcome.Details, "timed out")
}

func TestRunInjectsDeploymentEnv(t *testing.T) {
	runner := NewRunner(registry.EnvStaging, flags.NewSnapshot(nil))
	outcome := runner.Run(context.Background(), testCheck("t", `test "$DEPLOYMENT_ENV" = staging`))
	require.True(t, outcome.Passed)

	runner = NewRunner(registry.EnvProd, flags.NewSnapshot(nil))
	outcome = runner.Run(context.Background(), testCheck("t", `test "$DEPLOYMENT_ENV" = staging`))
	require.False(t, outcome.Passed)
}

func TestRunSkipsGatedOffCheck(t *testing.T) {
	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))

	check := testCheck("gated", "exit 1") // would fail if it ever ran
	check.RequiredWhen = "VECTOR_SEARCH_ENABLED=true"

	outcome := runner.Run(context.Background(), check)
	require.True(t, outcome.Skipped)
	require.True(t, outcome.Passed)
	require.Contains(t, outcome.Details, "VECTOR_SEARCH_ENABLED")
	require.Zero(t, outcome.DurationMs)
}

func TestRunGatedOnCheckRuns(t *testing.T) {
	snap := flags.NewSnapshot(map[string]string{"VECTOR_SEARCH_ENABLED": "yes"})
	runner := NewRunner(registry.EnvDev, snap)

	check := testCheck("gated", "exit 0")
	check.RequiredWhen = "VECTOR_SEARCH_ENABLED=true"

	outcome := runner.Run(context.Background(), check)
	require.False(t, outcome.Skipped)
	require.True(t, outcome.Passed)
}

func TestRunAllPreservesDefinitionOrder(t *testing.T) {
	checks := []registry.CheckDefinition{
		testCheck("slowest", "sleep 0.2; exit 0"),
		testCheck("slower", "sleep 0.1; exit 1"),
		testCheck("fast", "exit 0"),
	}

	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	for _, workers := range []int{1, 3} {
		outcomes := runner.RunAll(context.Background(), checks, workers)
		require.Len(t, outcomes, 3)

		var ids []string
		for _, o := range outcomes {
			ids = append(ids, o.Check.ID)
		}
		require.Equal(t, []string{"slowest", "slower", "fast"}, ids)
		require.True(t, outcomes[0].Passed)
		require.False(t, outcomes[1].Passed)
		require.True(t, outcomes[2].Passed)
	}
}

func TestRunAllIsolatesTimeouts(t *testing.T) {
	checks := []registry.CheckDefinition{
		testCheck("hangs", "sleep 5"),
		testCheck("quick", "exit 0"),
	}

	runner := NewRunner(registry.EnvDev, flags.NewSnapshot(nil))
	runner.Timeout = 100 * time.Millisecond

	outcomes := runner.RunAll(context.Background(), checks, 2)
	require.Equal(t, ExitCodeTimeout, outcomes[0].ExitCode)
	require.Contains(t, outcomes[0].Details, "timed out")
	// One check timing out must not cancel its sibling.
	require.True(t, outcomes[1].Passed)
}

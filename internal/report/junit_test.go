package report

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentready/arv/internal/analyzer"
	"github.com/agentready/arv/internal/executor"
	"github.com/agentready/arv/internal/registry"
)

func TestConvertToJUnit(t *testing.T) {
	rep := Aggregate(registry.EnvStaging,
		[]executor.Outcome{
			outcome("unit-tests", registry.CategoryTests, true, true, false),
			outcome("smoke-tests", registry.CategoryTests, true, false, false),
			outcome("slack-webhook", registry.CategoryNotifications, true, false, true),
		},
		[]analyzer.Violation{
			blockingViolation("agents/x/agent.go", analyzer.RuleEmbeddedSecret, 4),
			{FilePath: "gateway/h.go", RuleID: analyzer.RuleRunnerBoundary, Message: "no outbound call", Severity: analyzer.SeverityWarning},
		},
	)

	suites := ConvertToJUnit(rep)

	require.Equal(t, 5, suites.Tests)
	require.Equal(t, 2, suites.Failures)
	require.Equal(t, 2, suites.Skipped)
	require.Len(t, suites.TestSuites, 3)

	tests := suites.TestSuites[0]
	require.Equal(t, "tests", tests.Name)
	require.Equal(t, 2, tests.Tests)
	require.Equal(t, 1, tests.Failures)
	require.NotNil(t, tests.TestCases[1].Failure)
	require.Equal(t, "CheckFailure", tests.TestCases[1].Failure.Type)

	notifications := suites.TestSuites[1]
	require.Equal(t, "notifications", notifications.Name)
	require.NotNil(t, notifications.TestCases[0].Skipped)

	static := suites.TestSuites[2]
	require.Equal(t, "static-analysis", static.Name)
	require.Equal(t, 2, static.Tests)
	require.Equal(t, 1, static.Failures)
	require.Equal(t, 1, static.Skipped)
	require.Equal(t, "agents/x/agent.go:4", static.TestCases[0].Name)
	require.Equal(t, analyzer.RuleEmbeddedSecret, static.TestCases[0].Classname)
	require.NotNil(t, static.TestCases[1].Skipped)
}

func TestWriteJUnitXML(t *testing.T) {
	rep := Aggregate(registry.EnvDev,
		[]executor.Outcome{outcome("unit-tests", registry.CategoryTests, true, true, false)},
		nil,
	)

	path := filepath.Join(t.TempDir(), "junit.xml")
	require.NoError(t, WriteJUnitXML(rep, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed JUnitTestSuites
	require.NoError(t, xml.Unmarshal(data, &parsed))
	require.Equal(t, 1, parsed.Tests)
	require.Equal(t, 0, parsed.Failures)
}

package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testChecks() []CheckDefinition {
	return []CheckDefinition{
		{ID: "config-validate", Description: "validate config", Category: CategoryConfig, Required: true, Command: "true"},
		{ID: "unit-tests", Description: "unit tests", Category: CategoryTests, Required: true, Command: "true"},
		{ID: "smoke-tests", Description: "smoke tests", Category: CategoryTests, Command: "true", Environments: []Environment{EnvDev, EnvStaging}},
		{ID: "storage-rw", Description: "storage roundtrip", Category: CategoryStorage, Required: true, Command: "true", Environments: []Environment{EnvProd}},
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		raw     string
		want    Environment
		wantErr bool
	}{
		{raw: "dev", want: EnvDev},
		{raw: "staging", want: EnvStaging},
		{raw: "PROD", want: EnvProd},
		{raw: "  dev ", want: EnvDev},
		{raw: "production", wantErr: true},
		{raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			env, err := ParseEnvironment(tt.raw)
			if tt.wantErr {
				var unknownErr *UnknownEnvironmentError
				require.ErrorAs(t, err, &unknownErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, env)
		})
	}
}

func TestListChecksFiltersByEnvironment(t *testing.T) {
	reg, err := New(testChecks())
	require.NoError(t, err)

	devChecks, err := reg.ListChecks(EnvDev)
	require.NoError(t, err)
	require.Equal(t, []string{"config-validate", "unit-tests", "smoke-tests"}, checkIDs(devChecks))

	prodChecks, err := reg.ListChecks(EnvProd)
	require.NoError(t, err)
	require.Equal(t, []string{"config-validate", "unit-tests", "storage-rw"}, checkIDs(prodChecks))

	for _, c := range devChecks {
		require.True(t, c.AppliesTo(EnvDev))
	}
}

func TestListChecksFiltersByCategory(t *testing.T) {
	reg, err := New(testChecks())
	require.NoError(t, err)

	testsOnly, err := reg.ListChecks(EnvDev, CategoryTests)
	require.NoError(t, err)
	require.Equal(t, []string{"unit-tests", "smoke-tests"}, checkIDs(testsOnly))
	for _, c := range testsOnly {
		require.Equal(t, CategoryTests, c.Category)
	}

	empty, err := reg.ListChecks(EnvDev, CategoryNotifications)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestListChecksUnknownEnvironment(t *testing.T) {
	reg, err := New(testChecks())
	require.NoError(t, err)

	_, err = reg.ListChecks(Environment("qa"))
	var unknownErr *UnknownEnvironmentError
	require.True(t, errors.As(err, &unknownErr))
	require.Contains(t, err.Error(), "qa")
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		checks []CheckDefinition
		msg    string
	}{
		{
			name: "duplicate id",
			checks: []CheckDefinition{
				{ID: "a", Description: "a", Category: CategoryTests, Command: "true"},
				{ID: "a", Description: "a again", Category: CategoryTests, Command: "true"},
			},
			msg: "duplicate check id",
		},
		{
			name:   "missing id",
			checks: []CheckDefinition{{Description: "x", Category: CategoryTests, Command: "true"}},
			msg:    "missing id",
		},
		{
			name:   "unknown category",
			checks: []CheckDefinition{{ID: "a", Description: "x", Category: "misc", Command: "true"}},
			msg:    "unknown category",
		},
		{
			name:   "missing command",
			checks: []CheckDefinition{{ID: "a", Description: "x", Category: CategoryTests}},
			msg:    "missing command",
		},
		{
			name:   "bad environment",
			checks: []CheckDefinition{{ID: "a", Description: "x", Category: CategoryTests, Command: "true", Environments: []Environment{"qa"}}},
			msg:    "unknown environment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.checks)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefaultChecksLoad(t *testing.T) {
	reg, err := New(DefaultChecks())
	require.NoError(t, err)
	require.Greater(t, reg.Len(), 0)

	// Every built-in check must be routable in at least one environment.
	total := 0
	for _, env := range KnownEnvironments {
		checks, err := reg.ListChecks(env)
		require.NoError(t, err)
		total += len(checks)
	}
	require.Greater(t, total, 0)
}

func checkIDs(checks []CheckDefinition) []string {
	ids := make([]string, 0, len(checks))
	for _, c := range checks {
		ids = append(ids, c.ID)
	}
	return ids
}

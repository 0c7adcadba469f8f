package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
}

func TestLoadNoConfigFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, DefaultSourceDir, cfg.Paths.Source)
	require.Equal(t, DefaultEnvironment, cfg.Defaults.Environment)
	require.Equal(t, DefaultTimeoutSeconds, cfg.Defaults.TimeoutSeconds)
	require.Equal(t, DefaultWorkers, cfg.Defaults.Workers)
	require.NotNil(t, cfg.Defaults.IncludeOptional)
	require.False(t, *cfg.Defaults.IncludeOptional)
	require.Nil(t, cfg.Analysis)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
paths:
  source: ./services
  checks: checks/prod.yaml
defaults:
  environment: staging
  workers: 4
  include_optional: true
analysis:
  prohibited_imports:
    - github.com/tmc/langchaingo
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, "./services", cfg.Paths.Source)
	require.Equal(t, "checks/prod.yaml", cfg.Paths.Checks)
	require.Equal(t, "staging", cfg.Defaults.Environment)
	require.Equal(t, 4, cfg.Defaults.Workers)
	require.True(t, *cfg.Defaults.IncludeOptional)
	// Fields absent from the file keep their defaults.
	require.Equal(t, DefaultTimeoutSeconds, cfg.Defaults.TimeoutSeconds)
	require.Contains(t, cfg.Analysis, "prohibited_imports")
}

func TestLoadWalksUpToParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "defaults:\n  environment: prod\n")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Defaults.Environment)
}

func TestLoadNearestConfigWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "defaults:\n  environment: prod\n")

	nested := filepath.Join(root, "svc")
	require.NoError(t, os.MkdirAll(nested, 0755))
	writeConfig(t, nested, "defaults:\n  environment: staging\n")

	cfg, err := Load(nested)
	require.NoError(t, err)
	require.Equal(t, "staging", cfg.Defaults.Environment)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "defaults: [not a map\n")

	_, err := Load(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), ConfigFileName)
}

func TestLoadExplicitIncludeOptionalFalse(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "defaults:\n  include_optional: false\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.IncludeOptional)
	require.False(t, *cfg.Defaults.IncludeOptional)
}

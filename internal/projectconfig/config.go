// Package projectconfig provides the ProjectConfig struct and loader for
// .arv.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file searched for from the working
// directory upward.
const ConfigFileName = ".arv.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultSourceDir  = "."
	DefaultChecksFile = ""

	DefaultEnvironment    = "dev"
	DefaultTimeoutSeconds = 300
	DefaultWorkers        = 1
)

// PathsConfig holds the analysis source root and optional checks file.
type PathsConfig struct {
	Source string `yaml:"source,omitempty"`
	Checks string `yaml:"checks,omitempty"`
}

// DefaultsConfig holds default verification parameters.
type DefaultsConfig struct {
	Environment     string `yaml:"environment,omitempty"`
	TimeoutSeconds  int    `yaml:"timeout,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
	IncludeOptional *bool  `yaml:"include_optional,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .arv.yaml.
// Analysis is kept as a loose map; the analyzer decodes it into typed rule
// options itself.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`
	Analysis map[string]any `yaml:"analysis,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Source: DefaultSourceDir,
			Checks: DefaultChecksFile,
		},
		Defaults: DefaultsConfig{
			Environment:     DefaultEnvironment,
			TimeoutSeconds:  DefaultTimeoutSeconds,
			Workers:         DefaultWorkers,
			IncludeOptional: boolPtr(false),
		},
	}
}

// Load finds .arv.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no config
// file is found, returns defaults with a nil error. Real I/O errors
// (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .arv.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Source != "" {
		dst.Paths.Source = src.Paths.Source
	}
	if src.Paths.Checks != "" {
		dst.Paths.Checks = src.Paths.Checks
	}

	if src.Defaults.Environment != "" {
		dst.Defaults.Environment = src.Defaults.Environment
	}
	if src.Defaults.TimeoutSeconds > 0 {
		dst.Defaults.TimeoutSeconds = src.Defaults.TimeoutSeconds
	}
	if src.Defaults.Workers > 0 {
		dst.Defaults.Workers = src.Defaults.Workers
	}
	if src.Defaults.IncludeOptional != nil {
		dst.Defaults.IncludeOptional = src.Defaults.IncludeOptional
	}

	if len(src.Analysis) > 0 {
		dst.Analysis = src.Analysis
	}
}

func boolPtr(b bool) *bool { return &b }

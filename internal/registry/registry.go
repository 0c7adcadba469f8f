// Package registry holds the declarative catalog of readiness checks and
// answers environment/category-filtered lookups over it.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Environment is a deployment environment a check can apply to.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// KnownEnvironments lists every valid environment in display order.
var KnownEnvironments = []Environment{EnvDev, EnvStaging, EnvProd}

// ParseEnvironment validates a raw environment string.
func ParseEnvironment(raw string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range KnownEnvironments {
		if env == known {
			return env, nil
		}
	}
	return "", &UnknownEnvironmentError{Requested: raw}
}

// UnknownEnvironmentError indicates a lookup against an environment that is
// not part of the closed dev/staging/prod set.
type UnknownEnvironmentError struct {
	Requested string
}

func (e *UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q: expected one of dev, staging, prod", e.Requested)
}

// Category groups checks by the subsystem they verify.
type Category string

const (
	CategoryConfig        Category = "config"
	CategoryTests         Category = "tests"
	CategorySearch        Category = "search"
	CategoryQueue         Category = "queue"
	CategoryStorage       Category = "storage"
	CategoryNotifications Category = "notifications"
)

// KnownCategories lists every valid category in display order.
var KnownCategories = []Category{
	CategoryConfig,
	CategoryTests,
	CategorySearch,
	CategoryQueue,
	CategoryStorage,
	CategoryNotifications,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CheckDefinition is one declarative dynamic check. Definitions are immutable
// once registered; the engine never mutates them at run time.
type CheckDefinition struct {
	// ID is a unique kebab-case identifier, stable across runs.
	ID string `yaml:"id"`
	// Description is a one-line human-readable summary.
	Description string `yaml:"description"`
	// Category places the check in the grouped report.
	Category Category `yaml:"category"`
	// Required marks the check as blocking for the verdict.
	Required bool `yaml:"required"`
	// Command is the shell command whose exit code decides pass/fail.
	Command string `yaml:"command"`
	// RequiredWhen optionally gates the check on a feature flag, using the
	// FLAG_NAME=true condition grammar. Empty means always applicable.
	RequiredWhen string `yaml:"required_when,omitempty"`
	// Environments restricts where the check applies. Empty means all.
	Environments []Environment `yaml:"environments,omitempty"`
}

// AppliesTo reports whether the check is registered for env.
func (c CheckDefinition) AppliesTo(env Environment) bool {
	if len(c.Environments) == 0 {
		return true
	}
	for _, e := range c.Environments {
		if e == env {
			return true
		}
	}
	return false
}

// Registry is an ordered, immutable set of check definitions.
type Registry struct {
	checks []CheckDefinition
}

// New builds a registry from definitions, validating uniqueness and shape.
func New(defs []CheckDefinition) (*Registry, error) {
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		if strings.TrimSpace(def.ID) == "" {
			return nil, fmt.Errorf("check at index %d: missing id", i)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("duplicate check id %q", def.ID)
		}
		seen[def.ID] = true
		if !ValidCategory(def.Category) {
			return nil, fmt.Errorf("check %q: unknown category %q", def.ID, def.Category)
		}
		if strings.TrimSpace(def.Command) == "" {
			return nil, fmt.Errorf("check %q: missing command", def.ID)
		}
		for _, env := range def.Environments {
			if _, err := ParseEnvironment(string(env)); err != nil {
				return nil, fmt.Errorf("check %q: %w", def.ID, err)
			}
		}
	}
	checks := make([]CheckDefinition, len(defs))
	copy(checks, defs)
	return &Registry{checks: checks}, nil
}

// ListChecks returns, in definition order, every check registered for env.
// Pass one or more categories to additionally filter by category.
func (r *Registry) ListChecks(env Environment, categories ...Category) ([]CheckDefinition, error) {
	if _, err := ParseEnvironment(string(env)); err != nil {
		return nil, err
	}
	var out []CheckDefinition
	for _, def := range r.checks {
		if !def.AppliesTo(env) {
			continue
		}
		if len(categories) > 0 && !containsCategory(categories, def.Category) {
			continue
		}
		out = append(out, def)
	}
	return out, nil
}

// Len returns the total number of registered checks.
func (r *Registry) Len() int { return len(r.checks) }

// Categories returns the sorted set of categories present in the registry.
func (r *Registry) Categories() []Category {
	seen := make(map[Category]bool)
	for _, def := range r.checks {
		seen[def.Category] = true
	}
	out := make([]Category, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func containsCategory(cats []Category, c Category) bool {
	for _, cat := range cats {
		if cat == c {
			return true
		}
	}
	return false
}

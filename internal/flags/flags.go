// Package flags evaluates the FLAG_NAME=true conditions that gate
// conditionally-required checks against a snapshot of the process
// environment.
package flags

import (
	"fmt"
	"os"
	"strings"
)

// Snapshot is an immutable view of feature-flag values. Taking an explicit
// snapshot keeps the gate pure: the same snapshot always yields the same
// decisions, and tests can inject values without touching the real
// environment.
type Snapshot struct {
	values map[string]string
}

// NewSnapshot builds a snapshot from explicit flag values.
func NewSnapshot(values map[string]string) Snapshot {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Snapshot{values: copied}
}

// FromEnviron captures the current process environment as a snapshot.
func FromEnviron() Snapshot {
	values := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			values[k] = v
		}
	}
	return Snapshot{values: values}
}

// Lookup returns the raw value of a flag and whether it is set.
func (s Snapshot) Lookup(name string) (string, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Truthy reports whether the named flag is set to a truthy value.
// Recognized truthy spellings are true, 1, yes, and on, case-insensitive.
func (s Snapshot) Truthy(name string) bool {
	v, ok := s.values[name]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// ParseCondition parses a required_when condition of the form FLAG_NAME=true
// into the flag name. Anything outside that closed grammar is rejected.
func ParseCondition(condition string) (flagName string, ok bool) {
	name, value, found := strings.Cut(strings.TrimSpace(condition), "=")
	if !found || value != "true" || name == "" {
		return "", false
	}
	for i, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return name, true
}

// IsRequired decides whether a conditionally-required check applies under the
// given flag snapshot. An empty condition always applies. Conditions outside
// the recognized grammar never apply: an unknown condition must not be able
// to force a check to run.
func IsRequired(condition string, snap Snapshot) (applies bool, reason string) {
	if strings.TrimSpace(condition) == "" {
		return true, "always required"
	}
	name, ok := ParseCondition(condition)
	if !ok {
		return false, fmt.Sprintf("unrecognized condition %q", condition)
	}
	if snap.Truthy(name) {
		return true, fmt.Sprintf("flag %s is enabled", name)
	}
	return false, fmt.Sprintf("flag %s is not enabled", name)
}

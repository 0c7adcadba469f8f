package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

// secretPatterns are the known secret-token shapes. Each carries a label used
// in the violation message.
var secretPatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"model API key", regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`)},
	{"Slack token", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}\b`)},
	{"AWS access key", regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`)},
	{"long hex string", regexp.MustCompile(`\b[0-9a-fA-F]{40,}\b`)},
	{"key-shaped field", regexp.MustCompile(`(?i)"(?:api[_-]?key|secret|token|password)"\s*:\s*"[^"]{8,}"`)},
}

// EmbeddedSecretRule regex-scans raw module text for secret-shaped tokens.
// It runs on every module regardless of role or parse success: secrets are a
// line-level concern, not a structural one.
type EmbeddedSecretRule struct {
	allowlist []string
}

var _ SourceRule = (*EmbeddedSecretRule)(nil)

// NewEmbeddedSecretRule builds the rule from the placeholder allowlist.
func NewEmbeddedSecretRule(opts Options) *EmbeddedSecretRule {
	return &EmbeddedSecretRule{allowlist: opts.SecretAllowlist}
}

func (*EmbeddedSecretRule) ID() string { return RuleEmbeddedSecret }

// Inspect emits at most one violation per offending line, even when several
// patterns match it.
func (r *EmbeddedSecretRule) Inspect(m *Module) []Violation {
	var out []Violation
	for i, line := range strings.Split(string(m.Source), "\n") {
		if r.isPlaceholder(line) {
			continue
		}
		for _, pattern := range secretPatterns {
			if pattern.re.MatchString(line) {
				out = append(out, Violation{
					FilePath: m.RelPath,
					RuleID:   RuleEmbeddedSecret,
					Message:  fmt.Sprintf("embedded secret: line matches %s shape", pattern.label),
					Line:     i + 1,
					Severity: SeverityBlocking,
				})
				break
			}
		}
	}
	return out
}

func (r *EmbeddedSecretRule) isPlaceholder(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range r.allowlist {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

package analyzer

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Severity classifies whether a violation blocks promotion.
type Severity string

const (
	// SeverityBlocking violations fail the run.
	SeverityBlocking Severity = "blocking"
	// SeverityWarning violations are reported but never fail the run.
	SeverityWarning Severity = "warning"
)

// Rule identifiers. file-error and syntax-error are emitted by the framework
// itself rather than by a catalog rule.
const (
	RuleFileError      = "file-error"
	RuleSyntaxError    = "syntax-error"
	RuleDepProhibited  = "dep-prohibited"
	RuleStructure      = "structure-required"
	RuleDirectCall     = "call-direct"
	RuleUnsafeDefault  = "config-unsafe-default"
	RuleEmbeddedSecret = "secret-embedded"
	RuleRunnerBoundary = "runner-boundary"
)

// Violation is one finding against one file. Violations are never
// deduplicated across files; the same rule may fire once per file.
type Violation struct {
	// FilePath is the module path relative to the analysis root.
	FilePath string
	// RuleID names the rule that fired.
	RuleID string
	// Message describes the finding.
	Message string
	// Line is 1-based; zero for whole-file findings.
	Line int
	// Severity decides whether the finding blocks the verdict.
	Severity Severity
}

// SourceRule inspects one module and reports zero or more violations.
// Implementations must tolerate m.Tree == nil (parse failure): structural
// rules return nothing, textual rules keep working off m.Source.
type SourceRule interface {
	ID() string
	Inspect(m *Module) []Violation
}

// Options carries the tunable inputs of the rule catalog. Values arrive from
// the analysis section of the project config as a loose YAML map and are
// decoded here; zero-valued fields fall back to the compiled-in defaults.
type Options struct {
	// ProhibitedImports lists import paths (exact or prefix) of alternative
	// agent frameworks and direct model-client SDKs.
	ProhibitedImports []string `mapstructure:"prohibited_imports"`
	// RuntimeImport is the mandated agent-runtime import path.
	RuntimeImport string `mapstructure:"runtime_import"`
	// FactoryName is the mandated agent factory function name.
	FactoryName string `mapstructure:"factory_name"`
	// BindingName is the mandated exported top-level binding name.
	BindingName string `mapstructure:"binding_name"`
	// DirectCallPatterns are textual call fragments that indicate bypassing
	// the runtime abstraction.
	DirectCallPatterns []string `mapstructure:"direct_call_patterns"`
	// EnvLookupCallees name the env-lookup helpers whose boolean defaults
	// are policed in config modules.
	EnvLookupCallees []string `mapstructure:"env_lookup_callees"`
	// FlagDefaults maps policed flag names to their required safe default.
	FlagDefaults map[string]bool `mapstructure:"flag_defaults"`
	// SecretAllowlist lists substrings that mark a line as a placeholder.
	SecretAllowlist []string `mapstructure:"secret_allowlist"`
	// RunMethodPatterns are textual fragments of direct runtime run calls,
	// forbidden inside gateways.
	RunMethodPatterns []string `mapstructure:"run_method_patterns"`
	// OutboundPatterns are fragments a gateway is expected to contain for
	// its remote-execute call. Absence is a warning, not a failure.
	OutboundPatterns []string `mapstructure:"outbound_patterns"`
}

// DefaultOptions returns the platform's compiled-in rule policy.
func DefaultOptions() Options {
	return Options{
		ProhibitedImports: []string{
			"github.com/tmc/langchaingo",
			"github.com/sashabaranov/go-openai",
			"github.com/anthropics/anthropic-sdk-go",
			"google.golang.org/genai",
			"github.com/cohere-ai/cohere-go",
		},
		RuntimeImport: "github.com/agentready/platform/agentruntime",
		FactoryName:   "NewAgent",
		BindingName:   "Agent",
		DirectCallPatterns: []string{
			".Generate(",
			".GenerateContent(",
			".CreateChatCompletion(",
			".Complete(",
			".Predict(",
		},
		EnvLookupCallees: []string{
			"envutil.Bool",
			"envutil.GetBool",
			"config.GetBool",
		},
		FlagDefaults: map[string]bool{
			// Capability-enabling flags must default off.
			"ENABLE_AUTONOMOUS_ACTIONS": false,
			"ENABLE_EXTERNAL_CALLS":     false,
			"ENABLE_TOOL_EXECUTION":     false,
			// Safety flags must default on.
			"DRY_RUN":   true,
			"SAFE_MODE": true,
		},
		SecretAllowlist: []string{
			"example",
			"placeholder",
			"changeme",
			"your-",
			"xxxx",
			"dummy",
			"<",
		},
		RunMethodPatterns: []string{
			".RunAgent(",
			".ExecuteAgent(",
			"agentruntime.New(",
		},
		OutboundPatterns: []string{
			"/agents/execute",
			"http.Post",
			".Post(",
		},
	}
}

// DecodeOptions merges a loose config map over the defaults.
func DecodeOptions(raw map[string]any) (Options, error) {
	opts := DefaultOptions()
	if len(raw) == 0 {
		return opts, nil
	}
	if err := mapstructure.Decode(raw, &opts); err != nil {
		return Options{}, fmt.Errorf("decoding analysis options: %w", err)
	}
	return opts, nil
}

// DefaultRules builds the full rule catalog for the given options.
func DefaultRules(opts Options) []SourceRule {
	return []SourceRule{
		NewProhibitedDependencyRule(opts),
		NewRequiredStructureRule(opts),
		NewDirectCallRule(opts),
		NewUnsafeDefaultRule(opts),
		NewEmbeddedSecretRule(opts),
		NewRunnerBoundaryRule(opts),
	}
}

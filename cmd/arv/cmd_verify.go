package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentready/arv/internal/analyzer"
	"github.com/agentready/arv/internal/executor"
	"github.com/agentready/arv/internal/flags"
	"github.com/agentready/arv/internal/projectconfig"
	"github.com/agentready/arv/internal/registry"
	"github.com/agentready/arv/internal/report"
)

func newVerifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run readiness checks and static analysis for an environment",
		Long: `Run every registered dynamic check for the target environment alongside
static analysis of the agent source tree, then print a grouped report.

Exit codes:
  0  all required checks passed
  1  at least one required check failed or a blocking violation was found
  2  bad arguments, no checks matched, or an internal error`,
		Args:          cobra.NoArgs,
		RunE:          runVerify,
		SilenceErrors: true,
	}
	cmd.Flags().String("env", "", "Target environment: dev | staging | prod")
	cmd.Flags().String("category", "", "Only run checks of this category")
	cmd.Flags().Bool("include-optional", false, "Also run checks not marked required")
	cmd.Flags().Bool("verbose", false, "Include details for passing checks")
	cmd.Flags().String("format", "text", "Output format: text | json")
	cmd.Flags().String("source", "", "Source tree to analyze (default from .arv.yaml)")
	cmd.Flags().String("checks", "", "Checks YAML file (default: built-in catalog)")
	cmd.Flags().String("junit", "", "Also write a JUnit XML report to this path")
	cmd.Flags().String("output", "", "Also write the JSON report to this path (.gz compresses)")
	cmd.Flags().Int("workers", 0, "Bounded parallelism for checks and analysis (default sequential)")
	cmd.Flags().Int("timeout", 0, "Per-check timeout in seconds")
	cmd.Flags().Bool("skip-analysis", false, "Run dynamic checks only")
	return cmd
}

// verifySettings is the resolved flag/config view one verify run works from.
type verifySettings struct {
	env             registry.Environment
	categories      []registry.Category
	includeOptional bool
	verbose         bool
	format          string
	sourceDir       string
	checksFile      string
	junitPath       string
	outputPath      string
	workers         int
	timeout         time.Duration
	skipAnalysis    bool
	analysisOpts    analyzer.Options
}

func runVerify(cmd *cobra.Command, _ []string) error {
	settings, err := resolveVerifySettings(cmd)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(settings.checksFile)
	if err != nil {
		return err
	}

	checks, err := reg.ListChecks(settings.env, settings.categories...)
	if err != nil {
		return err
	}
	if len(checks) == 0 && len(settings.categories) > 0 {
		return fmt.Errorf("no checks registered for environment %q and category %q",
			settings.env, settings.categories[0])
	}
	if !settings.includeOptional {
		checks = filterRequired(checks)
	}

	snap := flags.FromEnviron()
	runner := executor.NewRunner(settings.env, snap)
	if settings.timeout > 0 {
		runner.Timeout = settings.timeout
	}
	outcomes := runner.RunAll(cmd.Context(), checks, settings.workers)

	var violations []analyzer.Violation
	if !settings.skipAnalysis {
		a := analyzer.New(analyzer.DefaultRules(settings.analysisOpts), nil)
		violations, err = a.Analyze(cmd.Context(), settings.sourceDir, settings.workers)
		if err != nil {
			return fmt.Errorf("static analysis could not run: %w", err)
		}
	}

	rep := report.Aggregate(settings.env, outcomes, violations)

	if err := emitReport(cmd, rep, settings); err != nil {
		return err
	}

	if rep.Verdict == report.VerdictFail {
		return &RequiredFailureError{
			Message: fmt.Sprintf("verification failed: %d required check failure(s), %d blocking violation(s)",
				rep.Summary.FailedCount, rep.Summary.BlockingCount),
		}
	}
	return nil
}

func resolveVerifySettings(cmd *cobra.Command) (*verifySettings, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}

	settings := &verifySettings{
		sourceDir:  cfg.Paths.Source,
		checksFile: cfg.Paths.Checks,
		workers:    cfg.Defaults.Workers,
		timeout:    time.Duration(cfg.Defaults.TimeoutSeconds) * time.Second,
	}
	if cfg.Defaults.IncludeOptional != nil {
		settings.includeOptional = *cfg.Defaults.IncludeOptional
	}

	rawEnv, _ := cmd.Flags().GetString("env")
	if rawEnv == "" {
		rawEnv = cfg.Defaults.Environment
	}
	settings.env, err = registry.ParseEnvironment(rawEnv)
	if err != nil {
		return nil, err
	}

	if rawCategory, _ := cmd.Flags().GetString("category"); rawCategory != "" {
		category := registry.Category(rawCategory)
		if !registry.ValidCategory(category) {
			return nil, fmt.Errorf("unknown category %q", rawCategory)
		}
		settings.categories = []registry.Category{category}
	}

	if cmd.Flags().Changed("include-optional") {
		settings.includeOptional, _ = cmd.Flags().GetBool("include-optional")
	}
	settings.verbose, _ = cmd.Flags().GetBool("verbose")
	settings.skipAnalysis, _ = cmd.Flags().GetBool("skip-analysis")

	settings.format, _ = cmd.Flags().GetString("format")
	if settings.format != "text" && settings.format != "json" {
		return nil, fmt.Errorf("invalid format %q: expected text or json", settings.format)
	}

	if source, _ := cmd.Flags().GetString("source"); source != "" {
		settings.sourceDir = source
	}
	if checksFile, _ := cmd.Flags().GetString("checks"); checksFile != "" {
		settings.checksFile = checksFile
	}
	settings.junitPath, _ = cmd.Flags().GetString("junit")
	settings.outputPath, _ = cmd.Flags().GetString("output")

	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		settings.workers = workers
	}
	if timeoutSec, _ := cmd.Flags().GetInt("timeout"); timeoutSec > 0 {
		settings.timeout = time.Duration(timeoutSec) * time.Second
	}

	settings.analysisOpts, err = analyzer.DecodeOptions(cfg.Analysis)
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func loadRegistry(checksFile string) (*registry.Registry, error) {
	if checksFile != "" {
		return registry.LoadChecksFile(checksFile)
	}
	return registry.New(registry.DefaultChecks())
}

func filterRequired(checks []registry.CheckDefinition) []registry.CheckDefinition {
	var out []registry.CheckDefinition
	for _, c := range checks {
		if c.Required {
			out = append(out, c)
		}
	}
	return out
}

func emitReport(cmd *cobra.Command, rep *report.RunReport, settings *verifySettings) error {
	jsonBytes, err := report.MarshalJSONReport(rep)
	if err != nil {
		return fmt.Errorf("rendering JSON report: %w", err)
	}

	switch settings.format {
	case "json":
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	default:
		if err := report.WriteText(cmd.OutOrStdout(), rep, settings.verbose); err != nil {
			return err
		}
	}

	if settings.outputPath != "" {
		if err := report.WriteArtifact(settings.outputPath, jsonBytes); err != nil {
			return err
		}
	}
	if settings.junitPath != "" {
		if err := report.WriteJUnitXML(rep, settings.junitPath); err != nil {
			return err
		}
	}
	return nil
}

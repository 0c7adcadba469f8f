// Package executor runs dynamic readiness checks as child processes and
// converts their exit status into check outcomes.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/agentready/arv/internal/flags"
	"github.com/agentready/arv/internal/registry"
)

const (
	// DefaultTimeout bounds a single check's wall-clock run time.
	DefaultTimeout = 300 * time.Second

	// ExitCodeTimeout is the reserved exit code reported for a check that
	// outlived its timeout. The engine enforces the timeout; the code is
	// only a reporting convention.
	ExitCodeTimeout = 124

	// detailsHeadLimit caps how much captured stdout/stderr lands in the
	// report, per stream.
	detailsHeadLimit = 500
)

// Outcome is the result of one dynamic check.
type Outcome struct {
	// Check is the definition this outcome belongs to.
	Check registry.CheckDefinition
	// Passed reports whether the check succeeded. Skipped outcomes are
	// passed by convention; they never count against the verdict.
	Passed bool
	// Skipped is true when the check's condition was not met and no
	// process was spawned.
	Skipped bool
	// Details carries the skip reason, the head of captured output on
	// failure, or a spawn error message.
	Details string
	// ExitCode is the child process exit code. Meaningful only when the
	// check actually ran.
	ExitCode int
	// DurationMs is the observed run time. Zero for skipped checks.
	DurationMs int64
}

// Runner executes checks against one target environment and flag snapshot.
type Runner struct {
	Env     registry.Environment
	Flags   flags.Snapshot
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewRunner builds a runner with the default timeout.
func NewRunner(env registry.Environment, snap flags.Snapshot) *Runner {
	return &Runner{
		Env:     env,
		Flags:   snap,
		Timeout: DefaultTimeout,
		Logger:  slog.Default(),
	}
}

// Run executes one check. Gated-off checks are skipped without spawning a
// process. Every failure mode is folded into the returned outcome; Run never
// returns an error for a check that merely failed.
func (r *Runner) Run(ctx context.Context, check registry.CheckDefinition) Outcome {
	applies, reason := flags.IsRequired(check.RequiredWhen, r.Flags)
	if !applies {
		return Outcome{
			Check:   check,
			Passed:  true,
			Skipped: true,
			Details: fmt.Sprintf("skipped: %s", reason),
		}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // check commands are operator-declared gate commands, not untrusted input
	cmd := exec.CommandContext(timeoutCtx, "sh", "-c", check.Command)
	cmd.Env = append(cmd.Environ(), fmt.Sprintf("DEPLOYMENT_ENV=%s", r.Env))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Milliseconds()

	if timeoutCtx.Err() == context.DeadlineExceeded {
		r.Logger.Warn("check timed out", "check", check.ID, "timeout", timeout)
		return Outcome{
			Check:      check,
			Passed:     false,
			Details:    "timed out",
			ExitCode:   ExitCodeTimeout,
			DurationMs: elapsed,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return Outcome{
				Check:      check,
				Passed:     false,
				Details:    failureDetails(code, stdout.String(), stderr.String()),
				ExitCode:   code,
				DurationMs: elapsed,
			}
		}
		// Spawn or IO failure (e.g. sh not found); not an exit status.
		return Outcome{
			Check:      check,
			Passed:     false,
			Details:    fmt.Sprintf("execution error: %v", err),
			ExitCode:   1,
			DurationMs: elapsed,
		}
	}

	return Outcome{
		Check:      check,
		Passed:     true,
		ExitCode:   0,
		DurationMs: elapsed,
	}
}

// RunAll executes every check and returns outcomes in definition order.
// With workers > 1, checks run on a bounded pool; each invocation keeps its
// own timeout timer, and order is restored before return so report output
// does not depend on completion order.
func (r *Runner) RunAll(ctx context.Context, checks []registry.CheckDefinition, workers int) []Outcome {
	outcomes := make([]Outcome, len(checks))

	if workers <= 1 {
		for i, check := range checks {
			outcomes[i] = r.Run(ctx, check)
		}
		return outcomes
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, check := range checks {
		g.Go(func() error {
			outcomes[i] = r.Run(gctx, check)
			return nil
		})
	}
	// Workers never return errors; failures live in the outcomes.
	_ = g.Wait()
	return outcomes
}

// failureDetails renders the failure summary for a non-zero exit, bounding
// each captured stream to keep the report small.
func failureDetails(exitCode int, stdout, stderr string) string {
	parts := []string{fmt.Sprintf("exit code %d", exitCode)}
	if out := strings.TrimSpace(stdout); out != "" {
		parts = append(parts, "stdout: "+truncate(out, detailsHeadLimit))
	}
	if errOut := strings.TrimSpace(stderr); errOut != "" {
		parts = append(parts, "stderr: "+truncate(errOut, detailsHeadLimit))
	}
	return strings.Join(parts, "; ")
}

// truncate cuts s to at most limit bytes without splitting a rune, so the
// captured output stays valid UTF-8 in the report.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (truncated)"
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arv",
		Short: "ARV - Agent Readiness Verification gate",
		Long: `ARV decides whether an agent codebase is safe to promote to a target
deployment environment.

It combines dynamic checks (declared shell commands, pass/fail by exit code)
with static source analysis (prohibited dependencies, required structure,
unsafe configuration defaults, embedded secrets) and produces a single
verdict with a category-grouped report.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

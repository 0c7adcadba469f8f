package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentready/arv/internal/registry"
	"github.com/agentready/arv/internal/wizard"
)

const defaultChecksFileName = "checks.yaml"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [check-id]",
		Short: "Interactively scaffold a checks file",
		Long: `Init walks through an interactive form and writes a starter checks.yaml
with the first check filled in. Edit the file to add more checks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	cmd.Flags().String("out", defaultChecksFileName, "Path of the checks file to write")
	cmd.Flags().Bool("force", false, "Overwrite an existing checks file")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	outPath, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
		}
	}

	initialID := ""
	if len(args) > 0 {
		initialID = args[0]
	}

	spec, err := wizard.RunCheckWizard(cmd.InOrStdin(), cmd.OutOrStdout(), initialID)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateChecksYAML(spec)
	if err != nil {
		return err
	}

	// The generated file must load cleanly; reject it here rather than on
	// the first verify run.
	if _, err := registry.LoadChecksBytes([]byte(content)); err != nil {
		return fmt.Errorf("generated checks file is invalid: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Run: arv verify --checks %s\n", outPath, outPath)
	return nil
}

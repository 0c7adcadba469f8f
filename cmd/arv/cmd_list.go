package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/agentready/arv/internal/projectconfig"
	"github.com/agentready/arv/internal/registry"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the checks registered for an environment",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().String("env", "", "Target environment: dev | staging | prod")
	cmd.Flags().String("checks", "", "Checks YAML file (default: built-in catalog)")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	rawEnv, _ := cmd.Flags().GetString("env")
	if rawEnv == "" {
		rawEnv = cfg.Defaults.Environment
	}
	env, err := registry.ParseEnvironment(rawEnv)
	if err != nil {
		return err
	}

	checksFile, _ := cmd.Flags().GetString("checks")
	if checksFile == "" {
		checksFile = cfg.Paths.Checks
	}
	reg, err := loadRegistry(checksFile)
	if err != nil {
		return err
	}

	checks, err := reg.ListChecks(env)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Checks for environment %s (%d):\n", env, len(checks))

	idWidth, catWidth := 0, 0
	for _, c := range checks {
		if w := runewidth.StringWidth(c.ID); w > idWidth {
			idWidth = w
		}
		if w := runewidth.StringWidth(string(c.Category)); w > catWidth {
			catWidth = w
		}
	}

	for _, c := range checks {
		requirement := "optional"
		if c.Required {
			requirement = "required"
		}
		line := fmt.Sprintf("  %s  %s  %s", pad(c.ID, idWidth), pad(string(c.Category), catWidth), requirement)
		if c.RequiredWhen != "" {
			line += "  when " + c.RequiredWhen
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func pad(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Package wizard implements the interactive form behind `arv init`, which
// scaffolds a starter checks file for a project.
package wizard

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/agentready/arv/internal/registry"
)

// CheckSpec holds all fields collected during the interactive wizard.
type CheckSpec struct {
	ID           string
	Description  string
	Category     registry.Category
	Required     bool
	Command      string
	RequiredWhen string
	Environments []string
}

var checkIDPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

const checksYAMLTemplate = `# ARV checks file. Run with: arv verify --checks checks.yaml
checks:
  - id: {{ .ID }}
    description: {{ .Description }}
    category: {{ .Category }}
    required: {{ .Required }}
    command: {{ .Command }}
{{- if .RequiredWhen }}
    required_when: {{ .RequiredWhen }}
{{- end }}
{{- if .Environments }}
    environments:
{{- range .Environments }}
      - {{ . }}
{{- end }}
{{- end }}
`

// RunCheckWizard runs an interactive huh form to collect the first check of
// a new checks file. If initialID is non-empty, it pre-populates the id.
func RunCheckWizard(in io.Reader, out io.Writer, initialID string) (*CheckSpec, error) {
	var (
		id           = initialID
		description  string
		category     string
		required     = true
		command      string
		requiredWhen string
		environments []string
	)

	categoryOptions := make([]huh.Option[string], 0, len(registry.KnownCategories))
	for _, c := range registry.KnownCategories {
		categoryOptions = append(categoryOptions, huh.NewOption(string(c), string(c)))
	}
	envOptions := make([]huh.Option[string], 0, len(registry.KnownEnvironments))
	for _, e := range registry.KnownEnvironments {
		envOptions = append(envOptions, huh.NewOption(string(e), string(e)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Check id").
				Description("A kebab-case identifier for the check").
				Placeholder("unit-tests").
				Value(&id).
				Validate(func(s string) error {
					if !checkIDPattern.MatchString(strings.TrimSpace(s)) {
						return fmt.Errorf("id must be kebab-case (lowercase letters, digits, hyphens)")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What does this check verify?").
				Placeholder("Run the agent unit test suite").
				Value(&description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&category),
			huh.NewConfirm().
				Title("Required?").
				Description("Required checks block promotion when they fail").
				Value(&required),
			huh.NewInput().
				Title("Command").
				Description("Shell command; exit code 0 means pass").
				Placeholder("pytest tests/unit -q").
				Value(&command).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("command is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Condition (optional)").
				Description("Feature-flag condition, e.g. SLACK_NOTIFICATIONS_ENABLED=true").
				Value(&requiredWhen),
			huh.NewMultiSelect[string]().
				Title("Environments").
				Description("Leave empty to apply everywhere").
				Options(envOptions...).
				Value(&environments),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &CheckSpec{
		ID:           strings.TrimSpace(id),
		Description:  strings.TrimSpace(description),
		Category:     registry.Category(category),
		Required:     required,
		Command:      strings.TrimSpace(command),
		RequiredWhen: strings.TrimSpace(requiredWhen),
		Environments: environments,
	}, nil
}

// GenerateChecksYAML renders a starter checks file from the given spec.
func GenerateChecksYAML(spec *CheckSpec) (string, error) {
	tmpl, err := template.New("checksyaml").Parse(checksYAMLTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

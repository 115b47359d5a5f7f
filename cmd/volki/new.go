package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/internal/templates"
)

func newCmd() *cobra.Command {
	var (
		templateName string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new project",
		Long: `Scaffold a new project directory with a volki.toml and starter
source files.

Templates:
  minimal   A single page and nothing else
  full      Pages, a 404 handler, and an API route (default)
  api       API routes only, no pages`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args[0], templateName, description)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "full", "Project template (minimal, full, api)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")

	return cmd
}

func runNew(name, templateName, description string) error {
	if !validProjectName(name) {
		return errors.New("E603").
			WithDetail("'" + name + "' is not a valid project name").
			WithSuggestion("Use lowercase letters, digits, and hyphens")
	}

	dir, err := filepath.Abs(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		return errors.New("E601").
			WithDetail("Directory '" + name + "' already exists").
			WithSuggestion("Choose a different name or remove the existing directory")
	}

	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	if description == "" {
		description = "A " + name + " application"
	}

	printBanner()
	info("scaffolding '%s' from the %s template", name, templateName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := tmpl.Create(dir, templates.Config{ProjectName: name, Description: description}); err != nil {
		os.RemoveAll(dir)
		return err
	}

	success("created %s", name)
	info("next: cd %s && volki build && volki serve", name)
	return nil
}

func validProjectName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return !strings.HasPrefix(name, "-") && !strings.HasSuffix(name, "-")
}

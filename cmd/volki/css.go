package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	verrors "github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/compiler"
	"github.com/volki-dev/volki/pkg/style"
)

func cssCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "css [dir]",
		Short: "Generate the utility stylesheet",
		Long: `Collect every literal class from the .volki sources and generate
the deduplicated stylesheet, honoring the [style] section of the
nearest volki.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runCSS(dir, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the stylesheet to a file instead of stdout")

	return cmd
}

func runCSS(dir, out string) error {
	files, err := volkiSources(dir)
	if err != nil {
		return err
	}

	var classes []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		found, err := compiler.CollectSourceClasses(string(data), file)
		if err != nil {
			return err
		}
		classes = append(classes, found...)
	}

	cfg := style.LoadForSourceFile(filepath.Join(dir, "volki.toml"))
	report := style.GenerateCSSWithConfig(classes, &cfg)
	for _, d := range report.Diagnostics {
		warn("%s", d.Message)
	}
	if cfg.UnknownClassPolicy == style.PolicyError && len(report.Diagnostics) > 0 {
		return verrors.New("E301").
			WithDetail(report.Diagnostics[0].Message).
			WithMessage("%d unresolved classes", len(report.Diagnostics))
	}

	if out == "" {
		fmt.Print(report.CSS)
		return nil
	}
	if err := os.WriteFile(out, []byte(report.CSS), 0o644); err != nil {
		return err
	}
	success("%d classes resolved, %d unresolved → %s",
		report.ResolvedCount, report.UnresolvedCount, out)
	return nil
}

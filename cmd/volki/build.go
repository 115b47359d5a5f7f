package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/volki-dev/volki/internal/config"
	"github.com/volki-dev/volki/pkg/compiler"
)

func buildCmd() *cobra.Command {
	var dist string

	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Compile the source tree into dist/",
		Long: `Compile every .volki route file under the source directory.

This command:
  • Compiles .volki files to server output (plus WASM bindings)
  • Generates the utility stylesheet from collected classes
  • Copies public/ and static assets
  • Generates mod files and the start() registration`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runBuild(dir, dist)
		},
	}

	cmd.Flags().StringVarP(&dist, "dist", "d", "", "Output directory name (default from volki.toml)")

	return cmd
}

func runBuild(dir, dist string) error {
	if dist == "" {
		cfg, err := config.LoadDir(dir)
		if err != nil {
			return err
		}
		dist = cfg.Server.Dist
	}

	fmt.Println("  Building...")
	fmt.Println()

	start := time.Now()
	results, err := compiler.CompileDir(dir, dist)
	if err != nil {
		return err
	}

	warnings := 0
	for _, res := range results {
		info("%s → %s", res.SourcePath, res.OutputPath)
		for _, w := range res.Warnings {
			warn("%s:%d:%d: %s", w.File, w.Line, w.Col, w.Message)
			warnings++
		}
	}

	fmt.Println()
	success("Compiled %d files in %s", len(results), time.Since(start).Round(time.Millisecond))
	if warnings > 0 {
		warn("%d warnings", warnings)
	}
	info("Output: %s/", dist)
	return nil
}

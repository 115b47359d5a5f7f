package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/volki-dev/volki/pkg/compiler"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Compile without writing output",
		Long: `Run the full compile pipeline on every .volki file and report
errors and warnings without touching the filesystem. Files keep
compiling after an error in another file; the command fails if any
error was observed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runCheck(dir)
		},
	}
	return cmd
}

func runCheck(dir string) error {
	files, err := volkiSources(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		info("no .volki files under %s", dir)
		return nil
	}

	errCount := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		out, err := compiler.CompileSourceFull(string(data), file)
		if err != nil {
			printCompileError(err)
			errCount++
			continue
		}
		for _, w := range out.Warnings {
			warn("%s:%d:%d: %s", w.File, w.Line, w.Col, w.Message)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d of %d files failed to compile", errCount, len(files))
	}
	success("%d files OK", len(files))
	return nil
}

// volkiSources lists .volki files under dir, skipping dist and public
// trees.
func volkiSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name == "dist" || name == "public" || strings.HasPrefix(name, ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".volki" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

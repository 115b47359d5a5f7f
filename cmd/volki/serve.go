package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/volki-dev/volki"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve a built application",
		Long: `Serve the dist output of a project directory on the event-loop
server: static files from the built public directory, configuration
from volki.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runServe(dir, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Bind address (overrides volki.toml)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides volki.toml)")

	return cmd
}

func runServe(dir, host string, port int) error {
	app := volki.NewFromConfig(dir).
		Logger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if host != "" {
		app.Host(host)
	}
	if port != 0 {
		app.Port(port)
	}

	// Prefer the built public dir when a dist exists.
	if _, err := os.Stat(filepath.Join(dir, "dist", "public")); err == nil {
		app.PublicDir(filepath.Join(dir, "dist", "public"))
	} else if _, err := os.Stat(filepath.Join(dir, "public")); err == nil {
		app.PublicDir(filepath.Join(dir, "public"))
	}

	printBanner()
	return app.Listen()
}

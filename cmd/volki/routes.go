package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/volki-dev/volki/pkg/compiler"
)

func routesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes [dir]",
		Short: "List the routes discovered in the source tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runRoutes(dir)
		},
	}
	return cmd
}

func runRoutes(dir string) error {
	routes, err := compiler.DiscoverRoutes(dir)
	if err != nil {
		return err
	}
	if len(routes) == 0 {
		info("no routes under %s", dir)
		return nil
	}

	for _, r := range routes {
		switch r.Kind {
		case compiler.RoutePage:
			meta := ""
			if r.HasMetadata {
				meta = "  +metadata"
			}
			fmt.Printf("  PAGE      %-30s %s%s\n", r.URLPath, r.ModulePath, meta)
		case compiler.RouteNotFound:
			fmt.Printf("  NOT_FOUND %-30s %s\n", r.URLPath, r.ModulePath)
		case compiler.RouteApi:
			methods := strings.ToUpper(strings.Join(r.Methods, ","))
			fmt.Printf("  %-9s %-30s %s\n", methods, r.URLPath, r.ModulePath)
		}
	}
	success("%d routes", len(routes))
	return nil
}

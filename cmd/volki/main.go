package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	verrors "github.com/volki-dev/volki/internal/errors"
	"github.com/volki-dev/volki/pkg/compiler"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌─┐┬  ┬┌─┐┬
  ╚╗╔╝│ ││  ├┴┐│
   ╚╝ └─┘┴─┘┴ ┴┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "volki",
		Short: "Application server toolkit: RSX compiler, utility CSS, event-loop HTTP",
		Long: `Volki compiles RSX route files into server and WASM output,
generates a utility stylesheet from the classes they use, and serves
the result on a single-threaded event-loop HTTP server.

  • File-based routing (page / route / not_found files)
  • Compile-time component and API boundary checks
  • Utility CSS generated from the classes actually used
  • epoll reactor with a worker pool, TLS, and rate limits`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		buildCmd(),
		checkCmd(),
		cssCmd(),
		newCmd(),
		routesCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ce *compiler.CompileError
		var ve *verrors.VolkiError
		switch {
		case errors.As(err, &ce):
			fmt.Fprint(os.Stderr, ce.Diagnostic().Format())
		case errors.As(err, &ve):
			fmt.Fprint(os.Stderr, ve.Format())
		default:
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printCompileError renders a per-file compile failure through the
// error registry when it carries a code.
func printCompileError(err error) {
	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		fmt.Print(ce.Diagnostic().Format())
		return
	}
	fmt.Println(err)
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

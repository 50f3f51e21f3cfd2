package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cascade/internal/version"
)

// errFoundErrors: the run completed and reported error markers. The markers
// are the output, so main only sets the exit code.
var errFoundErrors = errors.New("errors found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cascade",
		Short:         "Lossless CSS, SCSS and LESS parser with error recovery",
		Long:          `cascade parses stylesheets into a lossless syntax tree and reports every syntax problem it recovers from`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupRun(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			teardownRun(cmd)
		},
	}

	// Глобальные флаги
	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = from config)")
	flags.String("config", "", "path to "+configFileName+" (default: search upward from the target)")
	flags.String("dialect", "auto", "stylesheet dialect (auto|css|scss|less)")
	flags.String("trace", "", "write trace events to this file (- for stderr)")
	flags.String("trace-level", "off", "trace verbosity (off|error|phase|detail|debug)")
	flags.String("trace-mode", "ring", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept for the crash dump")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(
		newTokenizeCmd(),
		newParseCmd(),
		newDiagCmd(),
		newFixCmd(),
		newLSPCmd(),
		newInitCmd(),
		newCacheCmd(),
		newVersionCmd(),
	)
	return root
}

// main builds the command tree and executes it. A failing command exits with
// status 1; errFoundErrors does so without printing anything more.
func main() {
	defer dumpTraceOnPanic()
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFoundErrors) {
			fmt.Fprintf(os.Stderr, "cascade: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

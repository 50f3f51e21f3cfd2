package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cascade/internal/diagfmt"
	"cascade/internal/driver"
	"cascade/internal/source"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file|->",
		Short: "Parse a stylesheet and print its tree",
		Long: `Parse builds the lossless syntax tree of a stylesheet and prints it.
Markers go to stderr; the exit status is 1 when any of them is an error.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "cst", "output format (cst|nodes|json)")
	cmd.Flags().Bool("trivia", false, "include whitespace and comments in the cst dump")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	formatStr, _ := cmd.Flags().GetString("format")
	withTrivia, _ := cmd.Flags().GetBool("trivia")
	var format diagfmt.TreeFormat
	switch formatStr {
	case "cst":
		format = diagfmt.TreeCST
	case "nodes":
		format = diagfmt.TreeNodes
	case "json":
		format = diagfmt.TreeJSON
	default:
		return fmt.Errorf("unknown format: %s", formatStr)
	}

	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	name, text, dialect, err := readInput(cmd, cfg, args[0])
	if err != nil {
		return err
	}
	fileSet := source.NewFileSet()
	f := fileSet.Get(fileSet.AddVirtual(name, text))
	res := driver.ParseSource(cmd.Context(), f, dialect, opts)

	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		diagfmt.Pretty(cmd.ErrOrStderr(), diagfmt.FileMarkers{File: f, Markers: res.Markers()}, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}
	if err := diagfmt.FormatTree(cmd.OutOrStdout(), format, res.CST, res.Tree, withTrivia); err != nil {
		return err
	}
	if res.HasErrors() {
		return errFoundErrors
	}
	return nil
}

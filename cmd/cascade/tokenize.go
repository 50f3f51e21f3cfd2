package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cascade/internal/diagfmt"
	"cascade/internal/driver"
	"cascade/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file|->",
		Short: "Print the tokens of a stylesheet",
		Long: `Tokenize classifies a stylesheet into tokens; the token texts concatenate back to the input.
Lexical problems go to stderr and make the exit status 1.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("trivia", false, "include whitespace and comments")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	withTrivia, _ := cmd.Flags().GetBool("trivia")

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
	lexed, bag := driver.Tokenize(string(text), dialect, opts)
	fileSet := source.NewFileSet()
	f := fileSet.Get(fileSet.AddVirtual(name, text))

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, lexed, f, withTrivia)
	case "json":
		err = diagfmt.FormatTokensJSON(out, lexed, withTrivia)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
		diagfmt.Pretty(cmd.ErrOrStderr(), diagfmt.FileMarkers{File: f, Markers: bag.Items()}, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 1,
		})
	}
	if bag.HasErrors() {
		return errFoundErrors
	}
	return nil
}

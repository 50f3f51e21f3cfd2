package main

import (
	"time"

	"github.com/spf13/cobra"

	"cascade/internal/config"
	"cascade/internal/lsp"
	"cascade/internal/version"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the cascade language server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before re-analysing an edited document")
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, _ := cmd.Flags().GetDuration("debounce")
	opts := lsp.ServerOptions{
		Version:  version.Current().Version,
		Debounce: debounce,
	}
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		opts.Config = cfg
	}
	if n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); n > 0 {
		opts.MaxDiagnostics = n
	}
	return lsp.NewServer(opts).RunStdio()
}

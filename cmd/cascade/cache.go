package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cascade/internal/driver"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the diagnostics cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "dir",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cache, err := cacheFor(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cache.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "clean",
			Short: "Remove every cached result",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cache, err := cacheFor(cmd)
				if err != nil {
					return err
				}
				if err := cache.DropAll(); err != nil {
					return fmt.Errorf("failed to clean %s: %w", cache.Dir(), err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
				return nil
			},
		},
	)
	return cmd
}

func cacheFor(cmd *cobra.Command) (*driver.DiskCache, error) {
	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return nil, err
	}
	cache, _ := openCache(cmd, cfg)
	if cache == nil {
		return nil, fmt.Errorf("cache is not available")
	}
	return cache, nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"cascade/internal/driver"
	"cascade/internal/fix"
	"cascade/internal/source"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [flags] <file|directory>",
		Short: "Repair missing punctuation and unterminated tokens",
		Long: `Fix parses the target, derives mechanical repairs from its markers
(a missing ';' or '}', an unterminated string or comment) and writes them back.`,
		Args: cobra.ExactArgs(1),
		RunE: runFix,
	}
	cmd.Flags().Bool("all", false, "apply all safe fixes")
	cmd.Flags().Bool("once", false, "apply the first available fix (default)")
	cmd.Flags().String("id", "", "apply fix with a specific identifier")
	cmd.Flags().Bool("list", false, "list available fixes without applying them")
	cmd.Flags().Bool("dry-run", false, "print the fixed text instead of writing it (single file only)")
	return cmd
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]
	applyAll, _ := cmd.Flags().GetBool("all")
	applyOnce, _ := cmd.Flags().GetBool("once")
	targetID, _ := cmd.Flags().GetString("id")
	list, _ := cmd.Flags().GetBool("list")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if targetID != "" && (applyAll || applyOnce) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnce {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	// id уникален только в пределах файла
	if info.IsDir() && (targetID != "" || dryRun) {
		return fmt.Errorf("fix: --id and --dry-run need a single file")
	}

	cfg, err := loadConfig(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	files, err := driver.ExpandTargets([]string{target}, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fileSet := source.NewFileSet()
	var total int
	for _, path := range files {
		res, err := driver.ParseFile(cmd.Context(), fileSet, path, cfg, opts)
		if err != nil {
			if info.IsDir() && errors.Is(err, driver.ErrUnsupportedExtension) {
				continue
			}
			return fmt.Errorf("fix: %w", err)
		}
		content := res.File.Content
		if list {
			listFixes(out, path, content, res)
			continue
		}

		applied, applyErr := fix.Apply(content, res.Markers(), fix.ApplyOptions{Mode: mode, TargetID: targetID})
		if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) {
			return applyErr
		}
		if err := reportFixes(cmd.ErrOrStderr(), path, applied); err != nil {
			return err
		}
		if dryRun {
			if _, err := out.Write(applied.Content); err != nil {
				return err
			}
			continue
		}
		if len(applied.Applied) == 0 {
			continue
		}
		if err := fix.WriteFile(path, applied.Content); err != nil {
			return err
		}
		total += len(applied.Applied)
	}

	if !list && !dryRun {
		if total == 0 {
			fmt.Fprintln(out, "No applicable fixes found.")
		} else {
			fmt.Fprintf(out, "Applied %d fix(es).\n", total)
		}
	}
	return nil
}

func listFixes(w io.Writer, path string, content []byte, res *driver.Result) {
	for _, c := range fix.Collect(content, res.Markers()) {
		off, _ := safecast.Conv[uint32](c.Marker.Offset)
		pos := res.File.LineCol(off)
		fmt.Fprintf(w, "%s:%d:%d: %s [%s] (%s)\n", path, pos.Line, pos.Col, c.Fix.Title, c.Fix.ID, c.Fix.Applicability)
	}
}

func reportFixes(w io.Writer, path string, res *fix.ApplyResult) error {
	for _, item := range res.Applied {
		if _, err := fmt.Fprintf(w, "%s: %s [%s] (%d edits, %s)\n", path, item.Title, item.ID, item.EditCount, item.Applicability); err != nil {
			return err
		}
	}
	for _, skip := range res.Skipped {
		id := skip.ID
		if id == "" {
			id = "(unnamed)"
		}
		if _, err := fmt.Fprintf(w, "%s: skipped %s [%s]: %s\n", path, skip.Title, id, skip.Reason); err != nil {
			return err
		}
	}
	return nil
}

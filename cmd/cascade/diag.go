package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cascade/internal/config"
	"cascade/internal/diag"
	"cascade/internal/diagfmt"
	"cascade/internal/driver"
	"cascade/internal/observ"
	"cascade/internal/source"
	"cascade/internal/ui"
	"cascade/internal/version"
)

const cacheApp = "cascade"

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] [file|directory]...",
		Short: "Report syntax problems in stylesheets",
		Long: `Diag parses every given stylesheet (directories are searched for .css, .scss,
.less and configured extensions) and reports the markers found. The exit
status is 1 when any file has an error.`,
		RunE: runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Int("context", 2, "source lines shown around a marker (pretty)")
	cmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("no-cache", false, "do not read or write the disk cache")
	cmd.Flags().String("path-mode", "auto", "how file paths are printed (auto|absolute|relative|basename)")
	cmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")
	return cmd
}

type diagFlags struct {
	format           string
	jobs             int
	context          int
	noWarnings       bool
	warningsAsErrors bool
	noCache          bool
	pathMode         diagfmt.PathMode
	ui               uiMode
	quiet            bool
	timings          bool
}

func readDiagFlags(cmd *cobra.Command) (diagFlags, error) {
	var f diagFlags
	var err error
	f.format, _ = cmd.Flags().GetString("format")
	f.jobs, _ = cmd.Flags().GetInt("jobs")
	f.context, _ = cmd.Flags().GetInt("context")
	f.noWarnings, _ = cmd.Flags().GetBool("no-warnings")
	f.warningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	f.noCache, _ = cmd.Flags().GetBool("no-cache")
	f.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")
	f.timings, _ = cmd.Root().PersistentFlags().GetBool("timings")
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	switch f.format {
	case "pretty", "json", "sarif", "short":
	default:
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	pm, _ := cmd.Flags().GetString("path-mode")
	if f.pathMode, err = diagfmt.ParsePathMode(pm); err != nil {
		return f, err
	}
	ui, _ := cmd.Flags().GetString("ui")
	if f.ui, err = readUIMode(ui); err != nil {
		return f, err
	}
	return f, nil
}

// runDiagnose analyses the targets, prints the markers in the chosen format
// and returns errFoundErrors when any file has an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	flags, err := readDiagFlags(cmd)
	if err != nil {
		return err
	}
	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	cfg, err := loadConfig(cmd, targets[0])
	if err != nil {
		return err
	}
	base, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	files, err := driver.ExpandTargets(targets, cfg)
	if err != nil {
		return err
	}

	opts := driver.AnalyzeOptions{Options: base, Config: cfg, Jobs: flags.jobs}
	if flags.timings {
		opts.Timer = observ.NewTimer()
	}
	if cfg.Cache.Enabled && !flags.noCache {
		opts.Cache, opts.CacheSalt = openCache(cmd, cfg)
	}

	cwd, _ := os.Getwd()
	fileSet := source.NewFileSetWithBase(cwd)
	var results []*driver.Result
	wall := -1
	if opts.Timer != nil {
		wall = opts.Timer.Begin("analyze")
	}
	if shouldUseTUI(flags.ui, len(files), flags.quiet) {
		results, err = analyzeWithUI(cmd, fileSet, files, opts)
	} else {
		results, err = driver.Analyze(cmd.Context(), fileSet, files, opts)
	}
	if opts.Timer != nil {
		opts.Timer.End(wall, fmt.Sprintf("%d jobs", flags.jobs))
	}
	if err != nil {
		return err
	}

	fms := make([]diagfmt.FileMarkers, 0, len(results))
	for _, r := range results {
		fms = append(fms, diagfmt.FileMarkers{
			Path:    r.Path,
			File:    r.File,
			Markers: adjustLevels(r.Markers(), flags),
			Err:     r.Err,
		})
	}
	if err := writeDiagnostics(cmd, fms, flags, cwd); err != nil {
		return err
	}

	summary := driver.Summarize(results)
	if flags.timings {
		printTimings(cmd.ErrOrStderr(), opts.Timer, summary)
	}
	if hasErrors(fms) {
		return errFoundErrors
	}
	return nil
}

func openCache(cmd *cobra.Command, cfg *config.Config) (*driver.DiskCache, string) {
	dir := cfg.Cache.Dir
	if dir != "" && !filepath.IsAbs(dir) && cfg.Dir() != "" {
		dir = filepath.Join(cfg.Dir(), dir)
	}
	cache, err := driver.OpenDiskCache(cacheApp, dir)
	if err != nil {
		// без кэша анализ всё равно возможен
		fmt.Fprintf(cmd.ErrOrStderr(), "cascade: cache disabled: %v\n", err)
		return nil, ""
	}
	salt := version.Current().Version + "|" + strings.Join(cfg.Knowledge.CustomData, ",")
	return cache, salt
}

func analyzeWithUI(cmd *cobra.Command, fileSet *source.FileSet, files []string, opts driver.AnalyzeOptions) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		results []*driver.Result
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Analyze(cmd.Context(), fileSet, files, opts)
		close(events)
		done <- outcome{res, err}
	}()
	uiErr := ui.Run("checking", files, events, cmd.ErrOrStderr())
	out := <-done
	if uiErr != nil && out.err == nil {
		return out.results, uiErr
	}
	return out.results, out.err
}

// adjustLevels applies --no-warnings and --warnings-as-errors.
func adjustLevels(markers []diag.Marker, flags diagFlags) []diag.Marker {
	if !flags.noWarnings && !flags.warningsAsErrors {
		return markers
	}
	out := make([]diag.Marker, 0, len(markers))
	for _, m := range markers {
		if m.Level == diag.LevelWarning {
			if flags.noWarnings {
				continue
			}
			m.Level = diag.LevelError
		}
		out = append(out, m)
	}
	return out
}

func hasErrors(fms []diagfmt.FileMarkers) bool {
	for _, fm := range fms {
		if fm.Err != nil {
			return true
		}
		for _, m := range fm.Markers {
			if m.Level == diag.LevelError {
				return true
			}
		}
	}
	return false
}

func writeDiagnostics(cmd *cobra.Command, fms []diagfmt.FileMarkers, flags diagFlags, baseDir string) error {
	out := cmd.OutOrStdout()
	switch flags.format {
	case "json":
		return diagfmt.JSON(out, fms, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			BaseDir:          baseDir,
		})
	case "sarif":
		return diagfmt.Sarif(out, fms, diagfmt.SarifRunMeta{
			ToolName:       "cascade",
			ToolVersion:    version.Current().Version,
			InvocationArgs: os.Args,
			BaseDir:        baseDir,
		})
	case "short":
		return diagfmt.Short(out, fms, baseDir)
	}
	diagfmt.PrettyAll(out, fms, diagfmt.PrettyOpts{
		Color:    useColor(cmd, os.Stdout),
		Context:  int8(min(max(flags.context, 0), 20)),
		PathMode: flags.pathMode,
		BaseDir:  baseDir,
	})
	if !flags.quiet {
		printSummary(cmd.ErrOrStderr(), fms)
	}
	return nil
}

func printSummary(w io.Writer, fms []diagfmt.FileMarkers) {
	var errs, warns, failed int
	for _, fm := range fms {
		if fm.Err != nil {
			failed++
			continue
		}
		for _, m := range fm.Markers {
			switch m.Level {
			case diag.LevelError:
				errs++
			case diag.LevelWarning:
				warns++
			}
		}
	}
	fmt.Fprintf(w, "%d files: %d errors, %d warnings", len(fms), errs, warns)
	if failed > 0 {
		fmt.Fprintf(w, ", %d unreadable", failed)
	}
	fmt.Fprintln(w)
}

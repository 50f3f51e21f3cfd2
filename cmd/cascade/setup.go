package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cascade/internal/config"
	"cascade/internal/dialect"
	"cascade/internal/driver"
	"cascade/internal/prof"
	"cascade/internal/syntax"
	"cascade/internal/trace"
)

const configFileName = config.FileName

type runState struct {
	tracer  trace.Tracer
	profile *prof.Session
}

var (
	stateMu sync.Mutex
	states  = map[*cobra.Command]*runState{}
	// crashRing is dumped to stderr if a command panics.
	crashRing *trace.RingTracer
)

// setupRun starts tracing and profiling for the command about to run.
func setupRun(cmd *cobra.Command) error {
	tracer, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	profile, err := setupProfiling(cmd)
	if err != nil {
		_ = tracer.Close()
		return err
	}
	stateMu.Lock()
	states[cmd] = &runState{tracer: tracer, profile: profile}
	stateMu.Unlock()
	return nil
}

func teardownRun(cmd *cobra.Command) {
	stateMu.Lock()
	st := states[cmd]
	delete(states, cmd)
	stateMu.Unlock()
	if st == nil {
		return
	}
	if err := st.profile.Stop(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
	}
	if err := st.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := st.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context.
func setupTracing(cmd *cobra.Command) (trace.Tracer, error) {
	flags := cmd.Root().PersistentFlags()
	output, _ := flags.GetString("trace")
	levelStr, _ := flags.GetString("trace-level")
	modeStr, _ := flags.GetString("trace-mode")
	ringSize, _ := flags.GetInt("trace-ring-size")

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	// --trace без уровня означает фазы
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, err
	}
	if output != "" && mode == trace.ModeRing {
		mode = trace.ModeBoth
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: output,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	switch t := tracer.(type) {
	case *trace.RingTracer:
		crashRing = t
	case *trace.MultiTracer:
		crashRing = t.Ring()
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return tracer, nil
}

func setupProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	opts.CPU, _ = flags.GetString("cpu-profile")
	opts.Mem, _ = flags.GetString("mem-profile")
	opts.Trace, _ = flags.GetString("runtime-trace")
	return prof.Start(opts)
}

// dumpTraceOnPanic writes the last trace events before re-panicking.
func dumpTraceOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	if crashRing != nil {
		fmt.Fprintf(os.Stderr, "cascade: panic: %v\n--- last trace events ---\n", r)
		_ = crashRing.Dump(os.Stderr, trace.FormatText)
	}
	panic(r)
}

// loadConfig honours --config, then searches upward from target, then falls
// back to the defaults.
func loadConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		dir := target
		if info, statErr := os.Stat(target); statErr != nil || !info.IsDir() {
			dir = filepath.Dir(target)
		}
		cfg, err = config.Discover(dir)
		if errors.Is(err, config.ErrNotFound) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}
	if d, _ := cmd.Root().PersistentFlags().GetString("dialect"); !strings.EqualFold(d, "auto") {
		if _, err := syntax.ParseDialect(d); err != nil {
			return nil, err
		}
		cfg.Parse.Dialect = d
	}
	return cfg, nil
}

// driverOptions resolves the per-parse options: flags override the config.
func driverOptions(cmd *cobra.Command, cfg *config.Config) (driver.Options, error) {
	levels, err := cfg.Levels()
	if err != nil {
		return driver.Options{}, err
	}
	oracle, err := cfg.Oracle()
	if err != nil {
		return driver.Options{}, err
	}
	maxDiag := cfg.Diagnostics.Max
	if n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); n > 0 {
		maxDiag = n
	}
	return driver.Options{Levels: levels, Oracle: oracle, MaxDiagnostics: maxDiag}, nil
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(mode) {
	case "on", "always":
		return true
	case "off", "never":
		return false
	}
	return isTerminal(f)
}

// readInput reads a file, or stdin for "-". Without --dialect the stdin
// dialect is guessed from its content.
func readInput(cmd *cobra.Command, cfg *config.Config, path string) (name string, text []byte, d syntax.Dialect, err error) {
	if path == "-" {
		if text, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return "", nil, 0, err
		}
		d, ok := cfg.DialectFor("stdin")
		if !ok {
			d = dialect.Guess(string(text)).Dialect
		}
		return "<stdin>", text, d, nil
	}
	d, ok := cfg.DialectFor(path)
	if !ok {
		return "", nil, 0, fmt.Errorf("%s: %w", path, driver.ErrUnsupportedExtension)
	}
	// #nosec G304 -- path is a command-line argument
	text, err = os.ReadFile(path)
	return path, text, d, err
}

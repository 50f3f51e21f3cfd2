package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"cascade/internal/config"
	"cascade/internal/diag"
	"cascade/internal/source"
	"cascade/internal/syntax"
	"cascade/internal/trace"
)

// AnalyzeOptions tune a multi-file run.
type AnalyzeOptions struct {
	Options
	// Config picks dialects and extensions; nil means config.Default().
	Config *config.Config
	// Jobs bounds the worker count; 0 uses GOMAXPROCS.
	Jobs int
	// Cache, when set, stores and restores markers per file.
	Cache *DiskCache
	// CacheSalt is mixed into every cache key (tool version, custom data hash).
	CacheSalt string
	Progress  ProgressSink
}

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// ListFiles returns the sorted stylesheet files under dir whose extension cfg
// accepts. Hidden directories and skipDirs are not descended into.
func ListFiles(dir string, cfg *config.Config) ([]string, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	exts := cfg.Extensions()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (skipDirs[name] || (strings.HasPrefix(name, ".") && name != ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := slices.BinarySearch(exts, strings.ToLower(filepath.Ext(path))); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ExpandTargets turns files and directories into the list of files to
// analyse. Files named explicitly are kept even when their extension is not
// recognised; Analyze then reports ErrUnsupportedExtension for them.
func ExpandTargets(targets []string, cfg *config.Config) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, t := range targets {
		info, err := os.Stat(t)
		if err != nil {
			return nil, err
		}
		var files []string
		if info.IsDir() {
			if files, err = ListFiles(t, cfg); err != nil {
				return nil, err
			}
		} else {
			files = []string{t}
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// AnalyzeDir analyses every stylesheet under dir in parallel.
func AnalyzeDir(ctx context.Context, dir string, opts AnalyzeOptions) (*source.FileSet, []*Result, error) {
	files, err := ListFiles(dir, opts.Config)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	results, err := Analyze(ctx, fileSet, files, opts)
	return fileSet, results, err
}

// Analyze parses files in parallel. Results come back in the order of files;
// a file that cannot be read or has no dialect gets a Result with Err set and
// does not stop the run. Only cancellation of ctx fails the whole call.
func Analyze(ctx context.Context, fileSet *source.FileSet, files []string, opts AnalyzeOptions) ([]*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.ParentSpan(ctx))
	defer runSpan.WithExtra("files", strconv.Itoa(len(files))).End("")
	ctx = trace.WithParent(ctx, runSpan)

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageLex, Status: StatusQueued})
	}

	results := make([]*Result, len(files))
	if len(files) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = analyzeOne(gctx, fileSet, path, cfg, opts)
			status := StatusDone
			if results[i].HasErrors() {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageProject, Status: status, Err: results[i].Err})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	emit(opts.Progress, Event{Status: StatusDone})
	return results, nil
}

func analyzeOne(ctx context.Context, fileSet *source.FileSet, path string, cfg *config.Config, opts AnalyzeOptions) *Result {
	dialect, err := dialectOf(cfg, path)
	if err != nil {
		return &Result{Path: path, Err: err}
	}
	id, err := fileSet.Load(path)
	if err != nil {
		return &Result{Path: path, Dialect: dialect, Err: err}
	}
	f := fileSet.Get(id)

	var key Digest
	if opts.Cache != nil {
		emit(opts.Progress, Event{File: path, Stage: StageCache, Status: StatusWorking})
		key = cacheKey(f.Hash, dialect, opts.Options, opts.CacheSalt)
		var payload DiskPayload
		// битый кэш: просто промах
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			bag := diag.NewBag(0)
			bag.AddAll(payload.Markers)
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-hit", path, trace.ParentSpan(ctx))
			return &Result{Path: path, File: f, Dialect: dialect, Bag: bag, Cached: true}
		}
	}

	phaseOpts := opts.Options
	userPhase := phaseOpts.OnPhase
	phaseOpts.OnPhase = func(ev PhaseEvent) {
		if ev.Status == PhaseStart {
			emit(opts.Progress, Event{File: path, Stage: Stage(ev.Name), Status: StatusWorking})
		}
		if userPhase != nil {
			userPhase(ev)
		}
	}
	res := ParseSource(ctx, f, dialect, phaseOpts)

	if opts.Cache != nil {
		payload := &DiskPayload{Path: path, Dialect: uint8(dialect), Markers: res.Markers()}
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeFile, "cache-put-failed", err.Error(), trace.ParentSpan(ctx))
		}
	}
	return res
}

// Summary counts results by outcome.
type Summary struct {
	Files    int
	Errors   int
	Warnings int
	Failed   int // unreadable or unsupported files
	Cached   int
}

func Summarize(results []*Result) Summary {
	var s Summary
	for _, r := range results {
		if r == nil {
			continue
		}
		s.Files++
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Cached {
			s.Cached++
		}
		for _, m := range r.Markers() {
			switch m.Level {
			case diag.LevelError:
				s.Errors++
			case diag.LevelWarning:
				s.Warnings++
			}
		}
	}
	return s
}

func dialectOf(cfg *config.Config, path string) (syntax.Dialect, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	d, ok := cfg.DialectFor(path)
	if !ok {
		return d, fmt.Errorf("%s: %w", path, ErrUnsupportedExtension)
	}
	return d, nil
}

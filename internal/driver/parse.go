package driver

import (
	"context"
	"errors"
	"strconv"
	"time"

	"fortio.org/safecast"

	"cascade/internal/config"
	"cascade/internal/cssnode"
	"cascade/internal/cst"
	"cascade/internal/diag"
	"cascade/internal/knowledge"
	"cascade/internal/lexer"
	"cascade/internal/observ"
	"cascade/internal/parser"
	"cascade/internal/source"
	"cascade/internal/syntax"
	"cascade/internal/trace"
)

// ErrUnsupportedExtension: the file extension maps onto no dialect.
var ErrUnsupportedExtension = errors.New("unsupported stylesheet extension")

// Options tune a single parse.
type Options struct {
	// Levels overrides diag.DefaultLevel per rule.
	Levels diag.Levels
	// Oracle answers known at-rule/property questions; nil uses the builtin tables.
	Oracle knowledge.Oracle
	// MaxDepth bounds block nesting; 0 uses the parser default.
	MaxDepth int
	// MaxDiagnostics caps the markers kept per file; 0 keeps all.
	MaxDiagnostics int
	// Timer, when set, accumulates lex/parse/project durations.
	Timer   *observ.Timer
	OnPhase PhaseObserver
}

// Result is everything known about one parsed text.
//
// Results restored from the disk cache carry only Path, Dialect and Bag:
// Lexed, CST and Tree are nil and Cached is true.
type Result struct {
	Path    string
	File    *source.File
	Dialect syntax.Dialect
	Lexed   *lexer.Lexed
	CST     *cst.Tree
	Tree    *cssnode.Tree
	// Bag holds the non-ignored markers of Tree, sorted by offset.
	Bag    *diag.Bag
	Cached bool
	// Err is set by Analyze when the file could not be read.
	Err error
}

// Markers returns the reported markers in offset order.
func (r *Result) Markers() []diag.Marker {
	if r == nil || r.Bag == nil {
		return nil
	}
	return r.Bag.Items()
}

func (r *Result) HasErrors() bool {
	return r != nil && (r.Err != nil || (r.Bag != nil && r.Bag.HasErrors()))
}

// Text is the reconstructed source; it equals the input byte for byte.
func (r *Result) Text() string {
	if r == nil || r.CST == nil {
		return ""
	}
	return r.CST.Text()
}

// Tokenize classifies text without parsing it. The bag holds the lexical
// markers, leveled and capped by opts like the markers of Parse.
func Tokenize(text string, dialect syntax.Dialect, opts Options) (*lexer.Lexed, *diag.Bag) {
	rep := &lexer.BagReporter{Bag: diag.NewBag(0), Levels: opts.Levels}
	lexed := lexer.New(text, lexer.Options{Dialect: dialect, Reporter: rep}).All()
	return lexed, collectMarkers(rep.Bag.Items(), opts.MaxDiagnostics)
}

// Parse runs lex, parse and projection over text. It never fails: every
// problem in the input is a marker in the result.
func Parse(ctx context.Context, text string, dialect syntax.Dialect, opts Options) *Result {
	return parse(ctx, "", text, dialect, opts)
}

// ParseFile reads path into fileSet and parses it with the dialect cfg picks for
// its extension. A nil cfg means config.Default().
func ParseFile(ctx context.Context, fileSet *source.FileSet, path string, cfg *config.Config, opts Options) (*Result, error) {
	dialect, err := dialectOf(cfg, path)
	if err != nil {
		return nil, err
	}
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(ctx, fileSet.Get(id), dialect, opts), nil
}

// ParseSource parses a file already held by a FileSet.
func ParseSource(ctx context.Context, f *source.File, dialect syntax.Dialect, opts Options) *Result {
	res := parse(ctx, f.Path, string(f.Content), dialect, opts)
	res.File = f
	return res
}

func parse(ctx context.Context, path, text string, dialect syntax.Dialect, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+path, trace.ParentSpan(ctx))
	ph := phaseRunner{tracer: tracer, parent: fileSpan.ID(), opts: &opts}

	res := &Result{Path: path, Dialect: dialect}
	ph.run("lex", func() {
		res.Lexed = lexer.Tokenize(text, dialect)
	})

	// парсер считает и игнорируемые ошибки, поэтому режем его только без переопределений
	var maxErrors uint
	if len(opts.Levels) == 0 {
		if n, err := safecast.Conv[uint](opts.MaxDiagnostics); err == nil {
			maxErrors = n
		}
	}
	ph.run("parse", func() {
		res.CST = parser.Parse(res.Lexed, parser.Options{
			Knowledge: opts.Oracle,
			MaxDepth:  opts.MaxDepth,
			MaxErrors: maxErrors,
		})
	})

	ph.run("project", func() {
		res.Tree = cssnode.Project(res.CST, cssnode.ProjectOptions{Levels: opts.Levels, Oracle: opts.Oracle})
	})

	res.Bag = collectMarkers(res.Tree.CollectIssues(), opts.MaxDiagnostics)
	fileSpan.WithExtra("dialect", dialect.String()).
		WithExtra("markers", strconv.Itoa(res.Bag.Len())).
		End("")
	return res
}

// collectMarkers drops ignored markers and caps the rest.
func collectMarkers(markers []diag.Marker, max int) *diag.Bag {
	markers = diag.FilterLevel(markers, diag.LevelWarning)
	bag := diag.NewBag(max)
	bag.AddAll(markers)
	bag.Sort()
	bag.Dedup()
	return bag
}

type phaseRunner struct {
	tracer trace.Tracer
	parent uint64
	opts   *Options
}

func (p phaseRunner) run(name string, fn func()) {
	if p.opts.OnPhase != nil {
		p.opts.OnPhase(PhaseEvent{Name: name, Status: PhaseStart})
	}
	span := trace.Begin(p.tracer, trace.ScopePass, name, p.parent)
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	span.End("")
	if p.opts.Timer != nil {
		p.opts.Timer.Add(name, elapsed)
	}
	if p.opts.OnPhase != nil {
		p.opts.OnPhase(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
}

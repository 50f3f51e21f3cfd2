package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cascade/internal/diag"
	"cascade/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, lineNo, path, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		lineNo: color.New(color.FgCyan),
		path:   color.New(color.Bold),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.lineNo, p.path, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) level(l diag.Level) *color.Color {
	if l == diag.LevelWarning {
		return p.warn
	}
	return p.err
}

// Pretty форматирует маркеры одного файла в человекочитаемый вид.
// Для каждого маркера печатает
//
//	<path>:<line>:<col>: <LEVEL> <rule-id>: <message>
//
// затем строки контекста с подчёркиванием ^~~~ под диапазоном маркера.
// Маркеры ожидаются отсортированными (diag.Bag.Sort).
func Pretty(w io.Writer, fm FileMarkers, opts PrettyOpts) {
	p := newPalette(opts.Color)
	path := fm.displayPath(opts.PathMode, opts.BaseDir)
	if fm.Err != nil {
		fmt.Fprintf(w, "%s: %s %s\n", p.path.Sprint(path), p.err.Sprint("ERROR"), fm.Err)
		return
	}
	for _, m := range fm.Markers {
		if m.Level == diag.LevelIgnore {
			continue
		}
		if fm.File == nil {
			fmt.Fprintf(w, "%s:%d: %s %s: %s\n", path, m.Offset, p.level(m.Level).Sprint(strings.ToUpper(m.Level.String())), m.Kind.ID(), m.Message)
			continue
		}
		sp := span(fm.File, m)
		pos := fm.File.LineCol(sp.Start)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			p.path.Sprint(path), pos.Line, pos.Col,
			p.level(m.Level).Sprint(strings.ToUpper(m.Level.String())),
			m.Kind.ID(), m.Message)
		writeContext(w, fm.File, sp, m.Level, opts, p)
	}
}

// PrettyAll prints every file in order, separating files with a blank line.
func PrettyAll(w io.Writer, files []FileMarkers, opts PrettyOpts) {
	first := true
	for _, fm := range files {
		if len(fm.Markers) == 0 && fm.Err == nil {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		Pretty(w, fm, opts)
	}
}

func writeContext(w io.Writer, f *source.File, sp source.Span, level diag.Level, opts PrettyOpts, p palette) {
	start, end := f.LineCol(sp.Start), f.LineCol(sp.End)
	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln > start.Line && text == "" && int(f.LineStart(ln)) >= len(f.Content) {
			break
		}
		shown := expandTabs(text)
		if opts.Width > 0 {
			shown = runewidth.Truncate(shown, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s %s\n", p.lineNo.Sprintf("%*d", gutter, ln), p.dim.Sprint("|"), shown)
		if ln != start.Line {
			continue
		}

		// подчёркивание только в пределах первой строки
		col := int(start.Col) - 1
		stop := len(text)
		if end.Line == start.Line {
			stop = int(end.Col) - 1
		}
		col = min(col, len(text))
		stop = min(max(stop, col), len(text))
		pad := runewidth.StringWidth(expandTabs(text[:col]))
		width := max(runewidth.StringWidth(expandTabs(text[col:stop])), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutter), p.dim.Sprint("|"), strings.Repeat(" ", pad), p.level(level).Sprint(marks))
	}
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

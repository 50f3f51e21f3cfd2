// Package diagfmt renders markers, tokens and trees for the command line.
package diagfmt

import (
	"fmt"
	"strings"

	"cascade/internal/diag"
	"cascade/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// ParsePathMode accepts auto, absolute, relative and basename.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected auto|absolute|relative|basename)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	Context  int8 // строк контекста до и после
	PathMode PathMode
	BaseDir  string
	Width    uint8 // максимальная ширина строки, 0 - не ограничено
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	BaseDir          string
	Max              int // обрезка вывода, не Bag
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
	BaseDir        string
}

// FileMarkers pairs a file with the markers reported for it.
type FileMarkers struct {
	// Path names the file when File is nil (unreadable files, stdin).
	Path    string
	File    *source.File
	Markers []diag.Marker
	// Err is a read or dialect failure; it replaces the markers.
	Err error
}

func (fm FileMarkers) displayPath(mode PathMode, baseDir string) string {
	if fm.File != nil {
		return formatPath(fm.File, mode, baseDir)
	}
	if fm.Path != "" {
		return fm.Path
	}
	return "<input>"
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if mode == PathModeAuto {
		// короткие пути как есть, длинные абсолютные: относительно базы
		if len(f.Path) <= 40 || baseDir == "" {
			return f.FormatPath("auto", "")
		}
		return f.FormatPath("relative", baseDir)
	}
	return f.FormatPath(mode.String(), baseDir)
}

// span clamps a marker onto the file content.
func span(f *source.File, m diag.Marker) source.Span {
	off := min(max(m.Offset, 0), len(f.Content))
	end := min(max(m.End(), off), len(f.Content))
	return source.SpanOf(f.ID, off, end-off)
}

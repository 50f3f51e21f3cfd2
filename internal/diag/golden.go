package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"cascade/internal/source"
)

type goldenMarker struct {
	Level   string
	ID      string
	Path    string
	Line    uint32
	Column  uint32
	Message string
}

// FormatGoldenMarkers renders markers one per line as
// "<level> <rule-id> <path>:<line>:<col> <message>", sorted deterministically.
// Ignored markers are dropped. The result is empty when nothing remains.
func FormatGoldenMarkers(markers []Marker, file *source.File, baseDir string) string {
	if file == nil || len(markers) == 0 {
		return ""
	}
	path := normalizePath(file.FormatPath("relative", baseDir))

	rendered := make([]goldenMarker, 0, len(markers))
	for _, m := range markers {
		if m.Level == LevelIgnore {
			continue
		}
		pos := file.LineCol(source.SpanOf(file.ID, m.Offset, m.Length).Start)
		rendered = append(rendered, goldenMarker{
			Level:   m.Level.String(),
			ID:      m.Kind.ID(),
			Path:    path,
			Line:    pos.Line,
			Column:  pos.Col,
			Message: sanitizeMessage(m.Message),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Level != dj.Level {
			return di.Level < dj.Level
		}
		if di.ID != dj.ID {
			return di.ID < dj.ID
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Level, d.ID, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}

package diagfmt

import (
	"encoding/json"
	"io"

	"cascade/internal/diag"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет маркер в JSON формате
type DiagnosticJSON struct {
	Level    string       `json:"level"`
	Rule     string       `json:"rule"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FileErrorJSON is a file that could not be analysed at all.
type FileErrorJSON struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Failed      []FileErrorJSON  `json:"failed,omitempty"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(files []FileMarkers, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0)}
	for _, fm := range files {
		path := fm.displayPath(opts.PathMode, opts.BaseDir)
		if fm.Err != nil {
			out.Failed = append(out.Failed, FileErrorJSON{File: path, Error: fm.Err.Error()})
			continue
		}
		for _, m := range fm.Markers {
			if m.Level == diag.LevelIgnore {
				continue
			}
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				break
			}
			loc := LocationJSON{File: path}
			if fm.File != nil {
				sp := span(fm.File, m)
				loc.StartByte, loc.EndByte = sp.Start, sp.End
				// Добавляем позиции строк/колонок если требуется
				if opts.IncludePositions {
					start, end := fm.File.LineCol(sp.Start), fm.File.LineCol(sp.End)
					loc.StartLine, loc.StartCol = start.Line, start.Col
					loc.EndLine, loc.EndCol = end.Line, end.Col
				}
			}
			out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
				Level:    m.Level.String(),
				Rule:     m.Kind.ID(),
				Message:  m.Message,
				Location: loc,
			})
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует маркеры в JSON.
func JSON(w io.Writer, files []FileMarkers, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(files, opts))
}

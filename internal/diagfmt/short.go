package diagfmt

import (
	"fmt"
	"io"

	"cascade/internal/diag"
)

// Short prints one line per marker, "<level> <rule-id> <path>:<line>:<col> <message>",
// the same shape golden files use.
func Short(w io.Writer, files []FileMarkers, baseDir string) error {
	for _, fm := range files {
		if fm.Err != nil {
			if _, err := fmt.Fprintf(w, "error - %s %s\n", fm.displayPath(PathModeRelative, baseDir), fm.Err); err != nil {
				return err
			}
			continue
		}
		out := diag.FormatGoldenMarkers(fm.Markers, fm.File, baseDir)
		if out == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

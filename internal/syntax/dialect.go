package syntax

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect selects the grammar extensions the lexer and parser accept.
type Dialect uint8

const (
	DialectCSS Dialect = iota
	DialectSCSS
	DialectLESS
)

func (d Dialect) String() string {
	switch d {
	case DialectCSS:
		return "css"
	case DialectSCSS:
		return "scss"
	case DialectLESS:
		return "less"
	default:
		return "unknown"
	}
}

// IsPreprocessor: SCSS or LESS.
func (d Dialect) IsPreprocessor() bool {
	return d == DialectSCSS || d == DialectLESS
}

// ParseDialect accepts css, scss and less in any case.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "css":
		return DialectCSS, nil
	case "scss", "sass":
		return DialectSCSS, nil
	case "less":
		return DialectLESS, nil
	default:
		return DialectCSS, fmt.Errorf("invalid dialect %q (expected css|scss|less)", s)
	}
}

// DialectForPath picks the dialect by file extension.
func DialectForPath(path string) (Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return DialectCSS, true
	case ".scss":
		return DialectSCSS, true
	case ".less":
		return DialectLESS, true
	default:
		return DialectCSS, false
	}
}

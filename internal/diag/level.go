package diag

import (
	"fmt"
	"strings"
)

// Level is the severity attached to a Marker when it is created.
type Level uint8

const (
	LevelIgnore Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelIgnore:
		return "ignore"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// ParseLevel accepts ignore, warning and error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "off":
		return LevelIgnore, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	default:
		return LevelIgnore, fmt.Errorf("invalid level %q (expected ignore|warning|error)", s)
	}
}

// DefaultLevel: every parse error kind surfaces as an error unless a
// Levels override says otherwise.
func DefaultLevel(ErrorKind) Level {
	return LevelError
}

// Levels overrides DefaultLevel per kind. The zero value uses the defaults.
type Levels map[ErrorKind]Level

// For resolves the level of k.
func (ls Levels) For(k ErrorKind) Level {
	if l, ok := ls[k]; ok {
		return l
	}
	return DefaultLevel(k)
}

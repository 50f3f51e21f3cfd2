// Package fix derives mechanical repairs from parse markers and applies them
// to a source buffer.
package fix

import (
	"fmt"

	"cascade/internal/diag"
)

// Applicability says how sure a fix is to produce what the author meant.
type Applicability uint8

const (
	AlwaysSafe Applicability = iota
	SafeWithHeuristics
)

func (a Applicability) String() string {
	switch a {
	case AlwaysSafe:
		return "always-safe"
	case SafeWithHeuristics:
		return "safe-with-heuristics"
	default:
		return fmt.Sprintf("Applicability(%d)", uint8(a))
	}
}

// Edit replaces Length bytes at Offset with NewText. A non-empty OldText
// must match the replaced bytes for the edit to apply.
type Edit struct {
	Offset  int
	Length  int
	NewText string
	OldText string
}

// End is Offset+Length.
func (e Edit) End() int {
	return e.Offset + e.Length
}

// Fix is a titled group of edits repairing one marker.
type Fix struct {
	ID            string
	Title         string
	Kind          diag.ErrorKind
	Applicability Applicability
	IsPreferred   bool
	Edits         []Edit
}

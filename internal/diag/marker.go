package diag

import "fmt"

// Marker is a positioned, leveled issue. Offset and Length are in bytes.
type Marker struct {
	Kind    ErrorKind
	Level   Level
	Message string
	Offset  int
	Length  int
}

// Rule returns the canonical rule of the marker's kind.
func (m Marker) Rule() Rule {
	return m.Kind.Issue()
}

// End is Offset+Length.
func (m Marker) End() int {
	return m.Offset + m.Length
}

func (m Marker) String() string {
	return fmt.Sprintf("%s[%s] %d+%d: %s", m.Level, m.Kind.ID(), m.Offset, m.Length, m.Message)
}

// FilterLevel keeps markers at or above min, preserving order.
func FilterLevel(markers []Marker, min Level) []Marker {
	out := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if m.Level >= min {
			out = append(out, m)
		}
	}
	return out
}

package lexer

import "cascade/internal/diag"

// BagReporter складывает лексические ошибки в diag.Bag как маркеры.
type BagReporter struct {
	Bag    *diag.Bag
	Levels diag.Levels
}

func (r *BagReporter) Report(kind diag.ErrorKind, offset, length int, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(diag.Marker{
		Kind:    kind,
		Level:   r.Levels.For(kind),
		Message: msg,
		Offset:  offset,
		Length:  length,
	})
}

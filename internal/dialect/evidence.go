package dialect

import "cascade/internal/syntax"

// Hint is one observed signal: where it was seen and how strongly it points
// at a dialect.
type Hint struct {
	Dialect syntax.Dialect
	Score   int
	Reason  string
	Offset  int
}

// Evidence accumulates hints and keeps a running score per dialect.
// The zero value is not usable; a nil *Evidence ignores additions.
type Evidence struct {
	hints  []Hint
	scores [dialectCount]int
	total  int
}

func NewEvidence() *Evidence {
	return &Evidence{hints: make([]Hint, 0, 16)}
}

// Add records h. Non-positive scores and unknown dialects are kept as
// observations but do not count.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
	if h.Score > 0 && int(h.Dialect) < dialectCount {
		e.scores[h.Dialect] += h.Score
		e.total += h.Score
	}
}

// Hints returns the collected hints in observation order.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// Score is the accumulated score of d.
func (e *Evidence) Score(d syntax.Dialect) int {
	if e == nil || int(d) >= dialectCount {
		return 0
	}
	return e.scores[d]
}

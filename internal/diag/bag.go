package diag

import (
	"sort"
)

// Bag collects markers up to a cap. A cap of 0 means unlimited.
type Bag struct {
	items []Marker
	max   int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Marker, 0, min(max, 64)),
		max:   max,
	}
}

// Add добавляет маркер, учитывая лимит.
// Возвращает false, если лимит достигнут.
func (b *Bag) Add(m Marker) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, m)
	return true
}

// AddAll adds until the cap is hit and reports how many were dropped.
func (b *Bag) AddAll(ms []Marker) (dropped int) {
	for i, m := range ms {
		if !b.Add(m) {
			return len(ms) - i
		}
	}
	return 0
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors возвращает true, если есть хотя бы один маркер уровня Error
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Level >= LevelError {
			return true
		}
	}
	return false
}

// HasWarnings возвращает true, если есть маркер уровня Warning или выше
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Level >= LevelWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice маркеров.
// ВАЖНО: не модифицируйте возвращаемый срез!
func (b *Bag) Items() []Marker {
	return b.items
}

// Sort orders by offset, length, level (desc), rule id.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		mi, mj := b.items[i], b.items[j]
		if mi.Offset != mj.Offset {
			return mi.Offset < mj.Offset
		}
		if mi.Length != mj.Length {
			return mi.Length < mj.Length
		}
		if mi.Level != mj.Level {
			return mi.Level > mj.Level
		}
		return mi.Kind.ID() < mj.Kind.ID()
	})
}

// простая дедупликация (по Kind+Offset+Length)
func (b *Bag) Dedup() {
	type key struct {
		kind        ErrorKind
		off, length int
	}
	seen := make(map[key]bool, len(b.items))
	out := b.items[:0]
	for _, m := range b.items {
		k := key{m.Kind, m.Offset, m.Length}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	b.items = out
}

package cssnode

import (
	"fmt"

	"fortio.org/safecast"
)

// arena хранит значения подряд; индексы 1-based, 0 = нет значения.
type arena[T any] struct {
	data []T
}

func newArena[T any](capHint int) *arena[T] {
	return &arena[T]{data: make([]T, 0, capHint)}
}

func (a *arena[T]) allocate(value T) uint32 {
	a.data = append(a.data, value)
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}

func (a *arena[T]) get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *arena[T]) len() int {
	return len(a.data)
}

package layout

// buffer is a growable slice that is refilled on every layout pass.
// Capacity grows on demand and is only given back when a pass needs less
// than half of it.
type buffer[T any] struct {
	items []T
}

// reset empties the buffer ahead of a pass expected to hold about need items.
func (b *buffer[T]) reset(need int) {
	if need < 0 {
		need = 0
	}
	switch {
	case cap(b.items) < need, need < cap(b.items)/2:
		b.items = make([]T, 0, need)
	default:
		b.items = b.items[:0]
	}
}

// push stores v in the next slot, overwriting whatever a previous pass left there.
func (b *buffer[T]) push(v T) int {
	b.items = append(b.items, v)
	return len(b.items) - 1
}

func (b *buffer[T]) at(i int) *T { return &b.items[i] }

func (b *buffer[T]) size() int { return len(b.items) }

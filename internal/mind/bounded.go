// /internal/mind/bounded.go
package mind

// history is an append-only buffer that trims itself back to keep entries
// once it grows past max. Trimming in batches avoids shifting the slice on
// every push.
type history[T any] struct {
	max   int
	keep  int
	items []T
}

func newHistory[T any](max, keep int) *history[T] {
	return &history[T]{max: max, keep: keep}
}

func (h *history[T]) Push(item T) {
	h.items = append(h.items, item)
	if len(h.items) > h.max {
		h.items = append(h.items[:0], h.items[len(h.items)-h.keep:]...)
	}
}

func (h *history[T]) Len() int { return len(h.items) }

func (h *history[T]) Items() []T { return h.items }

// Last returns up to n most recent entries, oldest first.
func (h *history[T]) Last(n int) []T {
	if n >= len(h.items) {
		return h.items
	}
	return h.items[len(h.items)-n:]
}

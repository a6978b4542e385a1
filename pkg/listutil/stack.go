package listutil

// Stack is a LIFO stack backed by a slice.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top item, ok is false when the stack is empty.
func (s *Stack[T]) Pop() (v T, ok bool) {
	if len(s.items) == 0 {
		return v, false
	}
	v = s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

// Items returns a copy of the stack, bottom first.
func (s *Stack[T]) Items() []T {
	return append([]T{}, s.items...)
}

func (s *Stack[T]) Len() int { return len(s.items) }

func (s *Stack[T]) Clear() { s.items = nil }

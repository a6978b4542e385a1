package ringbuffer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCapacity = errors.New("invalid capacity")
	ErrEmptyBuffer     = errors.New("empty buffer")
)

type Mode int

const (
	// Filling is the initial mode, items are appended at the end.
	Filling Mode = iota
	// Full is entered once the buffer reaches its capacity and never left.
	Full
)

func (m Mode) String() string {
	switch m {
	case Filling:
		return "filling"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Ring is a fixed capacity buffer that overwrites its oldest item once
// full. It is not safe for concurrent use.
type Ring[T any] struct {
	capacity int
	items    []T
	mode     Mode
	// cursor is the next slot to overwrite, only valid in Full mode
	cursor int
}

func New[T any](capacity int) (*Ring[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1, got: %d", ErrInvalidCapacity, capacity)
	}
	return &Ring[T]{
		capacity: capacity,
		items:    make([]T, 0, capacity),
		mode:     Filling,
	}, nil
}

// Append adds x as the newest item, overwriting the oldest one when full.
func (r *Ring[T]) Append(x T) {
	switch r.mode {
	case Filling:
		r.items = append(r.items, x)
		if len(r.items) == r.capacity {
			r.mode = Full
			r.cursor = 0
		}
	case Full:
		r.items[r.cursor] = x
		r.cursor = (r.cursor + 1) % r.capacity
	}
}

// Replace overwrites the most recently appended item.
func (r *Ring[T]) Replace(x T) error {
	switch r.mode {
	case Filling:
		if len(r.items) == 0 {
			return fmt.Errorf("%w: nothing to replace", ErrEmptyBuffer)
		}
		r.items[len(r.items)-1] = x
	case Full:
		// back up to the last written slot, the next append still
		// overwrites the same slot it would have otherwise
		last := (r.cursor - 1 + r.capacity) % r.capacity
		r.items[last] = x
	}
	return nil
}

// Items returns a copy of the items ordered from oldest to newest.
func (r *Ring[T]) Items() []T {
	out := make([]T, 0, len(r.items))
	if r.mode == Filling {
		return append(out, r.items...)
	}
	out = append(out, r.items[r.cursor:]...)
	return append(out, r.items[:r.cursor]...)
}

func (r *Ring[T]) Len() int { return len(r.items) }

func (r *Ring[T]) Cap() int { return r.capacity }

func (r *Ring[T]) Mode() Mode { return r.mode }

func (r *Ring[T]) IsFull() bool { return r.mode == Full }

package rangeset

// Iterator walks a sorted slice of values.
type Iterator struct {
	current int
	values  []int
}

func NewIterator(values []int) *Iterator {
	return &Iterator{current: -1, values: values}
}

func (r *Iterator) Value() int {
	return r.values[r.current]
}

func (r *Iterator) Next() bool {
	r.current++
	return r.current < len(r.values)
}

// IsConsecutive reports whether the current value directly follows the
// previous one.
func (r *Iterator) IsConsecutive() bool {
	if r.current < 1 {
		return false
	}
	return r.values[r.current-1] == r.values[r.current]-1
}

package rangeset

import (
	"errors"
	"fmt"
	"strings"
)

// Builder collects ranges to add and remove and produces a normalized Set.
// The zero value is ready to use.
type Builder struct {
	in   []Range
	out  []Range
	errs error
}

func (s *Builder) Add(v int) {
	s.AddRange(Range{From: v, To: v})
}

// Remove removes v from the set being built.
func (s *Builder) Remove(v int) {
	s.RemoveRange(Range{From: v, To: v})
}

func (s *Builder) AddRange(r Range) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("%w: addRange(%d-%d)", ErrMalformedRange, r.From, r.To))
		return
	}
	if len(s.out) > 0 {
		s.normalize()
	}
	s.in = append(s.in, r)
}

// RemoveRange removes all values in r from s.
func (s *Builder) RemoveRange(r Range) {
	if !r.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("%w: removeRange(%d-%d)", ErrMalformedRange, r.From, r.To))
		return
	}
	s.out = append(s.out, r)
}

// AddSet adds all values in b to s.
func (s *Builder) AddSet(b *Set) {
	if b == nil {
		return
	}
	for _, r := range b.rr {
		s.AddRange(r)
	}
}

// normalize makes s.in the minimal sorted list of ranges describing s
// and empties s.out.
func (s *Builder) normalize() {
	in, ok := mergeRanges(s.in)
	if !ok {
		return
	}
	out, ok := mergeRanges(s.out)
	if !ok {
		return
	}
	// in and out are sorted and have no overlaps within each other, so
	// one merge pass is enough.
	min := make([]Range, 0, len(in))
	for len(in) > 0 && len(out) > 0 {
		rin, rout := in[0], out[0]

		switch {
		case rout.entirelyBefore(rin):
			//    out         in
			// f-------t   f-------t
			out = out[1:]
		case rin.entirelyBefore(rout):
			//    in         out
			// f------t   f-------t
			min = append(min, rin)
			in = in[1:]
		case rin.coveredBy(rout):
			//       out
			// f-------------t
			//    f------t
			//       in
			in = in[1:]
		case rout.inMiddleOf(rin):
			//       in
			// f-------------t
			//    f------t
			//       out
			min = append(min, Range{From: rin.From, To: rout.From - 1})
			// adjust in[0], the remainder is considered on the next pass
			in[0].From = rout.To + 1
			out = out[1:]
		case rout.overlapsStartOf(rin):
			//   out
			// f------t
			//    f------t
			//       in
			in[0].From = rout.To + 1
			// a later out might trim in[0] further
			out = out[1:]
		case rout.overlapsEndOf(rin):
			//           out
			//        f------t
			//    f------t
			//       in
			min = append(min, Range{From: rin.From, To: rout.From - 1})
			in = in[1:]
		default:
			panic("unexpected additional overlap scenario")
		}
	}
	if len(in) > 0 {
		min = append(min, in...)
	}

	s.in = min
	s.out = nil
}

// Set returns the normalized set. Errors from invalid ranges added to the
// builder are returned joined; the set still holds every valid range.
func (s *Builder) Set() (*Set, error) {
	s.normalize()
	set := &Set{
		rr: append([]Range{}, s.in...),
	}
	if s.errs == nil {
		return set, nil
	}
	errs := s.errs
	s.errs = nil
	return set, errs
}

// Set is an immutable integer range set.
type Set struct {
	// rr is sorted and minimal: no overlapping and no adjacent ranges.
	rr []Range
}

// Parse builds a Set from a range string such as "1-4, 7, 9-12".
func Parse(spec string) (*Set, error) {
	values, err := Expand(spec)
	if err != nil {
		return nil, err
	}
	var b Builder
	for _, v := range values {
		b.Add(v)
	}
	return b.Set()
}

// Ranges returns the minimum and sorted set of ranges that covers s.
func (s *Set) Ranges() []Range {
	return append([]Range{}, s.rr...)
}

func (s *Set) Values() []int {
	var out []int
	for _, r := range s.rr {
		out = r.AppendValues(out)
	}
	return out
}

func (s *Set) Len() int {
	n := 0
	for _, r := range s.rr {
		n += r.Len()
	}
	return n
}

func (s *Set) Contains(v int) bool {
	for _, r := range s.rr {
		if r.Contains(v) {
			return true
		}
		if v < r.From {
			return false
		}
	}
	return false
}

// String returns the collapsed form, e.g. "1-4, 7, 9-12".
func (s *Set) String() string {
	parts := make([]string, 0, len(s.rr))
	for _, r := range s.rr {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

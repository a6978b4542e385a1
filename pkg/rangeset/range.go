package rangeset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Range is an inclusive range of non-negative integers.
type Range struct {
	From int
	To   int
}

func RangeFrom(from, to int) Range {
	return Range{From: from, To: to}
}

// ParseRange parses "a-b" or a single value "a".
func ParseRange(s string) (Range, error) {
	var r Range
	s = strings.TrimSpace(s)
	h := strings.IndexByte(s, '-')
	if h == -1 {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return r, fmt.Errorf("%w: invalid value %q", ErrMalformedRange, s)
		}
		return Range{From: v, To: v}, nil
	}
	from, to := strings.TrimSpace(s[:h]), strings.TrimSpace(s[h+1:])
	fromInt, err := strconv.Atoi(from)
	if err != nil || fromInt < 0 {
		return r, fmt.Errorf("%w: invalid from %q in range %q", ErrMalformedRange, from, s)
	}
	toInt, err := strconv.Atoi(to)
	if err != nil || toInt < 0 {
		return r, fmt.Errorf("%w: invalid to %q in range %q", ErrMalformedRange, to, s)
	}
	r = Range{From: fromInt, To: toInt}
	if !r.IsValid() {
		return Range{}, fmt.Errorf("%w: bad range %q", ErrMalformedRange, s)
	}
	return r, nil
}

// String renders the range the way Collapse does: "a" or "a-b".
func (r Range) String() string {
	if r.From == r.To {
		return strconv.Itoa(r.From)
	}
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

func (r Range) IsValid() bool {
	return r.From >= 0 && r.From <= r.To
}

func (r Range) IsZero() bool {
	return r == Range{}
}

func (r Range) Len() int {
	return r.To - r.From + 1
}

func (r Range) Contains(v int) bool {
	return r.From <= v && v <= r.To
}

func (r Range) Values() []int {
	return r.AppendValues(nil)
}

func (r Range) AppendValues(dst []int) []int {
	for v := r.From; v <= r.To; v++ {
		dst = append(dst, v)
	}
	return dst
}

func (r Range) less(other Range) bool {
	if r.From != other.From {
		return r.From < other.From
	}
	return other.To < r.To
}

// entirelyBefore returns whether r lies entirely before other.
func (r Range) entirelyBefore(other Range) bool {
	return r.To < other.From
}

// coveredBy returns whether r is entirely contained within other.
func (r Range) coveredBy(other Range) bool {
	return other.From <= r.From && r.To <= other.To
}

// inMiddleOf returns whether r is inside other, but not touching the
// edges of other.
func (r Range) inMiddleOf(other Range) bool {
	return other.From < r.From && r.To < other.To
}

// overlapsStartOf returns whether r entirely overlaps the start of
// other, but not all of other.
func (r Range) overlapsStartOf(other Range) bool {
	return r.From <= other.From && r.To < other.To
}

// overlapsEndOf returns whether r entirely overlaps the end of
// other, but not all of other.
func (r Range) overlapsEndOf(other Range) bool {
	return other.From < r.From && other.To <= r.To
}

// mergeRanges returns the minimum and sorted set of ranges that
// cover rr.
func mergeRanges(rr []Range) (out []Range, valid bool) {
	switch len(rr) {
	case 0:
		return nil, true
	case 1:
		if !rr[0].IsValid() {
			return nil, false
		}
		return []Range{rr[0]}, true
	}

	// sort a copy, the caller keeps its slice
	sorted := append([]Range{}, rr...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })
	if !sorted[0].IsValid() {
		return nil, false
	}
	out = make([]Range, 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case !r.IsValid():
			return nil, false
		case prev.To+1 == r.From:
			// prev and r touch, merge them.
			//
			//   prev     r
			// f------tf-----t
			prev.To = r.To
		case prev.To < r.From:
			// No overlap and not adjacent.
			//
			//   prev       r
			// f------t  f-----t
			out = append(out, r)
		case prev.To < r.To:
			// Partial overlap, update prev
			//
			//   prev
			// f------t
			//     f-----t
			//        r
			prev.To = r.To
		default:
			// r entirely contained in prev, nothing to do.
		}
	}
	return out, true
}

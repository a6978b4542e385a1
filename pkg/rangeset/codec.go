package rangeset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

var ErrMalformedRange = errors.New("malformed range")

// MaxRangeLen is the largest number of values a single range token may
// expand to.
const MaxRangeLen = 1 << 20

const digits = "0123456789"

// ExpandTokens expands a range string into its tokens, e.g.
// "x01-x03, y" -> ["x01", "x02", "x03", "y"].
//
// Tokens are separated by ',' and trimmed. A token holding exactly one '-'
// is a range: the header (the left side without its trailing digits) is
// reattached to every expanded value and zero padding of the lower bound is
// preserved. Any other token is returned unchanged. The result holds every
// token once, in order of first occurrence.
func ExpandTokens(spec string) ([]string, error) {
	seen := sets.New[string]()
	var tokens []string
	add := func(t string) {
		if seen.Has(t) {
			return
		}
		seen.Insert(t)
		tokens = append(tokens, t)
	}

	for _, n := range strings.Split(spec, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		parts := strings.Split(n, "-")
		if len(parts) != 2 {
			add(n)
			continue
		}
		expanded, err := expandToken(n, parts[0], parts[1])
		if err != nil {
			return nil, err
		}
		for _, t := range expanded {
			add(t)
		}
	}
	return tokens, nil
}

func expandToken(token, left, right string) ([]string, error) {
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	header := strings.TrimRight(left, digits)
	lower := left[len(header):]
	upper := strings.TrimPrefix(right, header)

	if lower == "" || upper == "" {
		return nil, fmt.Errorf("%w: empty range: %s", ErrMalformedRange, token)
	}
	if strings.Trim(upper, digits) != "" {
		return nil, fmt.Errorf("%w: bad upper bound: %s", ErrMalformedRange, token)
	}

	// "0-12" is a plain numeric range, "x0-x12" and "01-12" are padded.
	width := 0
	if lower[0] == '0' && (len(lower) > 1 || header != "") {
		if len(upper) > len(lower) {
			return nil, fmt.Errorf("%w: wide range: %s", ErrMalformedRange, token)
		}
		width = len(lower)
	}

	lo, err := strconv.Atoi(lower)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRange, token, err)
	}
	hi, err := strconv.Atoi(upper)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRange, token, err)
	}
	if lo > hi {
		return nil, fmt.Errorf("%w: bad range: %s", ErrMalformedRange, token)
	}
	// lo and hi are non-negative, hi-lo cannot overflow
	if hi-lo >= MaxRangeLen {
		return nil, fmt.Errorf("%w: range %s exceeds %d values", ErrMalformedRange, token, MaxRangeLen)
	}

	var out []string
	for n := 0; n <= hi-lo; n++ {
		out = append(out, fmt.Sprintf("%s%0*d", header, width, lo+n))
	}
	return out, nil
}

// Expand converts a range string into a sorted list of unique integers,
// e.g. "1-4, 7, 9-12" -> [1 2 3 4 7 9 10 11 12]. Tokens that are not
// base-10 integers are dropped.
func Expand(spec string) ([]int, error) {
	tokens, err := ExpandTokens(spec)
	if err != nil {
		return nil, err
	}
	values := sets.New[int]()
	for _, t := range tokens {
		v, err := strconv.Atoi(t)
		if err != nil || v < 0 {
			continue
		}
		values.Insert(v)
	}
	return sets.List(values), nil
}

// Collapse converts integers into a range string, e.g.
// [1 2 3 4 7 9 10 11 12] -> "1-4, 7, 9-12". Headers are never
// reconstructed. The input is sorted and de-duplicated on a copy.
func Collapse(values []int) string {
	if len(values) == 0 {
		return ""
	}

	var runs []Range
	iter := NewIterator(sets.List(sets.New(values...)))
	for iter.Next() {
		if iter.IsConsecutive() {
			runs[len(runs)-1].To = iter.Value()
			continue
		}
		runs = append(runs, Range{From: iter.Value(), To: iter.Value()})
	}

	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ", ")
}

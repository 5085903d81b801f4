package pred

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize renders p as its ranges form, e.g. "41-5a,61-7a" for [A-Za-z].
// The empty predicate serializes to the empty string.
func Serialize(p Pred) string {
	parts := make([]string, len(p.ranges))
	for i, r := range p.ranges {
		if r.Lo == r.Hi {
			parts[i] = strconv.FormatInt(int64(r.Lo), 16)
		} else {
			parts[i] = fmt.Sprintf("%x-%x", r.Lo, r.Hi)
		}
	}
	return strings.Join(parts, ",")
}

// Deserialize parses the ranges form produced by Serialize back into a Pred.
func Deserialize(s string) (Pred, error) {
	if s == "" {
		return None(), nil
	}
	var rs []Range
	for _, part := range strings.Split(s, ",") {
		lo, hi, err := parseRangePart(part)
		if err != nil {
			return Pred{}, err
		}
		rs = append(rs, Range{lo, hi})
	}
	return Pred{ranges: mkRangesOf(rs)}, nil
}

func parseRangePart(part string) (rune, rune, error) {
	if dash := strings.IndexByte(part, '-'); dash > 0 {
		lo, err := strconv.ParseInt(part[:dash], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("pred: bad range bound %q: %w", part, err)
		}
		hi, err := strconv.ParseInt(part[dash+1:], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("pred: bad range bound %q: %w", part, err)
		}
		return rune(lo), rune(hi), nil
	}
	v, err := strconv.ParseInt(part, 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("pred: bad code point %q: %w", part, err)
	}
	return rune(v), rune(v), nil
}

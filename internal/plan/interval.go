package plan

import "sort"

// Span is a half-open range [Start,End) of minutes since local
// midnight.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Clamp restricts each span to [minStart,maxEnd), drops spans that
// become empty or inverted, and returns the rest sorted by start.
// Malformed input spans (End <= Start) disappear here, never later.
func Clamp(spans []Span, minStart, maxEnd int) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		s := max(minStart, sp.Start)
		e := min(maxEnd, sp.End)
		if e > s {
			out = append(out, Span{Start: s, End: e})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Merge folds overlapping or adjacent spans into one. The input must
// already be sorted by start; Clamp produces exactly that shape.
func Merge(spans []Span) []Span {
	if len(spans) == 0 {
		return []Span{}
	}
	out := make([]Span, 0, len(spans))
	cur := spans[0]
	for _, sp := range spans[1:] {
		if sp.Start <= cur.End {
			if sp.End > cur.End {
				cur.End = sp.End
			}
			continue
		}
		out = append(out, cur)
		cur = sp
	}
	return append(out, cur)
}

// Invert returns the gaps inside [minStart,maxEnd) not covered by the
// busy spans. Busy spans are clamped and merged first, so raw
// materializer output is acceptable input.
func Invert(busy []Span, minStart, maxEnd int) []Span {
	merged := Merge(Clamp(busy, minStart, maxEnd))
	free := make([]Span, 0, len(merged)+1)
	cur := minStart
	for _, sp := range merged {
		if sp.Start > cur {
			free = append(free, Span{Start: cur, End: sp.Start})
		}
		if sp.End > cur {
			cur = sp.End
		}
	}
	if cur < maxEnd {
		free = append(free, Span{Start: cur, End: maxEnd})
	}
	return free
}

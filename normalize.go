package rangeset

import (
	"sort"
	"strings"
)

// RangeSet is a canonical sequence of Ranges: ascending by start, with no two consecutive ranges overlapping or adjacent.
// The zero value is the empty set.
//
// RangeSets are only created by Normalize and are never modified after creation.
type RangeSet struct {
	ranges []Range
}

// Normalize merges ranges into the unique canonical RangeSet covering exactly the same points.
// Overlapping and adjacent ranges are merged, so [1,5] and [6,10] become [1,10] while [1,3] and [5,7] stay apart.
//
// Normalize never fails and never modifies ranges. Normalizing an already canonical sequence returns it unchanged.
func Normalize(ranges []Range) RangeSet {
	if len(ranges) == 0 {
		return RangeSet{}
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].start != sorted[b].start {
			return sorted[a].start < sorted[b].start
		}
		return sorted[a].end < sorted[b].end
	})

	merged := make([]Range, 0, len(sorted))
	accumulator := sorted[0]
	for _, r := range sorted[1:] {
		if next, ok := accumulator.Merge(r); ok {
			accumulator = next
			continue
		}
		merged = append(merged, accumulator)
		accumulator = r
	}
	merged = append(merged, accumulator)
	return RangeSet{ranges: merged}
}

// IsCanonical returns true if ranges is ascending and no two consecutive ranges overlap or touch
func IsCanonical(ranges []Range) bool {
	for i := 1; i < len(ranges); i++ {
		prev, r := ranges[i-1], ranges[i]
		if r.start <= prev.start || prev.touches(r) {
			return false
		}
	}
	return true
}

// Ranges returns a copy of the set's ranges in ascending order
func (s RangeSet) Ranges() []Range {
	if len(s.ranges) == 0 {
		return nil
	}
	ranges := make([]Range, len(s.ranges))
	copy(ranges, s.ranges)
	return ranges
}

// Len returns the number of ranges in the set
func (s RangeSet) Len() int {
	return len(s.ranges)
}

// IsEmpty returns true if the set covers no points
func (s RangeSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Contains returns true if n is covered by any range in the set
func (s RangeSet) Contains(n int64) bool {
	i := sort.Search(len(s.ranges), func(i int) bool {
		return s.ranges[i].end >= n
	})
	return i < len(s.ranges) && s.ranges[i].Contains(n)
}

// Span returns the smallest Range covering every point in the set. Returns false if the set is empty.
func (s RangeSet) Span() (Range, bool) {
	if len(s.ranges) == 0 {
		return Range{}, false
	}
	return Range{
		start: s.ranges[0].start,
		end:   s.ranges[len(s.ranges)-1].end,
	}, true
}

// Equal returns true if s and other cover the same points
func (s RangeSet) Equal(other RangeSet) bool {
	if len(s.ranges) != len(other.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

func (s RangeSet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	for i, r := range s.ranges {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(r.String())
	}
	sb.WriteRune('}')
	return sb.String()
}

// Package rangeset normalizes collections of inclusive integer ranges into their minimal canonical form.
//
// Ranges are parsed from user text with Parse, merged into a canonical RangeSet with Normalize,
// and rendered for display with Format or for copying with Serialize:
//
//	ranges, err := rangeset.Parse("1-3, 2-5, 9")
//	if err != nil {
//		return err
//	}
//	set := rangeset.Normalize(ranges)
//	fmt.Println(rangeset.Serialize(set)) // 1-5, 9
package rangeset

import (
	"fmt"
)

// Range is an inclusive integer interval [Start, End]. Ranges are immutable and compared with ==.
//
// The zero value is the single point 0.
type Range struct {
	start int64
	end   int64
}

// New returns the Range [start, end]. Returns an *InvalidRangeError if start > end.
func New(start, end int64) (Range, error) {
	if start > end {
		return Range{}, &InvalidRangeError{
			Start:  start,
			End:    end,
			Reason: startAfterEndReason(start, end),
		}
	}
	return Range{start: start, end: end}, nil
}

// Point returns the Range containing only n
func Point(n int64) Range {
	return Range{start: n, end: n}
}

// Start returns the first point in r
func (r Range) Start() int64 {
	return r.start
}

// End returns the last point in r
func (r Range) End() int64 {
	return r.end
}

// IsPoint returns true if r covers exactly one point
func (r Range) IsPoint() bool {
	return r.start == r.end
}

// Contains returns true if n is inside r
func (r Range) Contains(n int64) bool {
	return r.start <= n && n <= r.end
}

// Len returns the number of points covered by r.
// The count wraps to 0 only for the range covering every int64.
func (r Range) Len() uint64 {
	return uint64(r.end) - uint64(r.start) + 1
}

// Intersection returns the Range of points covered by both r and other.
// Returns false if they do not intersect.
func (r Range) Intersection(other Range) (Range, bool) {
	intersection := Range{
		start: max(r.start, other.start),
		end:   min(r.end, other.end),
	}
	if intersection.start <= intersection.end {
		return intersection, true
	}
	return Range{}, false
}

// Merge attempts to combine r and other into a single, unified Range.
// Overlapping and adjacent ranges merge, e.g. [1,5] and [6,10] merge into [1,10].
// Returns false if a gap of one or more points separates them.
func (r Range) Merge(other Range) (Range, bool) {
	if !r.touches(other) {
		return Range{}, false
	}
	return Range{
		start: min(r.start, other.start),
		end:   max(r.end, other.end),
	}, true
}

func (r Range) touches(other Range) bool {
	first, second := r, other
	if second.start < first.start {
		first, second = second, first
	}
	// second.start > first.end implies second.start-1 cannot underflow
	return second.start <= first.end || second.start-1 == first.end
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.start, r.end)
}

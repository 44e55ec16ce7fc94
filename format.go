package rangeset

import (
	"strconv"
	"strings"
)

// Delimiter separates ranges in Serialize's output
const Delimiter = ", "

// fullDomainLen is the number of points in [math.MinInt64, math.MaxInt64], which does not fit in a uint64
const fullDomainLen = "18446744073709551616"

// Row is one line of a DisplayModel, matching the start / extent / end columns of a grid
type Row struct {
	Range  Range
	Start  string
	Extent string
	End    string
}

// DisplayModel is the display-ready form of a RangeSet, with one Row per range
type DisplayModel struct {
	Rows []Row
	// Span covers every row's range. Only valid if Rows is non-empty.
	Span Range
}

// Format returns a DisplayModel with start, extent, and end labels for each range in set
func Format(set RangeSet) DisplayModel {
	var model DisplayModel
	model.Span, _ = set.Span()
	for _, r := range set.ranges {
		model.Rows = append(model.Rows, Row{
			Range:  r,
			Start:  formatInt(r.start),
			Extent: extentLabel(r),
			End:    formatInt(r.end),
		})
	}
	return model
}

// Serialize returns set as a single string, suitable for copying and for passing back into Parse.
// Ranges are separated by Delimiter and rendered as "start-end", or just "N" for single points.
func Serialize(set RangeSet) string {
	tokens := make([]string, len(set.ranges))
	for i, r := range set.ranges {
		tokens[i] = serializeRange(r)
	}
	return strings.Join(tokens, Delimiter)
}

func serializeRange(r Range) string {
	if r.IsPoint() {
		return formatInt(r.start)
	}
	return formatInt(r.start) + "-" + formatInt(r.end)
}

func extentLabel(r Range) string {
	n := r.Len()
	switch n {
	case 0:
		return fullDomainLen + " values"
	case 1:
		return "1 value"
	default:
		return strconv.FormatUint(n, 10) + " values"
	}
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

package rangeset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// tokenRe matches "N", "N-M", and "N..M", where N and M may be negative
var tokenRe = regexp.MustCompile(`^(-?\d+)(?:\s*(?:-|\.\.)\s*(-?\d+))?$`)

const malformedReason = `expected "N", "N-M", or "N..M"`

// Parse reads zero or more ranges from text. Tokens are separated by commas or newlines and surrounding whitespace is ignored.
// Accepted tokens are a single value "N", or a pair "N-M" or "N..M".
//
// Parsing stops at the first bad token: returns a *MalformedRangeError if it does not match any accepted syntax,
// or an *InvalidRangeError if its start is after its end or an endpoint does not fit in an int64.
// Empty input returns no ranges and no error.
func Parse(text string) ([]Range, error) {
	var ranges []Range
	position := 0
	for _, token := range splitTokens(text) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		position++
		r, err := parseToken(token, position)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func splitTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
}

func parseToken(token string, position int) (Range, error) {
	match := tokenRe.FindStringSubmatch(token)
	if match == nil {
		return Range{}, &MalformedRangeError{
			Token:    token,
			Position: position,
			Reason:   malformedReason,
		}
	}
	startStr, endStr := match[1], match[2]
	if endStr == "" {
		endStr = startStr
	}

	start, err := parseEndpoint(startStr)
	if err != nil {
		return Range{}, &InvalidRangeError{Token: token, Position: position, Reason: err.Error()}
	}
	end, err := parseEndpoint(endStr)
	if err != nil {
		return Range{}, &InvalidRangeError{Token: token, Position: position, Reason: err.Error()}
	}
	r, err := New(start, end)
	var invalid *InvalidRangeError
	if errors.As(err, &invalid) {
		invalid.Token = token
		invalid.Position = position
		return Range{}, invalid
	}
	return r, err
}

func parseEndpoint(s string) (int64, error) {
	const (
		decimalBase = 10
		maxIntBits  = 64
	)
	n, err := strconv.ParseInt(s, decimalBase, maxIntBits)
	if err != nil {
		return 0, errors.Errorf("endpoint %s is out of range", s)
	}
	return n, nil
}

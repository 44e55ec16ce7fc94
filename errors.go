package rangeset

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Sentinel errors for use with errors.Is
var (
	ErrInvalidRange   = errors.New("invalid range")
	ErrMalformedRange = errors.New("malformed range")
)

// InvalidRangeError is returned when a range's start is after its end, or when an endpoint is not a valid int64
type InvalidRangeError struct {
	Token    string // empty if the Range did not come from Parse
	Position int    // 1-based token position, 0 if the Range did not come from Parse
	Start    int64
	End      int64
	Reason   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: %s", describeToken("invalid range", e.Token, e.Position), e.Reason)
}

// Is implements errors.Is() defined interface
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// MalformedRangeError is returned when a token does not match any accepted range syntax
type MalformedRangeError struct {
	Token    string
	Position int // 1-based token position
	Reason   string
}

func (e *MalformedRangeError) Error() string {
	return fmt.Sprintf("%s: %s", describeToken("malformed range", e.Token, e.Position), e.Reason)
}

// Is implements errors.Is() defined interface
func (e *MalformedRangeError) Is(target error) bool {
	return target == ErrMalformedRange
}

func describeToken(kind, token string, position int) string {
	switch {
	case token == "" && position == 0:
		return kind
	case position == 0:
		return fmt.Sprintf("%s %s", kind, strconv.Quote(token))
	default:
		return fmt.Sprintf("%s %s at token %d", kind, strconv.Quote(token), position)
	}
}

func startAfterEndReason(start, end int64) string {
	return fmt.Sprintf("start %d is greater than end %d", start, end)
}

package stylesheet

import "fmt"

// MalformedDocumentError reports a structural authoring error: a non-mapping
// where a mapping is required, or a condition key that is not an expression
// literal. It aborts the whole Load call.
type MalformedDocumentError struct {
	Msg string
}

func (e *MalformedDocumentError) Error() string {
	return "malformed stylesheet: " + e.Msg
}

// IllegalArgumentCountError reports a font or color literal called with the
// wrong number of arguments.
type IllegalArgumentCountError struct {
	Fn   string
	Got  int
	Want int
}

func (e *IllegalArgumentCountError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Fn, e.Want, e.Got)
}

package model

import (
	"errors"
	"fmt"
)

// InvalidInputError reports a situation field or lookup key that cannot be
// used, even after clamping. The offending field and value are always carried
// so callers can surface them.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ModelUnavailableError indicates that no trained artifact exists for the
// requested track and no fallback heuristic was enabled.
type ModelUnavailableError struct {
	Track string
	Err   error
}

func (e *ModelUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no trained model for track %s: %v", e.Track, e.Err)
	}
	return fmt.Sprintf("no trained model for track %s", e.Track)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// ErrPredictionOutOfBounds signals that window clamping produced an inverted
// range. It is a defect in the policy or clamp logic and must never be
// swallowed.
var ErrPredictionOutOfBounds = errors.New("pit window bounds inverted")

// IsInvalidInput reports whether err is an InvalidInputError.
func IsInvalidInput(err error) bool {
	var ie *InvalidInputError
	return errors.As(err, &ie)
}

// IsModelUnavailable reports whether err is a ModelUnavailableError.
func IsModelUnavailable(err error) bool {
	var me *ModelUnavailableError
	return errors.As(err, &me)
}

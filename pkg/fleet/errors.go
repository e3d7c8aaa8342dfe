package fleet

import "errors"

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrTripNotFound   = errors.New("trip not found")
	ErrTripFinalized  = errors.New("trip already finalized")
)

// ConflictError marks a rental transition attempted from the wrong state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// InvalidInputError marks a request that is well-formed but semantically
// invalid, e.g. negative pricing inputs.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

package ai

import "errors"

var (
	// ErrCommunication covers transport failures and responses that cannot be parsed at all.
	ErrCommunication = errors.New("ai communication failed")

	// ErrTimeout is joined with ErrCommunication when the request deadline passes.
	ErrTimeout = errors.New("ai request timed out")

	// ErrInvalidResponse means the reply parsed but does not carry a usable seating matrix.
	ErrInvalidResponse = errors.New("invalid ai response format")

	// ErrDeclined means the model filled the error field instead of a seating.
	ErrDeclined = errors.New("ai declined the request")
)

// DeclinedError carries the model's explanation verbatim.
type DeclinedError struct {
	Reason string
}

func (e *DeclinedError) Error() string {
	return ErrDeclined.Error() + ": " + e.Reason
}

// Is lets errors.Is(err, ErrDeclined) match.
func (e *DeclinedError) Is(target error) bool {
	return target == ErrDeclined
}

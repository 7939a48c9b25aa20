package processor

import "fmt"

// InputError is returned when a caller-supplied argument is out of its
// valid range, such as a transaction id the document does not hold or an
// empty path.
type InputError struct {
	Argument string
	Value    string
	Reason   string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Argument, e.Value, e.Reason)
}

// NewInputError creates an error for an out-of-range argument.
func NewInputError(argument, value, reason string) *InputError {
	return &InputError{Argument: argument, Value: value, Reason: reason}
}

// CapacityError is returned when adding a transaction to a document that
// already holds the configured maximum.
type CapacityError struct {
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("document already holds the maximum of %d transactions", e.Limit)
}

// NewCapacityError creates an error for a full document.
func NewCapacityError(limit int) *CapacityError {
	return &CapacityError{Limit: limit}
}

package document

import "fmt"

// Kind discriminates the structural and field-level failures a document can
// be rejected with.
type Kind int

const (
	// LineTooLong is a raw line exceeding the configured line length.
	LineTooLong Kind = iota
	// BadHeaderPrefix is a first line not starting with the header type code.
	BadHeaderPrefix
	// BadFooterPrefix is a last line not starting with the footer type code.
	BadFooterPrefix
	// TooManyRecords is a document exceeding the transaction ceiling.
	TooManyRecords
	// MissingTransaction is a document without a single transaction line.
	MissingTransaction
	// ReconciliationMismatch is a footer total counter that disagrees with
	// the last transaction's counter.
	ReconciliationMismatch
	// FieldDecode is a malformed field payload inside an otherwise
	// well-shaped line.
	FieldDecode
)

func (k Kind) String() string {
	switch k {
	case LineTooLong:
		return "line-too-long"
	case BadHeaderPrefix:
		return "bad-header-prefix"
	case BadFooterPrefix:
		return "bad-footer-prefix"
	case TooManyRecords:
		return "too-many-records"
	case MissingTransaction:
		return "missing-transaction-record"
	case ReconciliationMismatch:
		return "footer-reconciliation-mismatch"
	case FieldDecode:
		return "field-decode-failure"
	}
	return "unknown"
}

// ValidationError is returned when raw lines fail the structural pre-check
// or field-level assembly. Line is the 0-based index of the offending line,
// or -1 when the failure concerns the document as a whole.
type ValidationError struct {
	Kind       Kind
	Line       int
	Message    string
	Underlying error
}

// Error returns a "location: message" string in the bean-check manner.
func (e *ValidationError) Error() string {
	location := "document"
	if e.Line >= 0 {
		location = fmt.Sprintf("line %d", e.Line+1)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", location, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", location, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// GetLine returns the 0-based offending line index, or -1.
func (e *ValidationError) GetLine() int {
	return e.Line
}

// NewLineTooLongError creates an error for a line exceeding the length limit.
func NewLineTooLongError(line, limit int) *ValidationError {
	return &ValidationError{
		Kind:    LineTooLong,
		Line:    line,
		Message: fmt.Sprintf("exceeds maximum line length of %d", limit),
	}
}

// NewBadHeaderPrefixError creates an error for a first line that is not a header.
func NewBadHeaderPrefixError() *ValidationError {
	return &ValidationError{
		Kind:    BadHeaderPrefix,
		Line:    0,
		Message: "first line does not start with header type code \"01\"",
	}
}

// NewBadFooterPrefixError creates an error for a last line that is not a footer.
func NewBadFooterPrefixError(line int) *ValidationError {
	return &ValidationError{
		Kind:    BadFooterPrefix,
		Line:    line,
		Message: "last line does not start with footer type code \"03\"",
	}
}

// NewTooManyRecordsError creates an error for a document over the transaction ceiling.
func NewTooManyRecordsError(count, maxTransactions int) *ValidationError {
	return &ValidationError{
		Kind:    TooManyRecords,
		Line:    -1,
		Message: fmt.Sprintf("%d lines exceed the maximum of %d transactions", count, maxTransactions),
	}
}

// NewMissingTransactionError creates an error for a document without transactions.
func NewMissingTransactionError() *ValidationError {
	return &ValidationError{
		Kind:    MissingTransaction,
		Line:    -1,
		Message: "no transaction line with type code \"02\" between header and footer",
	}
}

// NewReconciliationError creates an error for a footer that disagrees with
// the transaction run.
func NewReconciliationError(lastCounter, totalCounter int) *ValidationError {
	return &ValidationError{
		Kind:    ReconciliationMismatch,
		Line:    -1,
		Message: fmt.Sprintf("last transaction counter %d does not match footer total counter %d", lastCounter, totalCounter),
	}
}

// NewCounterSequenceError creates an error for a caller-supplied
// transaction run whose counters are not the contiguous sequence 1..N.
func NewCounterSequenceError(position, counter int) *ValidationError {
	return &ValidationError{
		Kind:    ReconciliationMismatch,
		Line:    -1,
		Message: fmt.Sprintf("transaction at position %d has counter %d, expected %d", position+1, counter, position+1),
	}
}

// NewFieldDecodeError wraps a field codec failure with the offending line.
func NewFieldDecodeError(line int, err error) *ValidationError {
	return &ValidationError{
		Kind:       FieldDecode,
		Line:       line,
		Message:    "cannot decode record",
		Underlying: err,
	}
}

package document

import (
	"strings"

	"github.com/mwalczak/flatbatch/record"
)

// Validate runs the structural pre-check over raw lines before any record
// is built. Checks run in a fixed order and fail fast on the first
// violation; passing does not guarantee field-level validity, which the
// assembler catches.
func Validate(lines []string, limits Limits) error {
	for i, line := range lines {
		if len(line) > limits.LineLength {
			return NewLineTooLongError(i, limits.LineLength)
		}
	}

	if len(lines) == 0 || !strings.HasPrefix(lines[0], record.HeaderCode) {
		return NewBadHeaderPrefixError()
	}

	if !strings.HasPrefix(lines[len(lines)-1], record.FooterCode) {
		return NewBadFooterPrefixError(len(lines) - 1)
	}

	// Header and footer account for the extra two lines.
	if len(lines) > limits.MaxTransactions+2 {
		return NewTooManyRecordsError(len(lines), limits.MaxTransactions)
	}

	for _, line := range lines[1 : len(lines)-1] {
		if strings.HasPrefix(line, record.TransactionCode) {
			return nil
		}
	}

	return NewMissingTransactionError()
}

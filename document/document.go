// Package document assembles fixed-width record lines into a typed,
// invariant-preserving aggregate and renders it back to the byte-exact
// on-disk layout.
//
// A valid Document always satisfies:
//   - transaction counters form the contiguous sequence 1..N, in order;
//   - the footer's total counter equals N and the last counter;
//   - the footer's control sum equals the rounded sum of all amounts.
//
// Documents come into existence through Assemble (over validated lines) or
// New (from caller-supplied records, footer derived). Both enforce the
// invariants; Serialize trusts them.
package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mwalczak/flatbatch/record"
)

// Limits bounds the raw shape of a document before typing.
type Limits struct {
	// LineLength is the maximum rendered line length, delimiter included.
	LineLength int
	// MaxTransactions caps the number of transaction records.
	MaxTransactions int
}

// DefaultLimits returns the standard 121-byte line / 20000 transaction bounds.
func DefaultLimits() Limits {
	return Limits{LineLength: 121, MaxTransactions: 20000}
}

// Document is the full aggregate: one header, an ordered run of
// transactions, and the reconciling footer. No record is shared outside its
// document.
type Document struct {
	Header       record.Header
	Transactions []record.Transaction
	Footer       record.Footer
}

// New builds a document from a caller-supplied header and transaction run.
// The footer is always derived, never accepted from the caller.
func New(header record.Header, transactions []record.Transaction) (*Document, error) {
	for i, t := range transactions {
		if t.Counter != i+1 {
			return nil, NewCounterSequenceError(i, t.Counter)
		}
	}

	footer, err := DeriveFooter(transactions)
	if err != nil {
		return nil, err
	}

	return &Document{
		Header:       header,
		Transactions: transactions,
		Footer:       footer,
	}, nil
}

// DeriveFooter reconciles a transaction run: total counter is its length,
// control sum the rounded total of its amounts.
func DeriveFooter(transactions []record.Transaction) (record.Footer, error) {
	sum := decimal.Zero
	for _, t := range transactions {
		sum = sum.Add(t.Amount)
	}

	return record.NewFooter(len(transactions), sum)
}

// Serialize renders the document to the exact line-delimited fixed-width
// text. No re-validation happens here; every path that produces a Document
// has already enforced its invariants.
func Serialize(d *Document, delimiter string) (string, error) {
	var buf strings.Builder

	header, err := d.Header.Render()
	if err != nil {
		return "", err
	}
	buf.WriteString(header)
	buf.WriteString(delimiter)

	for _, t := range d.Transactions {
		line, err := t.Render()
		if err != nil {
			return "", err
		}
		buf.WriteString(line)
		buf.WriteString(delimiter)
	}

	footer, err := d.Footer.Render()
	if err != nil {
		return "", err
	}
	buf.WriteString(footer)
	buf.WriteString(delimiter)

	return buf.String(), nil
}

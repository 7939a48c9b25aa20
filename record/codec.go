// Package record implements the fixed-width records that make up a batch
// document: a Header, an ordered run of Transactions, and a reconciling
// Footer. Each record renders to an exact 120-byte payload prefixed by a
// 2-character type code, and decodes back from the same byte offsets.
//
// Monetary values are carried as shopspring decimals, normalized to two
// fractional digits at construction so that equal amounts are structurally
// equal. On the wire amounts are stored as zero-padded integer minor units
// (cents).
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PayloadWidth is the number of bytes in every record payload, type code
// included, line delimiter excluded.
const PayloadWidth = 120

// Type codes identifying each record kind in the first two payload bytes.
const (
	HeaderCode      = "01"
	TransactionCode = "02"
	FooterCode      = "03"
)

// FieldError reports a single field that could not be encoded or decoded.
type FieldError struct {
	Field      string
	Value      string
	Reason     string
	Underlying error
}

func (e *FieldError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("field %s: invalid value %q: %v", e.Field, e.Value, e.Underlying)
	}
	return fmt.Sprintf("field %s: invalid value %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Underlying
}

// NewFieldError creates an error for a field with an invalid value.
func NewFieldError(field, value, reason string) *FieldError {
	return &FieldError{Field: field, Value: value, Reason: reason}
}

// Cents converts an amount to integer minor units, rounding half-up to two
// fractional digits first.
func Cents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromCents is the inverse of Cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// NormalizeAmount rounds an amount half-up to two fractional digits and
// rebuilds it from minor units, fixing the exponent at -2. Two amounts that
// render identically compare equal after normalization.
func NormalizeAmount(amount decimal.Decimal) decimal.Decimal {
	return FromCents(Cents(amount))
}

// padLeft left-pads value to width with pad. Values wider than the field
// cannot be represented and fail instead of being truncated.
func padLeft(field, value string, width int, pad byte) (string, error) {
	if len(value) > width {
		return "", NewFieldError(field, value, fmt.Sprintf("exceeds width %d", width))
	}
	return strings.Repeat(string(pad), width-len(value)) + value, nil
}

// encodeText right-justifies free text in a space-padded field.
func encodeText(field, value string, width int) (string, error) {
	return padLeft(field, value, width, ' ')
}

// encodeInt zero-pads a non-negative integer counter.
func encodeInt(field string, value, width int) (string, error) {
	return padLeft(field, strconv.Itoa(value), width, '0')
}

// encodeCents zero-pads an amount's minor units.
func encodeCents(field string, amount decimal.Decimal, width int) (string, error) {
	return padLeft(field, strconv.FormatInt(Cents(amount), 10), width, '0')
}

// sliceField cuts the half-open byte range [from, to) out of a payload.
// A payload too short to cover the range fails the calling record's
// construction.
func sliceField(field, payload string, from, to int) (string, error) {
	if len(payload) < to {
		return "", NewFieldError(field, payload, fmt.Sprintf("payload too short for bytes %d-%d", from, to))
	}
	return payload[from:to], nil
}

// decodeText trims the padding off a space-justified text field.
func decodeText(field, payload string, from, to int) (string, error) {
	raw, err := sliceField(field, payload, from, to)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// decodeInt parses a zero-padded integer field.
func decodeInt(field, payload string, from, to int) (int, error) {
	raw, err := sliceField(field, payload, from, to)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldError{Field: field, Value: raw, Underlying: err}
	}
	return value, nil
}

// decodeCents parses a zero-padded minor-units field into an amount with
// two fractional digits.
func decodeCents(field, payload string, from, to int) (decimal.Decimal, error) {
	raw, err := sliceField(field, payload, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	cents, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Value: raw, Underlying: err}
	}
	return FromCents(cents), nil
}

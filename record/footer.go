package record

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field widths of the footer payload.
const (
	totalCounterWidth   = 6
	controlSumWidth     = 12
	footerReservedWidth = 100
)

// Footer is the last record of a document, reconciling the transaction run
// that precedes it: TotalCounter equals the number of transactions and
// ControlSum their rounded total.
type Footer struct {
	TotalCounter int
	ControlSum   decimal.Decimal
}

// NewFooter validates the reconciliation fields and normalizes the control
// sum to two fractional digits.
func NewFooter(totalCounter int, controlSum decimal.Decimal) (Footer, error) {
	if totalCounter < 1 {
		return Footer{}, NewFieldError("total_counter", strconv.Itoa(totalCounter), "must be at least 1")
	}
	if controlSum.IsNegative() {
		return Footer{}, NewFieldError("control_sum", controlSum.String(), "must not be negative")
	}

	return Footer{
		TotalCounter: totalCounter,
		ControlSum:   NormalizeAmount(controlSum),
	}, nil
}

// Render emits the exact 120-byte footer payload.
func (f Footer) Render() (string, error) {
	totalCounter, err := encodeInt("total_counter", f.TotalCounter, totalCounterWidth)
	if err != nil {
		return "", err
	}
	controlSum, err := encodeCents("control_sum", f.ControlSum, controlSumWidth)
	if err != nil {
		return "", err
	}

	return FooterCode + totalCounter + controlSum + strings.Repeat(" ", footerReservedWidth), nil
}

// DecodeFooter slices a footer payload at its fixed offsets.
func DecodeFooter(payload string) (Footer, error) {
	totalCounter, err := decodeInt("total_counter", payload, 2, 8)
	if err != nil {
		return Footer{}, err
	}
	controlSum, err := decodeCents("control_sum", payload, 8, 20)
	if err != nil {
		return Footer{}, err
	}

	return NewFooter(totalCounter, controlSum)
}

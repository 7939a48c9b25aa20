package record

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Field widths of the transaction payload.
const (
	counterWidth             = 6
	amountWidth              = 12
	currencyWidth            = 3
	transactionReservedWidth = 97
)

// Transaction is one counted monetary entry. Counter is the 1-based
// position of the transaction within the document and must stay contiguous
// with its neighbours; the document owning the transaction enforces that.
type Transaction struct {
	Counter  int
	Amount   decimal.Decimal
	Currency Currency
}

// NewTransaction validates the scalar fields and normalizes the amount to
// two fractional digits.
func NewTransaction(counter int, amount decimal.Decimal, currency Currency) (Transaction, error) {
	if counter < 1 {
		return Transaction{}, NewFieldError("counter", strconv.Itoa(counter), "must be at least 1")
	}
	if amount.IsNegative() {
		return Transaction{}, NewFieldError("amount", amount.String(), "must not be negative")
	}
	if !currency.Valid() {
		return Transaction{}, NewFieldError("currency", string(currency), "unknown currency")
	}

	return Transaction{
		Counter:  counter,
		Amount:   NormalizeAmount(amount),
		Currency: currency,
	}, nil
}

// Render emits the exact 120-byte transaction payload.
func (t Transaction) Render() (string, error) {
	counter, err := encodeInt("counter", t.Counter, counterWidth)
	if err != nil {
		return "", err
	}
	amount, err := encodeCents("amount", t.Amount, amountWidth)
	if err != nil {
		return "", err
	}
	currency, err := encodeText("currency", string(t.Currency), currencyWidth)
	if err != nil {
		return "", err
	}

	return TransactionCode + counter + amount + currency + strings.Repeat(" ", transactionReservedWidth), nil
}

// DecodeTransaction slices a transaction payload at its fixed offsets. The
// reserved tail is not inspected.
func DecodeTransaction(payload string) (Transaction, error) {
	counter, err := decodeInt("counter", payload, 2, 8)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := decodeCents("amount", payload, 8, 20)
	if err != nil {
		return Transaction{}, err
	}
	code, err := decodeText("currency", payload, 20, 23)
	if err != nil {
		return Transaction{}, err
	}
	currency, err := ParseCurrency(code)
	if err != nil {
		return Transaction{}, err
	}

	return NewTransaction(counter, amount, currency)
}

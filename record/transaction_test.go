package record

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{input: "USD", want: USD},
		{input: "usd", want: USD},
		{input: " pln ", want: PLN},
		{input: "Eur", want: EUR},
		{input: "GBP", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTransactionRejections(t *testing.T) {
	tests := []struct {
		name     string
		counter  int
		amount   string
		currency Currency
	}{
		{name: "zero counter", counter: 0, amount: "1.00", currency: USD},
		{name: "negative counter", counter: -3, amount: "1.00", currency: USD},
		{name: "negative amount", counter: 1, amount: "-0.01", currency: USD},
		{name: "unknown currency", counter: 1, amount: "1.00", currency: Currency("GBP")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransaction(tt.counter, mustDecimal(t, tt.amount), tt.currency)
			assert.Error(t, err)
		})
	}
}

func TestTransactionRenderLayout(t *testing.T) {
	txn, err := NewTransaction(1, mustDecimal(t, "1.00"), USD)
	assert.NoError(t, err)

	payload, err := txn.Render()
	assert.NoError(t, err)

	want := "02" + "000001" + "000000000100" + "USD" + strings.Repeat(" ", 97)
	assert.Equal(t, want, payload)
	assert.Equal(t, PayloadWidth, len(payload))
}

func TestTransactionRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		counter int
		amount  string
	}{
		{name: "small", counter: 1, amount: "1.00"},
		{name: "rounded", counter: 7, amount: "10.005"},
		{name: "large counter", counter: 19999, amount: "123456.78"},
		{name: "zero amount", counter: 3, amount: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := NewTransaction(tt.counter, mustDecimal(t, tt.amount), EUR)
			assert.NoError(t, err)

			payload, err := txn.Render()
			assert.NoError(t, err)

			decoded, err := DecodeTransaction(payload)
			assert.NoError(t, err)
			assert.Equal(t, txn, decoded)
		})
	}
}

func TestDecodeTransactionMalformedCounter(t *testing.T) {
	payload := "02" + "00x001" + "000000000100" + "USD" + strings.Repeat(" ", 97)
	_, err := DecodeTransaction(payload)
	assert.Error(t, err)
}

func TestFooterRenderLayout(t *testing.T) {
	footer, err := NewFooter(1, mustDecimal(t, "1.00"))
	assert.NoError(t, err)

	payload, err := footer.Render()
	assert.NoError(t, err)

	want := "03" + "000001" + "000000000100" + strings.Repeat(" ", 100)
	assert.Equal(t, want, payload)
	assert.Equal(t, PayloadWidth, len(payload))
}

func TestFooterRoundTrip(t *testing.T) {
	footer, err := NewFooter(42, mustDecimal(t, "1234.56"))
	assert.NoError(t, err)

	payload, err := footer.Render()
	assert.NoError(t, err)

	decoded, err := DecodeFooter(payload)
	assert.NoError(t, err)
	assert.Equal(t, footer, decoded)
}

func TestNewFooterRejections(t *testing.T) {
	_, err := NewFooter(0, mustDecimal(t, "1.00"))
	assert.Error(t, err)

	_, err = NewFooter(1, mustDecimal(t, "-1.00"))
	assert.Error(t, err)
}

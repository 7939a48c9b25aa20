package record

import "strings"

// Currency is the ISO code of a transaction's monetary unit. Only the
// currencies the batch format supports are valid.
type Currency string

const (
	PLN Currency = "PLN"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

// Currencies lists every supported currency, in a stable order.
func Currencies() []Currency {
	return []Currency{PLN, EUR, USD}
}

// ParseCurrency matches a currency code case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	code := Currency(strings.ToUpper(strings.TrimSpace(s)))
	for _, c := range Currencies() {
		if code == c {
			return c, nil
		}
	}
	return "", NewFieldError("currency", s, "unknown currency")
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	_, err := ParseCurrency(string(c))
	return err == nil
}

package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "USD"

var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"৳", "BDT"},
	{"Tk", "BDT"},
	{"₹", "INR"},
	{"Rs", "PKR"},
}

// Money is an amount paired with an ISO currency code. Prices arrive from
// fixtures and older clients as currency-prefixed strings ("$500"); they are
// converted once, here, and never re-parsed downstream.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func Zero(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}

// ParsePrice converts a display price such as "$500", "$1,250.50" or "300"
// into Money. Malformed, negative or sub-cent input is a ValidationError.
func ParsePrice(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Money{}, NewValidationError("price", "empty price")
	}

	currency := DefaultCurrency
	for _, cs := range currencySymbols {
		if strings.HasPrefix(raw, cs.symbol) {
			currency = cs.code
			raw = strings.TrimSpace(strings.TrimPrefix(raw, cs.symbol))
			break
		}
	}
	raw = strings.ReplaceAll(raw, ",", "")

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, NewValidationError("price", fmt.Sprintf("malformed price %q", s))
	}
	if amount.IsNegative() {
		return Money{}, NewValidationError("price", fmt.Sprintf("negative price %q", s))
	}
	if !amount.Equal(amount.Round(2)) {
		return Money{}, NewValidationError("price", fmt.Sprintf("price %q has fractions of a cent", s))
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(s string) Money {
	m, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, NewValidationError("currency", fmt.Sprintf("cannot add %s to %s", other.Currency, m.Currency))
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

func (m Money) Mul(n int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(n))), Currency: m.Currency}
}

func (m Money) Round() Money {
	return Money{Amount: m.Amount.Round(2), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	for _, cs := range currencySymbols {
		if cs.code == m.Currency && cs.symbol != "US$" {
			return cs.symbol + m.Amount.StringFixed(2)
		}
	}
	return m.Currency + " " + m.Amount.StringFixed(2)
}

type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// UnmarshalJSON accepts the canonical object form and the legacy
// currency-prefixed string form.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var legacy string
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		parsed, err := ParsePrice(legacy)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = NewMoney(v.Amount, v.Currency)
	return nil
}

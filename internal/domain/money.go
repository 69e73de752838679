package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}
}

// Rounded returns the amount rounded half-up to the currency's minor unit.
func (m Money) Rounded() decimal.Decimal {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return m.Amount.Round(int32(scale))
}

// Fixed formats the amount with exactly the currency's minor-unit digits.
func (m Money) Fixed() string {
	scale, _ := currency.Standard.Rounding(m.Currency)
	return m.Amount.StringFixed(int32(scale))
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Fixed())
}

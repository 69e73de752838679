package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	minDiscountPercent = decimal.NewFromInt(5)
	maxDiscountPercent = decimal.NewFromInt(90)
	hundred            = decimal.NewFromInt(100)
)

// DiscountPolicy decides the display discount of a product.
//
// Explicit discounts are clamped to [5, 90] percent. Products without one get
// Default, which may be zero to show no discount at all.
type DiscountPolicy struct {
	Default decimal.Decimal
}

func (dp DiscountPolicy) Percent(p Product) decimal.Decimal {
	if p.DiscountPercent.Valid && p.DiscountPercent.Decimal.IsPositive() {
		return decimal.Min(decimal.Max(p.DiscountPercent.Decimal, minDiscountPercent), maxDiscountPercent)
	}
	return dp.Default
}

// Pricing is the display price block of a product card.
type Pricing struct {
	Price           Money
	DiscountPercent decimal.Decimal
	CompareAt       *Money
	Savings         Money
}

func (dp DiscountPolicy) Pricing(p Product, cur currency.Unit) Pricing {
	price := NewMoney(p.Price, cur)
	pct := dp.Percent(p)

	pricing := Pricing{
		Price:           price,
		DiscountPercent: pct,
		Savings:         NewMoney(decimal.Zero, cur),
	}

	if cmp, ok := CompareAt(price, pct); ok {
		pricing.CompareAt = &cmp
		pricing.Savings = NewMoney(cmp.Amount.Sub(price.Amount), cur)
	}

	return pricing
}

// CompareAt derives the pre-discount price, price / (1 - pct/100), rounded to
// the currency's minor unit. There is none for pct outside (0, 100).
func CompareAt(price Money, pct decimal.Decimal) (Money, bool) {
	if !pct.IsPositive() || pct.GreaterThanOrEqual(hundred) {
		return Money{}, false
	}

	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	cmp := NewMoney(price.Amount.Div(factor), price.Currency)

	return NewMoney(cmp.Rounded(), price.Currency), true
}

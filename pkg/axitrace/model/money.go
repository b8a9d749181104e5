// Package model contains the value objects shared by tracking events:
// Money, Product and ClientIdentity.
//
// All values are plain data owned by the caller. Each type can be built
// from a loosely typed map (FromMap) and rendered back into the wire map
// the tracking API expects (Map).
package model

import (
	"fmt"
	"strings"
)

// DefaultCurrency is used by MoneyFromMap when no currency is given.
const DefaultCurrency = "USD"

// Money is an amount in a currency. The currency is uppercased on
// construction; the amount is kept as given, with no rounding.
type Money struct {
	amount   float64
	currency string
}

// NewMoney creates a Money value.
func NewMoney(amount float64, currency string) Money {
	return Money{amount: amount, currency: strings.ToUpper(currency)}
}

// MoneyFromMap builds Money from {"amount", "currency"}. A missing amount
// is 0 and a missing currency is USD. It never fails.
func MoneyFromMap(data map[string]any) Money {
	amount, _ := looseFloat(data["amount"])
	currency, ok := looseString(data["currency"])
	if !ok {
		currency = DefaultCurrency
	}
	return NewMoney(amount, currency)
}

// Amount returns the amount.
func (m Money) Amount() float64 { return m.amount }

// Currency returns the uppercased currency code.
func (m Money) Currency() string { return m.currency }

// Map renders the wire form {"amount", "currency"}.
func (m Money) Map() map[string]any {
	return map[string]any{
		"amount":   m.amount,
		"currency": m.currency,
	}
}

// String formats the value as "12.50 USD".
func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.amount, m.currency)
}

package domain

import (
	"github.com/Rhymond/go-money"
)

// Direction indicates which side of the ledger an entry sits on.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// ZeroAmount returns a zero amount in the given currency.
func ZeroAmount(currency string) *money.Money {
	return money.New(0, currency)
}

// SumAmounts adds amounts in minor units. Every amount must carry the given
// currency; a mismatch returns ErrCurrencyMismatch.
func SumAmounts(currency string, amounts ...*money.Money) (*money.Money, error) {
	total := int64(0)
	for _, a := range amounts {
		if a == nil {
			return nil, ErrInvalidAmount
		}

		if a.Currency().Code != currency {
			return nil, ErrCurrencyMismatch
		}

		total += a.Amount()
	}

	return money.New(total, currency), nil
}

// SignedDifference returns a minus b in minor units. Both amounts must share
// a currency; callers are expected to have validated that already.
func SignedDifference(a, b *money.Money) *money.Money {
	return money.New(a.Amount()-b.Amount(), a.Currency().Code)
}

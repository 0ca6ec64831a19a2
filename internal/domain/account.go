package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a chart-of-accounts entry as seen by the posting core. The
// core only asks whether an account exists and accepts postings; balances
// live downstream in reporting.
type Account struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Currency  string
	Postable  bool
}

// Unit is a property unit that allocations are apportioned across.
type Unit struct {
	CreatedAt time.Time
	ID        string
	Name      string
	// Size is the unit's surface area basis. Zero means unknown; the
	// apportionment engine flags unit-size lines without a positive size.
	Size decimal.Decimal
}

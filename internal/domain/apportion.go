package domain

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Apportion divides total across schedules and returns a per-unit
// breakdown. It is a pure function: no I/O, deterministic, safe to call
// repeatedly for previews.
//
// Equal lines receive floor(total/count) with the division remainder
// distributed one minor unit at a time in schedule order, so an all-equal
// allocation reconciles exactly by construction. Percentage and unit-size
// lines are rounded proportional shares; a bad basis flags its own line at
// zero instead of aborting the rest. Any residual left by rounding is
// applied to the single largest unflagged line, which makes
// TotalAllocated == TotalRequested hold whenever at least one line is
// allocatable.
func Apportion(total *money.Money, schedules []ApportionmentSchedule) (*AllocationResult, error) {
	if total == nil || total.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if len(schedules) == 0 {
		return nil, ErrNoSchedules
	}

	currency := total.Currency().Code
	totalMinor := total.Amount()
	count := int64(len(schedules))

	// Basis sums per ratio method. Non-positive unit sizes are excluded
	// here because their lines are flagged and allocated zero below.
	sumPct := decimal.Zero
	sumSize := decimal.Zero

	for _, s := range schedules {
		switch s.Method.Kind() {
		case MethodPercentage:
			sumPct = sumPct.Add(s.Method.Basis())
		case MethodUnitSize:
			if s.Method.Basis().IsPositive() {
				sumSize = sumSize.Add(s.Method.Basis())
			}
		}
	}

	equalShare := totalMinor / count
	equalRemainder := totalMinor - equalShare*count

	lines := make([]*AllocationLine, 0, len(schedules))

	for _, s := range schedules {
		line := &AllocationLine{
			UnitID:     s.UnitID,
			Method:     s.Method.Kind(),
			BasisValue: s.Method.Basis(),
		}

		switch s.Method.Kind() {
		case MethodEqual:
			amount := equalShare
			if equalRemainder > 0 {
				amount++
				equalRemainder--
			}

			line.Amount = money.New(amount, currency)
			line.Reason = fmt.Sprintf("equal share among %d units", len(schedules))

		case MethodPercentage:
			if !sumPct.IsPositive() {
				flagLine(line, currency, "no percentage basis available")
				break
			}

			share := decimal.NewFromInt(totalMinor).
				Mul(s.Method.Basis()).
				DivRound(sumPct, 0).
				IntPart()
			line.Amount = money.New(share, currency)
			line.Reason = fmt.Sprintf("%s%% of budget per schedule", s.Method.Basis().StringFixed(2))

		case MethodUnitSize:
			if !s.Method.Basis().IsPositive() || !sumSize.IsPositive() {
				flagLine(line, currency, "unit size unavailable")
				break
			}

			share := decimal.NewFromInt(totalMinor).
				Mul(s.Method.Basis()).
				DivRound(sumSize, 0).
				IntPart()
			line.Amount = money.New(share, currency)
			line.Reason = fmt.Sprintf("proportional to unit size %s of total %s", s.Method.Basis(), sumSize)
		}

		lines = append(lines, line)
	}

	allocated := int64(0)
	for _, l := range lines {
		allocated += l.Amount.Amount()
	}

	// Ratio rounding can leave a residual. Settle it on the largest
	// unflagged line so the allocation reconciles exactly; the adjustment
	// is recorded in the line's reason for the audit trail.
	if residual := totalMinor - allocated; residual != 0 {
		if idx := largestUnflagged(lines); idx >= 0 {
			l := lines[idx]
			l.Amount = money.New(l.Amount.Amount()+residual, currency)
			l.Reason = fmt.Sprintf("%s; adjusted by %+d minor units to reconcile rounding", l.Reason, residual)
			allocated += residual
		}
	}

	return &AllocationResult{
		Lines:          lines,
		TotalAllocated: money.New(allocated, currency),
		TotalRequested: money.New(totalMinor, currency),
		Reconciled:     allocated == totalMinor,
	}, nil
}

func flagLine(line *AllocationLine, currency, reason string) {
	line.Amount = ZeroAmount(currency)
	line.Flagged = true
	line.FlagReason = reason
	line.Reason = reason
}

// largestUnflagged returns the index of the unflagged line with the largest
// amount, first on ties, or -1 when every line is flagged.
func largestUnflagged(lines []*AllocationLine) int {
	idx := -1
	for i, l := range lines {
		if l.Flagged {
			continue
		}

		if idx == -1 || l.Amount.Amount() > lines[idx].Amount.Amount() {
			idx = i
		}
	}

	return idx
}

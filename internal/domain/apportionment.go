package domain

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MethodKind names an apportionment method. It is the storage and wire
// representation of a method; inside the engine methods are a closed set
// built through the constructors below, so there is no "unknown method"
// branch to fall through.
type MethodKind string

const (
	MethodEqual      MethodKind = "equal"
	MethodPercentage MethodKind = "percentage"
	MethodUnitSize   MethodKind = "unit_size"
)

// ApportionmentMethod is a closed tagged variant: Equal, Percentage(basis)
// or UnitSize(basis). The zero value is not a valid method; use the
// constructors or ParseMethod.
type ApportionmentMethod struct {
	kind  MethodKind
	basis decimal.Decimal
}

// EqualShare builds the equal-share method.
func EqualShare() ApportionmentMethod {
	return ApportionmentMethod{kind: MethodEqual}
}

// PercentageOf builds the percentage-of-budget method with basis p.
func PercentageOf(p decimal.Decimal) ApportionmentMethod {
	return ApportionmentMethod{kind: MethodPercentage, basis: p}
}

// UnitSizeOf builds the unit-size-weighted method with size s.
func UnitSizeOf(s decimal.Decimal) ApportionmentMethod {
	return ApportionmentMethod{kind: MethodUnitSize, basis: s}
}

// ParseMethod is the only string-to-method boundary. Unknown kinds and
// negative percentage bases fail loudly instead of being skipped.
func ParseMethod(kind string, basis decimal.Decimal) (ApportionmentMethod, error) {
	switch MethodKind(kind) {
	case MethodEqual:
		return EqualShare(), nil
	case MethodPercentage:
		if basis.IsNegative() {
			return ApportionmentMethod{}, fmt.Errorf("%w: percentage %s", ErrInvalidBasis, basis)
		}

		return PercentageOf(basis), nil
	case MethodUnitSize:
		return UnitSizeOf(basis), nil
	default:
		return ApportionmentMethod{}, fmt.Errorf("%w: %q", ErrUnknownMethod, kind)
	}
}

// Kind returns the method's kind tag.
func (m ApportionmentMethod) Kind() MethodKind {
	return m.kind
}

// Basis returns the method's basis value (percentage or unit size; zero for
// equal share).
func (m ApportionmentMethod) Basis() decimal.Decimal {
	return m.basis
}

// WithBasis returns a copy of the method carrying a resolved basis. Used to
// attach unit sizes looked up from the unit directory.
func (m ApportionmentMethod) WithBasis(basis decimal.Decimal) ApportionmentMethod {
	return ApportionmentMethod{kind: m.kind, basis: basis}
}

func (m ApportionmentMethod) String() string {
	switch m.kind {
	case MethodEqual:
		return "equal"
	case MethodPercentage:
		return fmt.Sprintf("percentage(%s)", m.basis)
	case MethodUnitSize:
		return fmt.Sprintf("unit_size(%s)", m.basis)
	default:
		return "invalid"
	}
}

// ApportionmentSchedule binds one unit to an allocation method within a
// budget context. Schedules are supplied by the schedule store and are
// read-only to the engine.
type ApportionmentSchedule struct {
	UnitID string
	Method ApportionmentMethod
}

// AllocationLine is one unit's share of an allocation, with the audit
// reasoning that produced it. Lines are produced fresh on every computation
// and never mutated afterwards.
type AllocationLine struct {
	UnitID     string
	Reason     string
	FlagReason string
	Method     MethodKind
	BasisValue decimal.Decimal
	Amount     *money.Money
	Flagged    bool
}

// AllocationResult is the full outcome of one apportionment run.
// Reconciled is true iff TotalAllocated equals TotalRequested exactly.
type AllocationResult struct {
	TotalAllocated *money.Money
	TotalRequested *money.Money
	Lines          []*AllocationLine
	Reconciled     bool
}

// FlaggedLines returns the lines requiring human review.
func (r *AllocationResult) FlaggedLines() []*AllocationLine {
	var flagged []*AllocationLine
	for _, l := range r.Lines {
		if l.Flagged {
			flagged = append(flagged, l)
		}
	}

	return flagged
}

package domain_test

import (
	"errors"
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/veltri/propledger/internal/domain"
)

func pct(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestApportion_EqualShare(t *testing.T) {
	tests := []struct {
		name       string
		totalMinor int64
		units      int
		want       []int64
	}{
		{
			name:       "1000 across 3 units",
			totalMinor: 1000,
			units:      3,
			want:       []int64{334, 333, 333},
		},
		{
			name:       "exact division",
			totalMinor: 900,
			units:      3,
			want:       []int64{300, 300, 300},
		},
		{
			name:       "remainder smaller than unit count",
			totalMinor: 1001,
			units:      5,
			want:       []int64{201, 200, 200, 200, 200},
		},
		{
			name:       "single unit",
			totalMinor: 777,
			units:      1,
			want:       []int64{777},
		},
		{
			name:       "zero total",
			totalMinor: 0,
			units:      4,
			want:       []int64{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedules := make([]domain.ApportionmentSchedule, tt.units)
			for i := range schedules {
				schedules[i] = domain.ApportionmentSchedule{UnitID: "unit-" + string(rune('a'+i)), Method: domain.EqualShare()}
			}

			result, err := domain.Apportion(money.New(tt.totalMinor, "EUR"), schedules)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !result.Reconciled {
				t.Error("expected result to reconcile")
			}

			if result.TotalAllocated.Amount() != tt.totalMinor {
				t.Errorf("expected total %d, got %d", tt.totalMinor, result.TotalAllocated.Amount())
			}

			for i, want := range tt.want {
				if got := result.Lines[i].Amount.Amount(); got != want {
					t.Errorf("line %d: expected %d, got %d", i, want, got)
				}
			}
		})
	}
}

func TestApportion_EqualShareFloorProperty(t *testing.T) {
	// Every line is floor(T/N) or floor(T/N)+1, with exactly T mod N
	// lines receiving the extra minor unit.
	const total, units = 10007, 24

	schedules := make([]domain.ApportionmentSchedule, units)
	for i := range schedules {
		schedules[i] = domain.ApportionmentSchedule{UnitID: "u", Method: domain.EqualShare()}
	}

	result, err := domain.Apportion(money.New(total, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	floor := int64(total / units)
	extras := 0

	for i, line := range result.Lines {
		switch line.Amount.Amount() {
		case floor:
		case floor + 1:
			extras++
		default:
			t.Errorf("line %d: amount %d is neither %d nor %d", i, line.Amount.Amount(), floor, floor+1)
		}
	}

	if extras != total%units {
		t.Errorf("expected %d lines with the extra unit, got %d", total%units, extras)
	}
}

func TestApportion_Percentage(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.PercentageOf(pct("50"))},
		{UnitID: "u2", Method: domain.PercentageOf(pct("30"))},
		{UnitID: "u3", Method: domain.PercentageOf(pct("20"))},
	}

	result, err := domain.Apportion(money.New(10000, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{5000, 3000, 2000}
	for i, w := range want {
		if got := result.Lines[i].Amount.Amount(); got != w {
			t.Errorf("line %d: expected %d, got %d", i, w, got)
		}
	}

	if !result.Reconciled {
		t.Error("expected result to reconcile")
	}
}

func TestApportion_PercentageScaleInvariance(t *testing.T) {
	// Scaling every percentage by a constant factor must not change the
	// allocation; only relative shares matter.
	base := []string{"12.5", "37.5", "50"}
	scaled := []string{"25", "75", "100"}

	build := func(ps []string) []domain.ApportionmentSchedule {
		schedules := make([]domain.ApportionmentSchedule, len(ps))
		for i, p := range ps {
			schedules[i] = domain.ApportionmentSchedule{UnitID: "u", Method: domain.PercentageOf(pct(p))}
		}
		return schedules
	}

	r1, err := domain.Apportion(money.New(99999, "EUR"), build(base))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2, err := domain.Apportion(money.New(99999, "EUR"), build(scaled))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range r1.Lines {
		if r1.Lines[i].Amount.Amount() != r2.Lines[i].Amount.Amount() {
			t.Errorf("line %d: %d != %d after scaling", i, r1.Lines[i].Amount.Amount(), r2.Lines[i].Amount.Amount())
		}
	}
}

func TestApportion_PercentageRoundingResidual(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.PercentageOf(pct("33.33"))},
		{UnitID: "u2", Method: domain.PercentageOf(pct("33.33"))},
		{UnitID: "u3", Method: domain.PercentageOf(pct("33.34"))},
	}

	result, err := domain.Apportion(money.New(100, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalAllocated.Amount() != 100 {
		t.Errorf("expected exact reconciliation to 100, got %d", result.TotalAllocated.Amount())
	}

	if !result.Reconciled {
		t.Error("expected result to reconcile")
	}
}

func TestApportion_PercentageNoBasis(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.PercentageOf(decimal.Zero)},
		{UnitID: "u2", Method: domain.PercentageOf(decimal.Zero)},
	}

	result, err := domain.Apportion(money.New(5000, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, line := range result.Lines {
		if !line.Flagged {
			t.Errorf("line %d: expected flagged", i)
		}

		if line.FlagReason != "no percentage basis available" {
			t.Errorf("line %d: unexpected flag reason %q", i, line.FlagReason)
		}

		if !line.Amount.IsZero() {
			t.Errorf("line %d: expected zero amount, got %d", i, line.Amount.Amount())
		}
	}

	// Nothing allocatable, so reconciliation is impossible and reported.
	if result.Reconciled {
		t.Error("expected unreconciled result when every line is flagged")
	}
}

func TestApportion_UnitSize(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.UnitSizeOf(pct("55"))},
		{UnitID: "u2", Method: domain.UnitSizeOf(pct("45"))},
	}

	result, err := domain.Apportion(money.New(10000, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Lines[0].Amount.Amount(); got != 5500 {
		t.Errorf("expected 5500, got %d", got)
	}

	if got := result.Lines[1].Amount.Amount(); got != 4500 {
		t.Errorf("expected 4500, got %d", got)
	}
}

func TestApportion_UnitSizeMissing(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.UnitSizeOf(pct("60"))},
		{UnitID: "u2", Method: domain.UnitSizeOf(decimal.Zero)},
		{UnitID: "u3", Method: domain.UnitSizeOf(pct("40"))},
	}

	result, err := domain.Apportion(money.New(10000, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Lines[1].Flagged {
		t.Error("expected missing-size line to be flagged")
	}

	if result.Lines[1].FlagReason != "unit size unavailable" {
		t.Errorf("unexpected flag reason %q", result.Lines[1].FlagReason)
	}

	if !result.Lines[1].Amount.IsZero() {
		t.Errorf("expected zero amount for flagged line, got %d", result.Lines[1].Amount.Amount())
	}

	// Remaining lines share over the remaining size base and the result
	// still reconciles exactly.
	if got := result.Lines[0].Amount.Amount(); got != 6000 {
		t.Errorf("expected 6000, got %d", got)
	}

	if got := result.Lines[2].Amount.Amount(); got != 4000 {
		t.Errorf("expected 4000, got %d", got)
	}

	if !result.Reconciled {
		t.Error("expected result to reconcile")
	}
}

func TestApportion_Errors(t *testing.T) {
	_, err := domain.Apportion(money.New(100, "EUR"), nil)
	if err != domain.ErrNoSchedules {
		t.Errorf("expected ErrNoSchedules, got %v", err)
	}

	_, err = domain.Apportion(money.New(-100, "EUR"), []domain.ApportionmentSchedule{{UnitID: "u", Method: domain.EqualShare()}})
	if err != domain.ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestApportion_Deterministic(t *testing.T) {
	schedules := []domain.ApportionmentSchedule{
		{UnitID: "u1", Method: domain.PercentageOf(pct("33.33"))},
		{UnitID: "u2", Method: domain.PercentageOf(pct("66.67"))},
	}

	r1, err := domain.Apportion(money.New(12345, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r2, err := domain.Apportion(money.New(12345, "EUR"), schedules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range r1.Lines {
		if r1.Lines[i].Amount.Amount() != r2.Lines[i].Amount.Amount() {
			t.Errorf("line %d differs between identical runs", i)
		}

		if r1.Lines[i].Reason != r2.Lines[i].Reason {
			t.Errorf("line %d reason differs between identical runs", i)
		}
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name      string
		kind      string
		basis     string
		wantKind  domain.MethodKind
		expectErr error
	}{
		{name: "equal", kind: "equal", basis: "0", wantKind: domain.MethodEqual},
		{name: "percentage", kind: "percentage", basis: "12.5", wantKind: domain.MethodPercentage},
		{name: "unit size", kind: "unit_size", basis: "55", wantKind: domain.MethodUnitSize},
		{name: "negative percentage rejected", kind: "percentage", basis: "-1", expectErr: domain.ErrInvalidBasis},
		{name: "unknown kind rejected", kind: "by-vibes", basis: "0", expectErr: domain.ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := domain.ParseMethod(tt.kind, pct(tt.basis))

			if tt.expectErr != nil {
				if !errors.Is(err, tt.expectErr) {
					t.Fatalf("expected %v, got %v", tt.expectErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if method.Kind() != tt.wantKind {
				t.Errorf("expected kind %s, got %s", tt.wantKind, method.Kind())
			}
		})
	}
}

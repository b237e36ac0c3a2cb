package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProjectClosedForm(t *testing.T) {
	// balance 1000 at 12% annual, 100/month: monthlyRate 0.01,
	// rawMonths = ln(1.1)/ln(1.01) ~ 9.5786.
	got, err := Project(dec("1000"), dec("12"), dec("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MonthsToPayoff != 10 {
		t.Errorf("MonthsToPayoff = %d, want 10", got.MonthsToPayoff)
	}
	// TotalPaid uses the unrounded month count, so it is below ten full
	// payments of 100.
	if got.TotalPaid.Sub(dec("957.86")).Abs().GreaterThan(dec("0.01")) {
		t.Errorf("TotalPaid = %s, want ~957.86", got.TotalPaid)
	}
	if !got.TotalInterest.Equal(got.TotalPaid.Sub(dec("1000"))) {
		t.Errorf("TotalInterest = %s, want TotalPaid - balance", got.TotalInterest)
	}
}

func TestProjectDiverges(t *testing.T) {
	// First-period interest is 1000*0.02 = 20, payment only 10.
	_, err := Project(dec("1000"), dec("24"), dec("10"))
	if !errors.Is(err, ErrPaymentTooLow) {
		t.Fatalf("expected ErrPaymentTooLow, got %v", err)
	}
}

func TestProjectPaymentEqualsInterestDiverges(t *testing.T) {
	// Payment exactly equal to first-period interest holds the balance flat.
	_, err := Project(dec("1000"), dec("24"), dec("20"))
	if !errors.Is(err, ErrPaymentTooLow) {
		t.Fatalf("expected ErrPaymentTooLow, got %v", err)
	}
}

func TestProjectZeroRate(t *testing.T) {
	got, err := Project(dec("1200"), dec("0"), dec("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MonthsToPayoff != 12 {
		t.Errorf("MonthsToPayoff = %d, want 12", got.MonthsToPayoff)
	}
	if !got.TotalPaid.Equal(dec("1200")) {
		t.Errorf("TotalPaid = %s, want 1200", got.TotalPaid)
	}
	if !got.TotalInterest.IsZero() {
		t.Errorf("TotalInterest = %s, want 0", got.TotalInterest)
	}
}

func TestProjectZeroRatePartialMonth(t *testing.T) {
	got, err := Project(dec("1250"), dec("0"), dec("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MonthsToPayoff != 13 {
		t.Errorf("MonthsToPayoff = %d, want 13", got.MonthsToPayoff)
	}
	if !got.TotalPaid.Equal(dec("1250")) {
		t.Errorf("TotalPaid = %s, want 1250", got.TotalPaid)
	}
}

func TestProjectDeterministic(t *testing.T) {
	a, err := Project(dec("5000"), dec("19.9"), dec("150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Project(dec("5000"), dec("19.9"), dec("150"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MonthsToPayoff != b.MonthsToPayoff || !a.TotalPaid.Equal(b.TotalPaid) || !a.TotalInterest.Equal(b.TotalInterest) {
		t.Fatalf("identical inputs produced different projections: %+v vs %+v", a, b)
	}
}

func TestProjectInvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		rate    string
		payment string
	}{
		{"zero balance", "0", "12", "100"},
		{"negative balance", "-10", "12", "100"},
		{"negative rate", "1000", "-1", "100"},
		{"zero payment", "1000", "12", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Project(dec(tt.balance), dec(tt.rate), dec(tt.payment)); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
		})
	}
}

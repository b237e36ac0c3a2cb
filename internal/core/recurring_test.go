package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func monthlyTemplate() Transaction {
	return Transaction{
		ID:                 "tpl-1",
		Owner:              "u1",
		Type:               Expense,
		Amount:             decimal.NewFromInt(50),
		Category:           "housing",
		Description:        "rent",
		Date:               NewDate(2025, 1, 15),
		IsRecurring:        true,
		Frequency:          Monthly,
		RecurringStartDate: NewDate(2025, 1, 15),
	}
}

func TestExpandRejectsNonRecurring(t *testing.T) {
	tpl := monthlyTemplate()
	tpl.IsRecurring = false
	if _, err := Expand(tpl, NewDate(2025, 12, 31)); !errors.Is(err, ErrNotRecurring) {
		t.Fatalf("expected ErrNotRecurring, got %v", err)
	}
}

func TestExpandRejectsUnknownFrequency(t *testing.T) {
	tpl := monthlyTemplate()
	tpl.Frequency = Frequency("biweekly")
	if _, err := Expand(tpl, NewDate(2025, 12, 31)); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestExpandMonthly(t *testing.T) {
	got, err := Expand(monthlyTemplate(), NewDate(2025, 4, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Date{
		NewDate(2025, 1, 15),
		NewDate(2025, 2, 15),
		NewDate(2025, 3, 15),
		NewDate(2025, 4, 15),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(got))
	}
	for i, inst := range got {
		if !inst.Date.Equal(want[i].Time) {
			t.Errorf("instance %d: date %v, want %v", i, inst.Date, want[i])
		}
		if inst.IsRecurring {
			t.Errorf("instance %d: still marked recurring", i)
		}
		if inst.ID != "" {
			t.Errorf("instance %d: inherited template ID %q", i, inst.ID)
		}
		if !inst.Amount.Equal(decimal.NewFromInt(50)) || inst.Category != "housing" {
			t.Errorf("instance %d: did not copy template fields: %+v", i, inst)
		}
	}
}

func TestExpandMonthlyClampsDayOfMonth(t *testing.T) {
	tpl := monthlyTemplate()
	tpl.RecurringStartDate = NewDate(2025, 1, 31)
	got, err := Expand(tpl, NewDate(2025, 5, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Date{
		NewDate(2025, 1, 31),
		NewDate(2025, 2, 28), // 2025 is not a leap year
		NewDate(2025, 3, 31),
		NewDate(2025, 4, 30),
		NewDate(2025, 5, 31), // anchor day restored, no drift from February
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Time) {
			t.Errorf("instance %d: date %v, want %v", i, got[i].Date, want[i])
		}
	}
}

func TestExpandWeekly(t *testing.T) {
	tpl := monthlyTemplate()
	tpl.Frequency = Weekly
	tpl.RecurringStartDate = NewDate(2025, 3, 3)
	got, err := Expand(tpl, NewDate(2025, 3, 24))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Date{
		NewDate(2025, 3, 3),
		NewDate(2025, 3, 10),
		NewDate(2025, 3, 17),
		NewDate(2025, 3, 24), // horizon boundary is inclusive
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Time) {
			t.Errorf("instance %d: date %v, want %v", i, got[i].Date, want[i])
		}
	}
}

func TestExpandYearlyClampsLeapDay(t *testing.T) {
	tpl := monthlyTemplate()
	tpl.Frequency = Yearly
	tpl.RecurringStartDate = NewDate(2024, 2, 29)
	got, err := Expand(tpl, NewDate(2028, 3, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Date{
		NewDate(2024, 2, 29),
		NewDate(2025, 2, 28),
		NewDate(2026, 2, 28),
		NewDate(2027, 2, 28),
		NewDate(2028, 2, 29), // leap year again
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d instances, got %d", len(want), len(got))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Time) {
			t.Errorf("instance %d: date %v, want %v", i, got[i].Date, want[i])
		}
	}
}

func TestExpandEmptyBeforeStart(t *testing.T) {
	tpl := monthlyTemplate()
	// Horizon one day before the first occurrence
	got, err := Expand(tpl, NewDate(2025, 1, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty expansion, got %d instances", len(got))
	}
}

func TestExpandIsRestartable(t *testing.T) {
	tpl := monthlyTemplate()
	horizon := NewDate(2025, 6, 30)

	first, err := Expand(tpl, horizon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Expand(tpl, horizon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expansion not stable: %d vs %d instances", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date.Time) || !first[i].Amount.Equal(second[i].Amount) {
			t.Errorf("instance %d differs between runs", i)
		}
	}
}

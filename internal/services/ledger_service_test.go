package services

import (
	"context"
	"errors"
	"testing"

	"aurum/internal/core"
	"aurum/internal/storage"
)

func TestLedgerService_CreateTransaction(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	created, err := svc.CreateTransaction(context.Background(),
		storedTx("", "u1", core.Expense, "12.50", "Food", core.NewDate(2025, 6, 1)))
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if len(store.transactions) != 1 {
		t.Fatalf("stored = %d, want 1", len(store.transactions))
	}
}

func TestLedgerService_CreateTransaction_RecurringDefaultsStartDate(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	tx := storedTx("", "u1", core.Expense, "50", "Fitness", core.NewDate(2025, 5, 3))
	tx.IsRecurring = true
	tx.Frequency = core.Monthly

	created, err := svc.CreateTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if !created.RecurringStartDate.Equal(tx.Date.Time) {
		t.Errorf("RecurringStartDate = %v, want transaction date", created.RecurringStartDate)
	}
}

func TestLedgerService_CreateTransaction_Invalid(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	tests := []struct {
		name   string
		mutate func(*core.Transaction)
		want   error
	}{
		{"zero amount", func(tx *core.Transaction) { tx.Amount = dec("0") }, core.ErrInvalidAmount},
		{"bad type", func(tx *core.Transaction) { tx.Type = "transfer" }, core.ErrInvalidType},
		{"empty category", func(tx *core.Transaction) { tx.Category = "  " }, core.ErrEmptyCategory},
		{"recurring without frequency", func(tx *core.Transaction) { tx.IsRecurring = true }, core.ErrInvalidFrequency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := storedTx("", "u1", core.Expense, "10", "Food", core.NewDate(2025, 6, 1))
			tt.mutate(&tx)
			_, err := svc.CreateTransaction(context.Background(), tx)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if len(store.transactions) != 0 {
		t.Errorf("invalid transactions must not reach the store, got %d", len(store.transactions))
	}
}

func TestLedgerService_AssetEventsPublished(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewLedgerService(store, pub)

	a, err := svc.CreateAsset(context.Background(),
		core.Asset{Owner: "u1", Description: "Savings", CurrentValue: dec("1000")})
	if err != nil {
		t.Fatalf("CreateAsset() error = %v", err)
	}

	a.CurrentValue = dec("1100")
	if err := svc.UpdateAsset(context.Background(), a); err != nil {
		t.Fatalf("UpdateAsset() error = %v", err)
	}
	if err := svc.DeleteAsset(context.Background(), "u1", a.ID); err != nil {
		t.Fatalf("DeleteAsset() error = %v", err)
	}

	if len(pub.events) != 3 {
		t.Fatalf("published = %d events, want 3", len(pub.events))
	}
	for _, ev := range pub.events {
		if ev != "u1:asset_changed" {
			t.Errorf("unexpected event %q", ev)
		}
	}
}

func TestLedgerService_PublishFailureDoesNotFailWrite(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(store, pub)

	_, err := svc.CreateLiability(context.Background(),
		core.Liability{Owner: "u1", Description: "Card", AmountOwed: dec("400")})
	if err != nil {
		t.Fatalf("CreateLiability() should succeed despite publish failure, got %v", err)
	}
	if len(store.liabilities) != 1 {
		t.Errorf("liability not stored")
	}
}

func TestLedgerService_SetBudgetUpserts(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	if _, err := svc.SetBudget(context.Background(),
		core.Budget{Owner: "u1", Category: "Food", BudgetAmount: dec("200")}); err != nil {
		t.Fatalf("SetBudget() error = %v", err)
	}
	if _, err := svc.SetBudget(context.Background(),
		core.Budget{Owner: "u1", Category: "Food", BudgetAmount: dec("250")}); err != nil {
		t.Fatalf("SetBudget() error = %v", err)
	}

	if len(store.budgets) != 1 {
		t.Fatalf("budgets = %d, want 1 after upsert", len(store.budgets))
	}
	if !store.budgets[0].BudgetAmount.Equal(dec("250")) {
		t.Errorf("budget amount = %s, want 250", store.budgets[0].BudgetAmount)
	}
}

func TestLedgerService_DeleteMissing(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil)

	if err := svc.DeleteDebt(context.Background(), "u1", "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"aurum/internal/core"
	"aurum/internal/storage"

	"github.com/google/uuid"
)

// LedgerStore is the persistence surface the ledger service writes through.
type LedgerStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) error
	ListTransactions(ctx context.Context, owner string, f storage.TransactionFilter) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, owner, id string) error

	CreateAsset(ctx context.Context, a core.Asset) error
	ListAssets(ctx context.Context, owner string) ([]core.Asset, error)
	UpdateAsset(ctx context.Context, a core.Asset) error
	DeleteAsset(ctx context.Context, owner, id string) error

	CreateLiability(ctx context.Context, l core.Liability) error
	ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error)
	UpdateLiability(ctx context.Context, l core.Liability) error
	DeleteLiability(ctx context.Context, owner, id string) error

	UpsertBudget(ctx context.Context, b core.Budget) error
	ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
	DeleteBudget(ctx context.Context, owner, id string) error

	CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) error
	ListSavingsGoals(ctx context.Context, owner string) ([]core.SavingsGoal, error)
	UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error
	DeleteSavingsGoal(ctx context.Context, owner, id string) error

	CreateDebt(ctx context.Context, d core.Debt) error
	ListDebts(ctx context.Context, owner string) ([]core.Debt, error)
	UpdateDebt(ctx context.Context, d core.Debt) error
	DeleteDebt(ctx context.Context, owner, id string) error
}

// EventPublisher pushes ledger change events for the snapshot worker.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, owner, kind string) error
}

// LedgerService orchestrates entity writes across SQLite and AMQP.
type LedgerService struct {
	store     LedgerStore
	publisher EventPublisher
}

func NewLedgerService(store LedgerStore, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// --- transactions ---

func (s *LedgerService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.IsRecurring && t.RecurringStartDate.IsZero() {
		t.RecurringStartDate = t.Date
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, owner string, f storage.TransactionFilter) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx, owner, f)
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, owner, id string) error {
	return s.store.DeleteTransaction(ctx, owner, id)
}

// --- assets ---

func (s *LedgerService) CreateAsset(ctx context.Context, a core.Asset) (core.Asset, error) {
	if err := a.Validate(); err != nil {
		return core.Asset{}, fmt.Errorf("validate asset: %w", err)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if err := s.store.CreateAsset(ctx, a); err != nil {
		return core.Asset{}, err
	}
	s.publishEvent(ctx, a.Owner, "asset_changed")
	return a, nil
}

func (s *LedgerService) ListAssets(ctx context.Context, owner string) ([]core.Asset, error) {
	return s.store.ListAssets(ctx, owner)
}

func (s *LedgerService) UpdateAsset(ctx context.Context, a core.Asset) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validate asset: %w", err)
	}
	if err := s.store.UpdateAsset(ctx, a); err != nil {
		return err
	}
	s.publishEvent(ctx, a.Owner, "asset_changed")
	return nil
}

func (s *LedgerService) DeleteAsset(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteAsset(ctx, owner, id); err != nil {
		return err
	}
	s.publishEvent(ctx, owner, "asset_changed")
	return nil
}

// --- liabilities ---

func (s *LedgerService) CreateLiability(ctx context.Context, l core.Liability) (core.Liability, error) {
	if err := l.Validate(); err != nil {
		return core.Liability{}, fmt.Errorf("validate liability: %w", err)
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.store.CreateLiability(ctx, l); err != nil {
		return core.Liability{}, err
	}
	s.publishEvent(ctx, l.Owner, "liability_changed")
	return l, nil
}

func (s *LedgerService) ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error) {
	return s.store.ListLiabilities(ctx, owner)
}

func (s *LedgerService) UpdateLiability(ctx context.Context, l core.Liability) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("validate liability: %w", err)
	}
	if err := s.store.UpdateLiability(ctx, l); err != nil {
		return err
	}
	s.publishEvent(ctx, l.Owner, "liability_changed")
	return nil
}

func (s *LedgerService) DeleteLiability(ctx context.Context, owner, id string) error {
	if err := s.store.DeleteLiability(ctx, owner, id); err != nil {
		return err
	}
	s.publishEvent(ctx, owner, "liability_changed")
	return nil
}

// --- budgets ---

func (s *LedgerService) SetBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := s.store.UpsertBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *LedgerService) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx, owner)
}

func (s *LedgerService) DeleteBudget(ctx context.Context, owner, id string) error {
	return s.store.DeleteBudget(ctx, owner, id)
}

// --- savings goals ---

func (s *LedgerService) CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) (core.SavingsGoal, error) {
	if err := g.Validate(); err != nil {
		return core.SavingsGoal{}, fmt.Errorf("validate savings goal: %w", err)
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if err := s.store.CreateSavingsGoal(ctx, g); err != nil {
		return core.SavingsGoal{}, err
	}
	return g, nil
}

func (s *LedgerService) ListSavingsGoals(ctx context.Context, owner string) ([]core.SavingsGoal, error) {
	return s.store.ListSavingsGoals(ctx, owner)
}

func (s *LedgerService) UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("validate savings goal: %w", err)
	}
	return s.store.UpdateSavingsGoal(ctx, g)
}

func (s *LedgerService) DeleteSavingsGoal(ctx context.Context, owner, id string) error {
	return s.store.DeleteSavingsGoal(ctx, owner, id)
}

// --- debts ---

func (s *LedgerService) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if err := d.Validate(); err != nil {
		return core.Debt{}, fmt.Errorf("validate debt: %w", err)
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := s.store.CreateDebt(ctx, d); err != nil {
		return core.Debt{}, err
	}
	return d, nil
}

func (s *LedgerService) ListDebts(ctx context.Context, owner string) ([]core.Debt, error) {
	return s.store.ListDebts(ctx, owner)
}

func (s *LedgerService) UpdateDebt(ctx context.Context, d core.Debt) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("validate debt: %w", err)
	}
	return s.store.UpdateDebt(ctx, d)
}

func (s *LedgerService) DeleteDebt(ctx context.Context, owner, id string) error {
	return s.store.DeleteDebt(ctx, owner, id)
}

// publishEvent is best effort: the snapshot worker catches up on the next
// event, so a failed publish never fails the write that triggered it.
func (s *LedgerService) publishEvent(ctx context.Context, owner, kind string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping ledger event", "kind", kind)
		return
	}
	if err := s.publisher.PublishLedgerEvent(ctx, owner, kind); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"owner", owner,
			"kind", kind,
			"error", err)
	}
}

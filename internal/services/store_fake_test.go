package services

import (
	"context"

	"aurum/internal/core"
	"aurum/internal/storage"
)

// fakeStore is an in-memory LedgerStore / DashboardStore / RecurringStore /
// SnapshotStore used across the service tests.
type fakeStore struct {
	transactions []core.Transaction
	templates    []storage.RecurringTemplate
	assets       []core.Asset
	liabilities  []core.Liability
	budgets      []core.Budget
	goals        []core.SavingsGoal
	debts        []core.Debt
	snapshots    []storage.NetWorthSnapshot
	watermarks   map[string]core.Date

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{watermarks: map[string]core.Date{}}
}

func (f *fakeStore) CreateTransaction(_ context.Context, t core.Transaction) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.transactions = append(f.transactions, t)
	return nil
}

func (f *fakeStore) ListTransactions(_ context.Context, owner string, filter storage.TransactionFilter) ([]core.Transaction, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.Transaction
	for _, t := range f.transactions {
		if t.Owner != owner {
			continue
		}
		if filter.From != nil && t.Date.Before(filter.From.Time) {
			continue
		}
		if filter.To != nil && t.Date.After(filter.To.Time) {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, owner, id string) error {
	for i, t := range f.transactions {
		if t.Owner == owner && t.ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) ListRecurringTemplates(_ context.Context, owner string) ([]storage.RecurringTemplate, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []storage.RecurringTemplate
	for _, tmpl := range f.templates {
		if tmpl.Transaction.Owner == owner {
			out = append(out, tmpl)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllRecurringTemplates(_ context.Context) ([]storage.RecurringTemplate, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.templates, nil
}

func (f *fakeStore) SetLastMaterialized(_ context.Context, id string, d core.Date) error {
	f.watermarks[id] = d
	return nil
}

func (f *fakeStore) CreateAsset(_ context.Context, a core.Asset) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.assets = append(f.assets, a)
	return nil
}

func (f *fakeStore) ListAssets(_ context.Context, owner string) ([]core.Asset, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.Asset
	for _, a := range f.assets {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateAsset(_ context.Context, a core.Asset) error {
	for i, existing := range f.assets {
		if existing.Owner == a.Owner && existing.ID == a.ID {
			f.assets[i] = a
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteAsset(_ context.Context, owner, id string) error {
	for i, a := range f.assets {
		if a.Owner == owner && a.ID == id {
			f.assets = append(f.assets[:i], f.assets[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) CreateLiability(_ context.Context, l core.Liability) error {
	f.liabilities = append(f.liabilities, l)
	return nil
}

func (f *fakeStore) ListLiabilities(_ context.Context, owner string) ([]core.Liability, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.Liability
	for _, l := range f.liabilities {
		if l.Owner == owner {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateLiability(_ context.Context, l core.Liability) error {
	for i, existing := range f.liabilities {
		if existing.Owner == l.Owner && existing.ID == l.ID {
			f.liabilities[i] = l
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteLiability(_ context.Context, owner, id string) error {
	for i, l := range f.liabilities {
		if l.Owner == owner && l.ID == id {
			f.liabilities = append(f.liabilities[:i], f.liabilities[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) UpsertBudget(_ context.Context, b core.Budget) error {
	for i, existing := range f.budgets {
		if existing.Owner == b.Owner && existing.Category == b.Category {
			f.budgets[i].BudgetAmount = b.BudgetAmount
			return nil
		}
	}
	f.budgets = append(f.budgets, b)
	return nil
}

func (f *fakeStore) ListBudgets(_ context.Context, owner string) ([]core.Budget, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.Budget
	for _, b := range f.budgets {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteBudget(_ context.Context, owner, id string) error {
	for i, b := range f.budgets {
		if b.Owner == owner && b.ID == id {
			f.budgets = append(f.budgets[:i], f.budgets[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) CreateSavingsGoal(_ context.Context, g core.SavingsGoal) error {
	f.goals = append(f.goals, g)
	return nil
}

func (f *fakeStore) ListSavingsGoals(_ context.Context, owner string) ([]core.SavingsGoal, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.SavingsGoal
	for _, g := range f.goals {
		if g.Owner == owner {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSavingsGoal(_ context.Context, g core.SavingsGoal) error {
	for i, existing := range f.goals {
		if existing.Owner == g.Owner && existing.ID == g.ID {
			f.goals[i] = g
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteSavingsGoal(_ context.Context, owner, id string) error {
	for i, g := range f.goals {
		if g.Owner == owner && g.ID == id {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) CreateDebt(_ context.Context, d core.Debt) error {
	f.debts = append(f.debts, d)
	return nil
}

func (f *fakeStore) ListDebts(_ context.Context, owner string) ([]core.Debt, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []core.Debt
	for _, d := range f.debts {
		if d.Owner == owner {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateDebt(_ context.Context, d core.Debt) error {
	for i, existing := range f.debts {
		if existing.Owner == d.Owner && existing.ID == d.ID {
			f.debts[i] = d
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteDebt(_ context.Context, owner, id string) error {
	for i, d := range f.debts {
		if d.Owner == owner && d.ID == id {
			f.debts = append(f.debts[:i], f.debts[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) ListSnapshots(_ context.Context, owner string, limit int) ([]storage.NetWorthSnapshot, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []storage.NetWorthSnapshot
	for _, s := range f.snapshots {
		if s.Owner == owner {
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) InsertSnapshot(_ context.Context, s storage.NetWorthSnapshot) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.snapshots = append(f.snapshots, s)
	return nil
}

// fakePublisher records published ledger events.
type fakePublisher struct {
	events []string
	err    error
}

func (p *fakePublisher) PublishLedgerEvent(_ context.Context, owner, kind string) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, owner+":"+kind)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"aurum/internal/core"
	"aurum/internal/storage"

	"golang.org/x/sync/errgroup"
)

// DashboardStore is the read surface the dashboard composes from.
type DashboardStore interface {
	ListTransactions(ctx context.Context, owner string, f storage.TransactionFilter) ([]core.Transaction, error)
	ListRecurringTemplates(ctx context.Context, owner string) ([]storage.RecurringTemplate, error)
	ListAssets(ctx context.Context, owner string) ([]core.Asset, error)
	ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error)
	ListBudgets(ctx context.Context, owner string) ([]core.Budget, error)
	ListSavingsGoals(ctx context.Context, owner string) ([]core.SavingsGoal, error)
	ListDebts(ctx context.Context, owner string) ([]core.Debt, error)
	ListSnapshots(ctx context.Context, owner string, limit int) ([]storage.NetWorthSnapshot, error)
}

// DebtProjection pairs a debt with its payoff projection. Diverges is set
// when the minimum payment does not cover the monthly interest, in which
// case Projection is nil.
type DebtProjection struct {
	Debt       core.Debt
	Projection *core.PayoffProjection
	Diverges   bool
}

// Overview is the composed dashboard for one owner and one calendar month.
type Overview struct {
	Month              string
	Summary            core.Summary
	NetWorth           core.NetWorthSummary
	Budgets            []core.BudgetStatus
	Goals              []core.GoalStatus
	Debts              []DebtProjection
	RecentTransactions []core.Transaction
}

const recentTransactionLimit = 10

// DashboardService derives read models from the stored entities. It never
// writes; all projection happens at read time.
type DashboardService struct {
	store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store}
}

// Overview composes the month dashboard: cash flow for now's calendar month
// with recurring templates projected to the end of the month, net worth,
// budget and goal progress, and a payoff projection per debt.
func (s *DashboardService) Overview(ctx context.Context, owner string, now core.Date) (Overview, error) {
	windowStart := core.NewDate(now.Year(), now.Month(), 1)
	windowEnd := core.NewDate(now.Year(), now.Month()+1, 0)

	var (
		transactions []core.Transaction
		templates    []storage.RecurringTemplate
		assets       []core.Asset
		liabilities  []core.Liability
		budgets      []core.Budget
		goals        []core.SavingsGoal
		debts        []core.Debt
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = s.store.ListTransactions(gctx, owner, storage.TransactionFilter{
			From: &windowStart,
			To:   &windowEnd,
		})
		return err
	})
	g.Go(func() error {
		var err error
		templates, err = s.store.ListRecurringTemplates(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		assets, err = s.store.ListAssets(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		liabilities, err = s.store.ListLiabilities(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.store.ListBudgets(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.store.ListSavingsGoals(gctx, owner)
		return err
	})
	g.Go(func() error {
		var err error
		debts, err = s.store.ListDebts(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("load dashboard entities: %w", err)
	}

	merged := mergeProjected(ctx, transactions, templates, windowEnd)
	summary := core.Aggregate(merged, windowStart, windowEnd)

	statuses := make([]core.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := summary.ExpenseByCategory[b.Category]
		statuses = append(statuses, core.BudgetProgress(b, spent))
	}

	goalStatuses := make([]core.GoalStatus, 0, len(goals))
	for _, goal := range goals {
		goalStatuses = append(goalStatuses, core.GoalProgress(goal))
	}

	projections := make([]DebtProjection, 0, len(debts))
	for _, d := range debts {
		p, err := core.Project(d.TotalBalance, d.InterestRate, d.MinimumPayment)
		switch {
		case errors.Is(err, core.ErrPaymentTooLow):
			projections = append(projections, DebtProjection{Debt: d, Diverges: true})
		case err != nil:
			slog.WarnContext(ctx, "Skipping debt with unusable figures",
				"debt", d.DebtName,
				"error", err)
		default:
			projections = append(projections, DebtProjection{Debt: d, Projection: &p})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date.Time)
	})
	recent := merged
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}

	return Overview{
		Month:              windowStart.Format("January 2006"),
		Summary:            summary,
		NetWorth:           core.NetWorth(assets, liabilities),
		Budgets:            statuses,
		Goals:              goalStatuses,
		Debts:              projections,
		RecentTransactions: recent,
	}, nil
}

// SpendingReport builds the category spending report for [start, end] from
// stored transactions only; recurring templates are not projected here.
func (s *DashboardService) SpendingReport(ctx context.Context, owner string, start, end core.Date) (core.SpendingReport, error) {
	transactions, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{
		From: &start,
		To:   &end,
	})
	if err != nil {
		return core.SpendingReport{}, fmt.Errorf("load transactions: %w", err)
	}
	return core.BuildSpendingReport(transactions, start, end)
}

// CashflowTrend returns per-month income and expense totals for the
// monthsBack calendar months ending at now's month.
func (s *DashboardService) CashflowTrend(ctx context.Context, owner string, now core.Date, monthsBack int) ([]core.MonthCashflow, error) {
	from := core.NewDate(now.Year(), now.Month()-monthsBack+1, 1)
	to := core.NewDate(now.Year(), now.Month()+1, 0)
	transactions, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{
		From: &from,
		To:   &to,
	})
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return core.CashflowTrend(transactions, now, monthsBack), nil
}

// NetWorthHistory returns up to limit snapshots, most recent first.
func (s *DashboardService) NetWorthHistory(ctx context.Context, owner string, limit int) ([]storage.NetWorthSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	return s.store.ListSnapshots(ctx, owner, limit)
}

// mergeProjected appends recurring occurrences that fall inside the window
// but have not been stored yet. The cutoff per template is whichever is
// later: the template's own date (the stored row already counts it) or the
// materialization watermark left by the recurring worker.
func mergeProjected(ctx context.Context, stored []core.Transaction, templates []storage.RecurringTemplate, horizonEnd core.Date) []core.Transaction {
	merged := stored
	for _, tmpl := range templates {
		cutoff := tmpl.Transaction.Date
		if tmpl.LastMaterialized != nil && tmpl.LastMaterialized.After(cutoff.Time) {
			cutoff = *tmpl.LastMaterialized
		}

		occurrences, err := core.Expand(tmpl.Transaction, horizonEnd)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unexpandable recurring template",
				"id", tmpl.Transaction.ID,
				"error", err)
			continue
		}
		for _, occ := range occurrences {
			if !occ.Date.After(cutoff.Time) {
				continue
			}
			merged = append(merged, occ)
		}
	}
	return merged
}

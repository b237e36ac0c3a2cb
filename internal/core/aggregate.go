package core

import "github.com/shopspring/decimal"

type (
	// Summary holds the aggregate figures for one transaction window.
	Summary struct {
		TotalIncome       decimal.Decimal
		TotalExpenses     decimal.Decimal
		NetCashFlow       decimal.Decimal
		ExpenseByCategory map[string]decimal.Decimal
	}

	// NetWorthSummary reports net worth together with the totals it is
	// derived from; callers always get all three.
	NetWorthSummary struct {
		TotalAssets      decimal.Decimal
		TotalLiabilities decimal.Decimal
		NetWorth         decimal.Decimal
	}
)

// Aggregate sums the transactions dated within [windowStart, windowEnd],
// inclusive on both ends. ExpenseByCategory has a key only for categories
// with at least one matching expense.
func Aggregate(transactions []Transaction, windowStart, windowEnd Date) Summary {
	s := Summary{
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		NetCashFlow:       decimal.Zero,
		ExpenseByCategory: make(map[string]decimal.Decimal),
	}
	for _, t := range transactions {
		if t.Date.Before(windowStart.Time) || t.Date.After(windowEnd.Time) {
			continue
		}
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
			s.ExpenseByCategory[t.Category] = s.ExpenseByCategory[t.Category].Add(t.Amount)
		}
	}
	s.NetCashFlow = s.TotalIncome.Sub(s.TotalExpenses)
	return s
}

// NetWorth sums asset values and liability balances and returns both totals
// alongside their difference.
func NetWorth(assets []Asset, liabilities []Liability) NetWorthSummary {
	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.CurrentValue)
	}
	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.AmountOwed)
	}
	return NetWorthSummary{
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         totalAssets.Sub(totalLiabilities),
	}
}

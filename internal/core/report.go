package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

type (
	// MonthCashflow is one month of a cash-flow trend.
	MonthCashflow struct {
		MonthLabel string
		Income     decimal.Decimal
		Expenses   decimal.Decimal
		Net        decimal.Decimal
	}

	// CategorySpend is one ranked row of a spending report.
	CategorySpend struct {
		Category   string
		Amount     decimal.Decimal
		Percentage decimal.Decimal
	}

	SpendingReport struct {
		TotalSpent decimal.Decimal
		Categories []CategorySpend
	}
)

// CashflowTrend aggregates income, expenses and net per calendar month for
// the trailing monthsBack months ending at now's month, oldest first. Months
// with no transactions report zeros rather than being omitted: the slice
// always has exactly monthsBack entries.
func CashflowTrend(transactions []Transaction, now Date, monthsBack int) []MonthCashflow {
	if monthsBack <= 0 {
		return nil
	}
	trend := make([]MonthCashflow, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		months := (now.Year()*12 + now.Month() - 1) - i
		year := months / 12
		month := months%12 + 1

		monthStart := NewDate(year, month, 1)
		monthEnd := NewDate(year, month, clampDay(year, month, 31))
		s := Aggregate(transactions, monthStart, monthEnd)
		trend = append(trend, MonthCashflow{
			MonthLabel: monthStart.Format("Jan 2006"),
			Income:     s.TotalIncome,
			Expenses:   s.TotalExpenses,
			Net:        s.NetCashFlow,
		})
	}
	return trend
}

// BuildSpendingReport ranks expense categories over [start, end] by amount
// descending, ties broken by category name ascending so the ordering is
// deterministic. Returns ErrInvalidRange when start is after end.
func BuildSpendingReport(transactions []Transaction, start, end Date) (SpendingReport, error) {
	if start.After(end.Time) {
		return SpendingReport{}, ErrInvalidRange
	}

	s := Aggregate(transactions, start, end)
	report := SpendingReport{TotalSpent: s.TotalExpenses}
	for category, amount := range s.ExpenseByCategory {
		report.Categories = append(report.Categories, CategorySpend{
			Category:   category,
			Amount:     amount,
			Percentage: Percentage(amount, s.TotalExpenses),
		})
	}
	sort.Slice(report.Categories, func(i, j int) bool {
		a, b := report.Categories[i], report.Categories[j]
		if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
			return cmp > 0
		}
		return a.Category < b.Category
	})
	return report, nil
}

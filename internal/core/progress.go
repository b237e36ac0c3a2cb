package core

import "github.com/shopspring/decimal"

type (
	// BudgetStatus reports actual spend against a monthly budget. Ratio is
	// clamped to [0,1] for display; Spent is the unclamped actual so callers
	// can still surface overspend.
	BudgetStatus struct {
		Category     string
		Spent        decimal.Decimal
		BudgetAmount decimal.Decimal
		Ratio        float64
	}

	// GoalStatus reports saved progress against a savings goal target.
	GoalStatus struct {
		GoalName string
		Current  decimal.Decimal
		Target   decimal.Decimal
		Ratio    float64
	}
)

// BudgetProgress derives the status of one budget from the amount actually
// spent in its category this period. A zero budget yields ratio 0, never a
// division error.
func BudgetProgress(b Budget, spentInCategory decimal.Decimal) BudgetStatus {
	return BudgetStatus{
		Category:     b.Category,
		Spent:        spentInCategory,
		BudgetAmount: b.BudgetAmount,
		Ratio:        clampRatio(spentInCategory, b.BudgetAmount),
	}
}

// GoalProgress derives the status of one savings goal. A zero target yields
// ratio 0, never a division error.
func GoalProgress(g SavingsGoal) GoalStatus {
	return GoalStatus{
		GoalName: g.GoalName,
		Current:  g.CurrentAmount,
		Target:   g.TargetAmount,
		Ratio:    clampRatio(g.CurrentAmount, g.TargetAmount),
	}
}

// clampRatio returns part/whole held to [0,1]; display never exceeds 100%.
func clampRatio(part, whole decimal.Decimal) float64 {
	if whole.Sign() <= 0 {
		return 0
	}
	r := part.Div(whole).InexactFloat64()
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

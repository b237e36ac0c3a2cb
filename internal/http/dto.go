package http

import (
	"aurum/internal/core"
	"aurum/internal/services"
	"aurum/internal/storage"
)

// Response DTOs. Amounts travel as decimal strings and dates as YYYY-MM-DD;
// the JSON layer never re-encodes money as floats.

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u storage.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

type transactionResponse struct {
	ID                 string `json:"id"`
	Type               string `json:"type"`
	Amount             string `json:"amount"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Date               string `json:"date"`
	IsRecurring        bool   `json:"is_recurring"`
	Frequency          string `json:"frequency,omitempty"`
	RecurringStartDate string `json:"recurring_start_date,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Amount:      t.Amount.String(),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		IsRecurring: t.IsRecurring,
	}
	if t.IsRecurring {
		resp.Frequency = string(t.Frequency)
		resp.RecurringStartDate = t.RecurringStartDate.Format("2006-01-02")
	}
	return resp
}

func toTransactionResponses(ts []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(ts))
	for i, t := range ts {
		out[i] = toTransactionResponse(t)
	}
	return out
}

type assetResponse struct {
	ID           string `json:"id"`
	Description  string `json:"description"`
	CurrentValue string `json:"current_value"`
}

func toAssetResponse(a core.Asset) assetResponse {
	return assetResponse{ID: a.ID, Description: a.Description, CurrentValue: a.CurrentValue.String()}
}

type liabilityResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	AmountOwed  string `json:"amount_owed"`
}

func toLiabilityResponse(l core.Liability) liabilityResponse {
	return liabilityResponse{ID: l.ID, Description: l.Description, AmountOwed: l.AmountOwed.String()}
}

type budgetResponse struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	BudgetAmount string `json:"budget_amount"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{ID: b.ID, Category: b.Category, BudgetAmount: b.BudgetAmount.String()}
}

type savingsGoalResponse struct {
	ID            string `json:"id"`
	GoalName      string `json:"goal_name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
}

func toSavingsGoalResponse(g core.SavingsGoal) savingsGoalResponse {
	return savingsGoalResponse{
		ID:            g.ID,
		GoalName:      g.GoalName,
		TargetAmount:  g.TargetAmount.String(),
		CurrentAmount: g.CurrentAmount.String(),
	}
}

type debtResponse struct {
	ID             string `json:"id"`
	DebtName       string `json:"debt_name"`
	TotalBalance   string `json:"total_balance"`
	InterestRate   string `json:"interest_rate"`
	MinimumPayment string `json:"minimum_payment"`
}

func toDebtResponse(d core.Debt) debtResponse {
	return debtResponse{
		ID:             d.ID,
		DebtName:       d.DebtName,
		TotalBalance:   d.TotalBalance.String(),
		InterestRate:   d.InterestRate.String(),
		MinimumPayment: d.MinimumPayment.String(),
	}
}

type summaryResponse struct {
	TotalIncome       string            `json:"total_income"`
	TotalExpenses     string            `json:"total_expenses"`
	NetCashFlow       string            `json:"net_cash_flow"`
	ExpenseByCategory map[string]string `json:"expense_by_category"`
}

func toSummaryResponse(s core.Summary) summaryResponse {
	byCategory := make(map[string]string, len(s.ExpenseByCategory))
	for category, amount := range s.ExpenseByCategory {
		byCategory[category] = amount.String()
	}
	return summaryResponse{
		TotalIncome:       s.TotalIncome.String(),
		TotalExpenses:     s.TotalExpenses.String(),
		NetCashFlow:       s.NetCashFlow.String(),
		ExpenseByCategory: byCategory,
	}
}

type netWorthResponse struct {
	TotalAssets      string `json:"total_assets"`
	TotalLiabilities string `json:"total_liabilities"`
	NetWorth         string `json:"net_worth"`
}

func toNetWorthResponse(n core.NetWorthSummary) netWorthResponse {
	return netWorthResponse{
		TotalAssets:      n.TotalAssets.String(),
		TotalLiabilities: n.TotalLiabilities.String(),
		NetWorth:         n.NetWorth.String(),
	}
}

type budgetStatusResponse struct {
	Category     string  `json:"category"`
	Spent        string  `json:"spent"`
	BudgetAmount string  `json:"budget_amount"`
	Ratio        float64 `json:"ratio"`
}

type goalStatusResponse struct {
	GoalName string  `json:"goal_name"`
	Current  string  `json:"current"`
	Target   string  `json:"target"`
	Ratio    float64 `json:"ratio"`
}

type debtProjectionResponse struct {
	DebtName       string `json:"debt_name"`
	TotalBalance   string `json:"total_balance"`
	MinimumPayment string `json:"minimum_payment"`
	Diverges       bool   `json:"diverges"`
	MonthsToPayoff *int   `json:"months_to_payoff,omitempty"`
	TotalPaid      string `json:"total_paid,omitempty"`
	TotalInterest  string `json:"total_interest,omitempty"`
}

func toDebtProjectionResponse(dp services.DebtProjection) debtProjectionResponse {
	resp := debtProjectionResponse{
		DebtName:       dp.Debt.DebtName,
		TotalBalance:   dp.Debt.TotalBalance.String(),
		MinimumPayment: dp.Debt.MinimumPayment.String(),
		Diverges:       dp.Diverges,
	}
	if dp.Projection != nil {
		months := dp.Projection.MonthsToPayoff
		resp.MonthsToPayoff = &months
		resp.TotalPaid = dp.Projection.TotalPaid.String()
		resp.TotalInterest = dp.Projection.TotalInterest.String()
	}
	return resp
}

type overviewResponse struct {
	Month              string                   `json:"month"`
	Summary            summaryResponse          `json:"summary"`
	NetWorth           netWorthResponse         `json:"net_worth"`
	Budgets            []budgetStatusResponse   `json:"budgets"`
	Goals              []goalStatusResponse     `json:"goals"`
	Debts              []debtProjectionResponse `json:"debts"`
	RecentTransactions []transactionResponse    `json:"recent_transactions"`
}

func toOverviewResponse(ov services.Overview) overviewResponse {
	budgets := make([]budgetStatusResponse, len(ov.Budgets))
	for i, b := range ov.Budgets {
		budgets[i] = budgetStatusResponse{
			Category:     b.Category,
			Spent:        b.Spent.String(),
			BudgetAmount: b.BudgetAmount.String(),
			Ratio:        b.Ratio,
		}
	}
	goals := make([]goalStatusResponse, len(ov.Goals))
	for i, g := range ov.Goals {
		goals[i] = goalStatusResponse{
			GoalName: g.GoalName,
			Current:  g.Current.String(),
			Target:   g.Target.String(),
			Ratio:    g.Ratio,
		}
	}
	debts := make([]debtProjectionResponse, len(ov.Debts))
	for i, d := range ov.Debts {
		debts[i] = toDebtProjectionResponse(d)
	}
	return overviewResponse{
		Month:              ov.Month,
		Summary:            toSummaryResponse(ov.Summary),
		NetWorth:           toNetWorthResponse(ov.NetWorth),
		Budgets:            budgets,
		Goals:              goals,
		Debts:              debts,
		RecentTransactions: toTransactionResponses(ov.RecentTransactions),
	}
}

type categorySpendResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
}

type spendingReportResponse struct {
	TotalSpent string                  `json:"total_spent"`
	Categories []categorySpendResponse `json:"categories"`
}

func toSpendingReportResponse(r core.SpendingReport) spendingReportResponse {
	categories := make([]categorySpendResponse, len(r.Categories))
	for i, c := range r.Categories {
		categories[i] = categorySpendResponse{
			Category:   c.Category,
			Amount:     c.Amount.String(),
			Percentage: c.Percentage.String(),
		}
	}
	return spendingReportResponse{
		TotalSpent: r.TotalSpent.String(),
		Categories: categories,
	}
}

type monthCashflowResponse struct {
	Month    string `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

func toCashflowResponses(trend []core.MonthCashflow) []monthCashflowResponse {
	out := make([]monthCashflowResponse, len(trend))
	for i, m := range trend {
		out[i] = monthCashflowResponse{
			Month:    m.MonthLabel,
			Income:   m.Income.String(),
			Expenses: m.Expenses.String(),
			Net:      m.Net.String(),
		}
	}
	return out
}

type snapshotResponse struct {
	Date             string `json:"date"`
	TotalAssets      string `json:"total_assets"`
	TotalLiabilities string `json:"total_liabilities"`
	NetWorth         string `json:"net_worth"`
}

func toSnapshotResponses(snaps []storage.NetWorthSnapshot) []snapshotResponse {
	out := make([]snapshotResponse, len(snaps))
	for i, s := range snaps {
		out[i] = snapshotResponse{
			Date:             s.SnapshotDate.Format("2006-01-02"),
			TotalAssets:      s.TotalAssets.String(),
			TotalLiabilities: s.TotalLiabilities.String(),
			NetWorth:         s.NetWorth.String(),
		}
	}
	return out
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"aurum/internal/core"
)

const maxBodyBytes = 1 << 20

var errBadDate = errors.New("date must be YYYY-MM-DD")

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, errBadDate
	}
	return core.DateOf(t), nil
}

// queryDate reads an optional YYYY-MM-DD query parameter.
func queryDate(r *http.Request, key string) (*core.Date, error) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil, nil
	}
	d, err := parseDate(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &d, nil
}

// queryInt reads an optional integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// --- request payloads ---

type transactionRequest struct {
	Type               string `json:"type"`
	Amount             string `json:"amount"`
	Category           string `json:"category"`
	Description        string `json:"description"`
	Date               string `json:"date"`
	IsRecurring        bool   `json:"is_recurring"`
	Frequency          string `json:"frequency,omitempty"`
	RecurringStartDate string `json:"recurring_start_date,omitempty"`
}

func (req transactionRequest) toDomain(owner string) (core.Transaction, error) {
	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Owner:       owner,
		Type:        core.TransactionType(req.Type),
		Amount:      amount,
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Date:        date,
		IsRecurring: req.IsRecurring,
		Frequency:   core.Frequency(req.Frequency),
	}
	if req.RecurringStartDate != "" {
		start, err := parseDate(req.RecurringStartDate)
		if err != nil {
			return core.Transaction{}, err
		}
		t.RecurringStartDate = start
	}
	return t, nil
}

type assetRequest struct {
	Description  string `json:"description"`
	CurrentValue string `json:"current_value"`
}

func (req assetRequest) toDomain(owner, id string) (core.Asset, error) {
	value, err := core.ParseBalance(req.CurrentValue)
	if err != nil {
		return core.Asset{}, err
	}
	return core.Asset{
		ID:           id,
		Owner:        owner,
		Description:  sanitizeInput(req.Description),
		CurrentValue: value,
	}, nil
}

type liabilityRequest struct {
	Description string `json:"description"`
	AmountOwed  string `json:"amount_owed"`
}

func (req liabilityRequest) toDomain(owner, id string) (core.Liability, error) {
	amount, err := core.ParseBalance(req.AmountOwed)
	if err != nil {
		return core.Liability{}, err
	}
	return core.Liability{
		ID:          id,
		Owner:       owner,
		Description: sanitizeInput(req.Description),
		AmountOwed:  amount,
	}, nil
}

type budgetRequest struct {
	Category     string `json:"category"`
	BudgetAmount string `json:"budget_amount"`
}

func (req budgetRequest) toDomain(owner string) (core.Budget, error) {
	amount, err := core.ParseBalance(req.BudgetAmount)
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Owner:        owner,
		Category:     sanitizeInput(req.Category),
		BudgetAmount: amount,
	}, nil
}

type savingsGoalRequest struct {
	GoalName      string `json:"goal_name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
}

func (req savingsGoalRequest) toDomain(owner, id string) (core.SavingsGoal, error) {
	target, err := core.ParseAmount(req.TargetAmount)
	if err != nil {
		return core.SavingsGoal{}, err
	}
	g := core.SavingsGoal{
		ID:           id,
		Owner:        owner,
		GoalName:     sanitizeInput(req.GoalName),
		TargetAmount: target,
	}
	if req.CurrentAmount != "" {
		current, err := core.ParseBalance(req.CurrentAmount)
		if err != nil {
			return core.SavingsGoal{}, err
		}
		g.CurrentAmount = current
	}
	return g, nil
}

type debtRequest struct {
	DebtName       string `json:"debt_name"`
	TotalBalance   string `json:"total_balance"`
	InterestRate   string `json:"interest_rate"`
	MinimumPayment string `json:"minimum_payment"`
}

func (req debtRequest) toDomain(owner, id string) (core.Debt, error) {
	balance, err := core.ParseAmount(req.TotalBalance)
	if err != nil {
		return core.Debt{}, err
	}
	rate, err := core.ParseRate(req.InterestRate)
	if err != nil {
		return core.Debt{}, err
	}
	payment, err := core.ParseAmount(req.MinimumPayment)
	if err != nil {
		return core.Debt{}, err
	}
	return core.Debt{
		ID:             id,
		Owner:          owner,
		DebtName:       sanitizeInput(req.DebtName),
		TotalBalance:   balance,
		InterestRate:   rate,
		MinimumPayment: payment,
	}, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

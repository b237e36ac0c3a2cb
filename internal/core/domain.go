package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	TransactionType string
	Frequency       string

	Date struct {
		time.Time
	}

	// Transaction is a single ledger entry. A transaction with IsRecurring
	// set is also a template: its own Date is the first occurrence and
	// further occurrences are generated from RecurringStartDate at the
	// template's cadence.
	Transaction struct {
		ID                 string
		Owner              string
		Type               TransactionType
		Amount             decimal.Decimal
		Category           string
		Description        string
		Date               Date
		IsRecurring        bool
		Frequency          Frequency
		RecurringStartDate Date
	}

	Asset struct {
		ID           string
		Owner        string
		Description  string
		CurrentValue decimal.Decimal
	}

	Liability struct {
		ID          string
		Owner       string
		Description string
		AmountOwed  decimal.Decimal
	}

	// Budget is a monthly spending cap for one category.
	Budget struct {
		ID           string
		Owner        string
		Category     string
		BudgetAmount decimal.Decimal
	}

	SavingsGoal struct {
		ID            string
		Owner         string
		GoalName      string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
	}

	// Debt carries the figures needed for a payoff projection: outstanding
	// balance, annual interest rate in percent, and the monthly minimum.
	Debt struct {
		ID             string
		Owner          string
		DebtName       string
		TotalBalance   decimal.Decimal
		InterestRate   decimal.Decimal
		MinimumPayment decimal.Decimal
	}
)

var (
	ErrNotRecurring     = errors.New("transaction is not a recurring template")
	ErrPaymentTooLow    = errors.New("payment does not cover monthly interest")
	ErrInvalidRange     = errors.New("window start is after window end")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (f Frequency) Validate() error {
	switch f {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidFrequency
	}
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.IsRecurring {
		if err := t.Frequency.Validate(); err != nil {
			return err
		}
		if err := t.RecurringStartDate.Validate(); err != nil {
			return errors.New("invalid recurring start date: " + err.Error())
		}
	}
	return nil
}

func (a Asset) Validate() error {
	if len(strings.TrimSpace(a.Description)) == 0 {
		return ErrEmptyDescription
	}
	if a.CurrentValue.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (l Liability) Validate() error {
	if len(strings.TrimSpace(l.Description)) == 0 {
		return ErrEmptyDescription
	}
	if l.AmountOwed.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.BudgetAmount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.GoalName)) == 0 {
		return ErrEmptyName
	}
	if g.TargetAmount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (d Debt) Validate() error {
	if len(strings.TrimSpace(d.DebtName)) == 0 {
		return ErrEmptyName
	}
	if d.TotalBalance.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if d.InterestRate.Sign() < 0 {
		return ErrInvalidAmount
	}
	if d.MinimumPayment.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

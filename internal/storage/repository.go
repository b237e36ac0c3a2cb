package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aurum/internal/core"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

var (
	ErrNotFound   = errors.New("record not found")
	ErrEmailTaken = errors.New("email already registered")
)

// User is the account row. It lives here rather than in core because the
// derivation engine never sees users, only owner-scoped entities.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// NetWorthSnapshot is a persisted point-in-time net worth reading,
// written by the snapshot worker.
type NetWorthSnapshot struct {
	ID               string
	Owner            string
	SnapshotDate     core.Date
	TotalAssets      decimal.Decimal
	TotalLiabilities decimal.Decimal
	NetWorth         decimal.Decimal
	CreatedAt        time.Time
}

// RecurringTemplate pairs a recurring transaction with the date up to
// which its occurrences have already been materialized.
type RecurringTemplate struct {
	Transaction      core.Transaction
	LastMaterialized *core.Date
}

// TransactionFilter narrows ListTransactions. Zero values mean no filter.
type TransactionFilter struct {
	From     *core.Date
	To       *core.Date
	Category string
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func parseDate(s string) (core.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}

// --- users ---

func (r *SQLiteRepository) CreateUser(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, name) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", u.ID, "email", u.Email)
	return nil
}

func (r *SQLiteRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, created_at FROM users WHERE email = ?`,
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) FindUserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, created_at FROM users WHERE id = ?`,
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// --- transactions ---

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	var freq, startDate sql.NullString
	if t.IsRecurring {
		freq = sql.NullString{String: string(t.Frequency), Valid: true}
		startDate = sql.NullString{String: t.RecurringStartDate.Format(dateLayout), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions
		   (id, owner, type, amount, category, description, tx_date, is_recurring, frequency, recurring_start_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Owner, string(t.Type), t.Amount.String(), t.Category, t.Description,
		t.Date.Format(dateLayout), t.IsRecurring, freq, startDate)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"owner", t.Owner,
		"type", t.Type,
		"amount", t.Amount.String(),
		"category", t.Category)
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, owner string, f TransactionFilter) ([]core.Transaction, error) {
	query := `SELECT id, owner, type, amount, category, description, tx_date,
	                 is_recurring, frequency, recurring_start_date
	          FROM transactions WHERE owner = ?`
	args := []any{owner}

	if f.From != nil {
		query += ` AND tx_date >= ?`
		args = append(args, f.From.Format(dateLayout))
	}
	if f.To != nil {
		query += ` AND tx_date <= ?`
		args = append(args, f.To.Format(dateLayout))
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	query += ` ORDER BY tx_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireAffected(res, "transaction")
}

// ListRecurringTemplates returns one owner's recurring transactions with
// their materialization watermarks.
func (r *SQLiteRepository) ListRecurringTemplates(ctx context.Context, owner string) ([]RecurringTemplate, error) {
	return r.listTemplates(ctx,
		`SELECT id, owner, type, amount, category, description, tx_date,
		        is_recurring, frequency, recurring_start_date, last_materialized
		 FROM transactions WHERE is_recurring = 1 AND owner = ?`, owner)
}

// ListAllRecurringTemplates returns recurring transactions across all
// owners. Used by the recurring worker.
func (r *SQLiteRepository) ListAllRecurringTemplates(ctx context.Context) ([]RecurringTemplate, error) {
	return r.listTemplates(ctx,
		`SELECT id, owner, type, amount, category, description, tx_date,
		        is_recurring, frequency, recurring_start_date, last_materialized
		 FROM transactions WHERE is_recurring = 1`)
}

func (r *SQLiteRepository) listTemplates(ctx context.Context, query string, args ...any) ([]RecurringTemplate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	defer rows.Close()

	var out []RecurringTemplate
	for rows.Next() {
		var (
			t          core.Transaction
			amount     string
			txDate     string
			freq       sql.NullString
			startDate  sql.NullString
			lastMarker sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Owner, &t.Type, &amount, &t.Category, &t.Description,
			&txDate, &t.IsRecurring, &freq, &startDate, &lastMarker); err != nil {
			return nil, fmt.Errorf("scan recurring template: %w", err)
		}

		tmpl, err := hydrateTransaction(t, amount, txDate, freq, startDate)
		if err != nil {
			return nil, err
		}

		entry := RecurringTemplate{Transaction: tmpl}
		if lastMarker.Valid {
			d, err := parseDate(lastMarker.String)
			if err != nil {
				return nil, err
			}
			entry.LastMaterialized = &d
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SetLastMaterialized(ctx context.Context, id string, d core.Date) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET last_materialized = ? WHERE id = ? AND is_recurring = 1`,
		d.Format(dateLayout), id)
	if err != nil {
		return fmt.Errorf("set last materialized: %w", err)
	}
	return requireAffected(res, "recurring template")
}

// --- assets ---

func (r *SQLiteRepository) CreateAsset(ctx context.Context, a core.Asset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (id, owner, description, current_value) VALUES (?, ?, ?, ?)`,
		a.ID, a.Owner, a.Description, a.CurrentValue.String())
	if err != nil {
		return fmt.Errorf("create asset: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListAssets(ctx context.Context, owner string) ([]core.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, description, current_value FROM assets WHERE owner = ? ORDER BY created_at`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var out []core.Asset
	for rows.Next() {
		var a core.Asset
		if err := rows.Scan(&a.ID, &a.Owner, &a.Description, &a.CurrentValue); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateAsset(ctx context.Context, a core.Asset) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE assets SET description = ?, current_value = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE owner = ? AND id = ?`,
		a.Description, a.CurrentValue.String(), a.Owner, a.ID)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	return requireAffected(res, "asset")
}

func (r *SQLiteRepository) DeleteAsset(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM assets WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return requireAffected(res, "asset")
}

// --- liabilities ---

func (r *SQLiteRepository) CreateLiability(ctx context.Context, l core.Liability) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO liabilities (id, owner, description, amount_owed) VALUES (?, ?, ?, ?)`,
		l.ID, l.Owner, l.Description, l.AmountOwed.String())
	if err != nil {
		return fmt.Errorf("create liability: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListLiabilities(ctx context.Context, owner string) ([]core.Liability, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, description, amount_owed FROM liabilities WHERE owner = ? ORDER BY created_at`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list liabilities: %w", err)
	}
	defer rows.Close()

	var out []core.Liability
	for rows.Next() {
		var l core.Liability
		if err := rows.Scan(&l.ID, &l.Owner, &l.Description, &l.AmountOwed); err != nil {
			return nil, fmt.Errorf("scan liability: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateLiability(ctx context.Context, l core.Liability) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE liabilities SET description = ?, amount_owed = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE owner = ? AND id = ?`,
		l.Description, l.AmountOwed.String(), l.Owner, l.ID)
	if err != nil {
		return fmt.Errorf("update liability: %w", err)
	}
	return requireAffected(res, "liability")
}

func (r *SQLiteRepository) DeleteLiability(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM liabilities WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete liability: %w", err)
	}
	return requireAffected(res, "liability")
}

// --- budgets ---

// UpsertBudget keeps one budget row per (owner, category); setting a
// budget for an existing category replaces its amount.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, owner, category, budget_amount) VALUES (?, ?, ?, ?)
		 ON CONFLICT (owner, category) DO UPDATE SET budget_amount = excluded.budget_amount`,
		b.ID, b.Owner, b.Category, b.BudgetAmount.String())
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, category, budget_amount FROM budgets WHERE owner = ? ORDER BY category`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Owner, &b.Category, &b.BudgetAmount); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireAffected(res, "budget")
}

// --- savings goals ---

func (r *SQLiteRepository) CreateSavingsGoal(ctx context.Context, g core.SavingsGoal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (id, owner, goal_name, target_amount, current_amount)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Owner, g.GoalName, g.TargetAmount.String(), g.CurrentAmount.String())
	if err != nil {
		return fmt.Errorf("create savings goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListSavingsGoals(ctx context.Context, owner string) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, goal_name, target_amount, current_amount
		 FROM savings_goals WHERE owner = ? ORDER BY created_at`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		var g core.SavingsGoal
		if err := rows.Scan(&g.ID, &g.Owner, &g.GoalName, &g.TargetAmount, &g.CurrentAmount); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateSavingsGoal(ctx context.Context, g core.SavingsGoal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE savings_goals
		 SET goal_name = ?, target_amount = ?, current_amount = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE owner = ? AND id = ?`,
		g.GoalName, g.TargetAmount.String(), g.CurrentAmount.String(), g.Owner, g.ID)
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	return requireAffected(res, "savings goal")
}

func (r *SQLiteRepository) DeleteSavingsGoal(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM savings_goals WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return requireAffected(res, "savings goal")
}

// --- debts ---

func (r *SQLiteRepository) CreateDebt(ctx context.Context, d core.Debt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (id, owner, debt_name, total_balance, interest_rate, minimum_payment)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Owner, d.DebtName, d.TotalBalance.String(), d.InterestRate.String(), d.MinimumPayment.String())
	if err != nil {
		return fmt.Errorf("create debt: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListDebts(ctx context.Context, owner string) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, debt_name, total_balance, interest_rate, minimum_payment
		 FROM debts WHERE owner = ? ORDER BY created_at`,
		owner)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		var d core.Debt
		if err := rows.Scan(&d.ID, &d.Owner, &d.DebtName, &d.TotalBalance, &d.InterestRate, &d.MinimumPayment); err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts
		 SET debt_name = ?, total_balance = ?, interest_rate = ?, minimum_payment = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE owner = ? AND id = ?`,
		d.DebtName, d.TotalBalance.String(), d.InterestRate.String(), d.MinimumPayment.String(), d.Owner, d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireAffected(res, "debt")
}

func (r *SQLiteRepository) DeleteDebt(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM debts WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireAffected(res, "debt")
}

// --- net worth snapshots ---

func (r *SQLiteRepository) InsertSnapshot(ctx context.Context, s NetWorthSnapshot) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO networth_snapshots (id, owner, snapshot_date, total_assets, total_liabilities, net_worth)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Owner, s.SnapshotDate.Format(dateLayout),
		s.TotalAssets.String(), s.TotalLiabilities.String(), s.NetWorth.String())
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Net worth snapshot saved",
		"owner", s.Owner,
		"date", s.SnapshotDate.Format(dateLayout),
		"net_worth", s.NetWorth.String())
	return nil
}

func (r *SQLiteRepository) ListSnapshots(ctx context.Context, owner string, limit int) ([]NetWorthSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner, snapshot_date, total_assets, total_liabilities, net_worth, created_at
		 FROM networth_snapshots WHERE owner = ?
		 ORDER BY snapshot_date DESC LIMIT ?`,
		owner, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []NetWorthSnapshot
	for rows.Next() {
		var (
			s       NetWorthSnapshot
			rawDate string
		)
		if err := rows.Scan(&s.ID, &s.Owner, &rawDate, &s.TotalAssets, &s.TotalLiabilities, &s.NetWorth, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.SnapshotDate, err = parseDate(rawDate)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// --- helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t         core.Transaction
		amount    string
		txDate    string
		freq      sql.NullString
		startDate sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Owner, &t.Type, &amount, &t.Category, &t.Description,
		&txDate, &t.IsRecurring, &freq, &startDate); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	return hydrateTransaction(t, amount, txDate, freq, startDate)
}

func hydrateTransaction(t core.Transaction, amount, txDate string, freq, startDate sql.NullString) (core.Transaction, error) {
	var err error
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	t.Date, err = parseDate(txDate)
	if err != nil {
		return core.Transaction{}, err
	}
	if freq.Valid {
		t.Frequency = core.Frequency(freq.String)
	}
	if startDate.Valid {
		t.RecurringStartDate, err = parseDate(startDate.String)
		if err != nil {
			return core.Transaction{}, err
		}
	}
	return t, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", entity, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces constraint failures as plain errors with
	// the SQLite message text.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

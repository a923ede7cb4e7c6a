package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"famfin/internal/core"
	"famfin/internal/finance"
)

// SQLiteRepository is the durable persistence backend.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ finance.Repository = (*SQLiteRepository)(nil)

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

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) ListMembers(ctx context.Context, onlyActive bool) ([]core.FamilyMember, error) {
	rows, err := r.queries.ListFamilyMembers(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	out := make([]core.FamilyMember, 0, len(rows))
	for _, row := range rows {
		m, err := memberFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode family member %s: %w", row.ID, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertMember(ctx context.Context, m core.FamilyMember) error {
	if err := r.queries.CreateFamilyMember(ctx, memberToRow(m)); err != nil {
		return fmt.Errorf("create family member: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateMember(ctx context.Context, m core.FamilyMember) error {
	n, err := r.queries.UpdateFamilyMember(ctx, memberToRow(m))
	if err != nil {
		return fmt.Errorf("update family member: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SoftDeleteMember(ctx context.Context, id string) error {
	n, err := r.queries.DeactivateFamilyMember(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate family member: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, onlyActive bool) ([]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]core.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.Category{
			ID:     row.ID,
			Name:   row.Name,
			Icon:   row.Icon,
			Type:   core.CategoryType(row.Type),
			Color:  row.Color,
			Active: row.IsActive != 0,
		})
	}
	return out, nil
}

func (r *SQLiteRepository) InsertCategory(ctx context.Context, c core.Category) error {
	row := CategoryRow{
		ID: c.ID, Name: c.Name, Icon: c.Icon, Type: string(c.Type),
		Color: c.Color, IsActive: boolArg(c.Active),
	}
	if err := r.queries.CreateCategory(ctx, row); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, c core.Category) error {
	row := CategoryRow{
		ID: c.ID, Name: c.Name, Icon: c.Icon, Type: string(c.Type),
		Color: c.Color, IsActive: boolArg(c.Active),
	}
	n, err := r.queries.UpdateCategory(ctx, row)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SoftDeleteCategory(ctx context.Context, id string) error {
	n, err := r.queries.DeactivateCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context, onlyActive bool) ([]core.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	out := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		a, err := accountFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode account %s: %w", row.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertAccount(ctx context.Context, a core.Account) error {
	if err := r.queries.CreateAccount(ctx, accountToRow(a)); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateAccount(ctx context.Context, a core.Account) error {
	n, err := r.queries.UpdateAccount(ctx, accountToRow(a))
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SoftDeleteAccount(ctx context.Context, id string) error {
	n, err := r.queries.DeactivateAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := transactionFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode transaction %s: %w", row.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return transactionFromRow(row)
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) error {
	if err := r.queries.CreateTransaction(ctx, transactionToRow(t)); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	n, err := r.queries.UpdateTransaction(ctx, transactionToRow(t))
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	n, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListRecurring(ctx context.Context, onlyActive bool) ([]core.RecurringTransaction, error) {
	rows, err := r.queries.ListRecurringTransactions(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions: %w", err)
	}
	out := make([]core.RecurringTransaction, 0, len(rows))
	for _, row := range rows {
		rt, err := recurringFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode recurring transaction %s: %w", row.ID, err)
		}
		out = append(out, rt)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertRecurring(ctx context.Context, rt core.RecurringTransaction) error {
	if err := r.queries.CreateRecurringTransaction(ctx, recurringToRow(rt)); err != nil {
		return fmt.Errorf("create recurring transaction: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateRecurring(ctx context.Context, rt core.RecurringTransaction) error {
	n, err := r.queries.UpdateRecurringTransaction(ctx, recurringToRow(rt))
	if err != nil {
		return fmt.Errorf("update recurring transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SoftDeleteRecurring(ctx context.Context, id string) error {
	n, err := r.queries.DeactivateRecurringTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate recurring transaction: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.queries.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	out := make([]core.Bill, 0, len(rows))
	for _, row := range rows {
		b, err := billFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode bill %s: %w", row.ID, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertBill(ctx context.Context, b core.Bill) error {
	if err := r.queries.CreateBill(ctx, billToRow(b)); err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, id string) error {
	n, err := r.queries.DeleteBill(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context, onlyActive bool) ([]core.Goal, error) {
	rows, err := r.queries.ListGoals(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := goalFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("decode goal %s: %w", row.ID, err)
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *SQLiteRepository) InsertGoal(ctx context.Context, g core.Goal) error {
	if err := r.queries.CreateGoal(ctx, goalToRow(g)); err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	n, err := r.queries.UpdateGoal(ctx, goalToRow(g))
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SoftDeleteGoal(ctx context.Context, id string) error {
	n, err := r.queries.DeactivateGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("deactivate goal: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// Row conversions. Money columns hold exact decimal strings, date columns
// RFC 3339 with the empty string for missing values.

func moneyText(m core.Money) string {
	return m.Decimal.String()
}

func moneyFromText(s string) (core.Money, error) {
	if s == "" {
		return core.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return core.Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return core.MoneyFromDecimal(d), nil
}

func timeText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func timeFromText(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

func memberToRow(m core.FamilyMember) FamilyMemberRow {
	return FamilyMemberRow{
		ID:            m.ID,
		Name:          m.Name,
		Role:          m.Role,
		AvatarURL:     m.AvatarURL,
		MonthlyIncome: moneyText(m.MonthlyIncome),
		Color:         m.Color,
		IsActive:      boolArg(m.Active),
		CreatedAt:     timeText(m.CreatedAt),
		UpdatedAt:     timeText(m.UpdatedAt),
	}
}

func memberFromRow(r FamilyMemberRow) (core.FamilyMember, error) {
	income, err := moneyFromText(r.MonthlyIncome)
	if err != nil {
		return core.FamilyMember{}, err
	}
	created, err := timeFromText(r.CreatedAt)
	if err != nil {
		return core.FamilyMember{}, err
	}
	updated, err := timeFromText(r.UpdatedAt)
	if err != nil {
		return core.FamilyMember{}, err
	}
	return core.FamilyMember{
		ID:            r.ID,
		Name:          r.Name,
		Role:          r.Role,
		AvatarURL:     r.AvatarURL,
		MonthlyIncome: income,
		Color:         r.Color,
		Active:        r.IsActive != 0,
		CreatedAt:     created,
		UpdatedAt:     updated,
	}, nil
}

func accountToRow(a core.Account) AccountRow {
	return AccountRow{
		ID:          a.ID,
		Type:        string(a.Type),
		Name:        a.Name,
		Bank:        a.Bank,
		LastDigits:  a.LastDigits,
		HolderID:    a.HolderID,
		Balance:     moneyText(a.Balance),
		CreditLimit: moneyText(a.CreditLimit),
		CurrentBill: moneyText(a.CurrentBill),
		ClosingDay:  int64(a.ClosingDay),
		DueDay:      int64(a.DueDay),
		Color:       a.Color,
		IsActive:    boolArg(a.Active),
		CreatedAt:   timeText(a.CreatedAt),
		UpdatedAt:   timeText(a.UpdatedAt),
	}
}

func accountFromRow(r AccountRow) (core.Account, error) {
	balance, err := moneyFromText(r.Balance)
	if err != nil {
		return core.Account{}, err
	}
	limit, err := moneyFromText(r.CreditLimit)
	if err != nil {
		return core.Account{}, err
	}
	bill, err := moneyFromText(r.CurrentBill)
	if err != nil {
		return core.Account{}, err
	}
	created, err := timeFromText(r.CreatedAt)
	if err != nil {
		return core.Account{}, err
	}
	updated, err := timeFromText(r.UpdatedAt)
	if err != nil {
		return core.Account{}, err
	}
	return core.Account{
		ID:          r.ID,
		Type:        core.AccountType(r.Type),
		Name:        r.Name,
		Bank:        r.Bank,
		LastDigits:  r.LastDigits,
		HolderID:    r.HolderID,
		Balance:     balance,
		CreditLimit: limit,
		CurrentBill: bill,
		ClosingDay:  int(r.ClosingDay),
		DueDay:      int(r.DueDay),
		Color:       r.Color,
		Active:      r.IsActive != 0,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func transactionToRow(t core.Transaction) TransactionRow {
	return TransactionRow{
		ID:                t.ID,
		Type:              string(t.Type),
		Amount:            moneyText(t.Amount),
		Description:       t.Description,
		Date:              timeText(t.Date),
		CategoryID:        t.CategoryID,
		AccountID:         t.AccountID,
		MemberID:          t.MemberID,
		InstallmentNumber: int64(t.InstallmentNumber),
		TotalInstallments: int64(t.TotalInstallments),
		IsRecurring:       boolArg(t.Recurring),
		Status:            string(t.Status),
		Notes:             t.Notes,
		CreatedAt:         timeText(t.CreatedAt),
		UpdatedAt:         timeText(t.UpdatedAt),
	}
}

func transactionFromRow(r TransactionRow) (core.Transaction, error) {
	amount, err := moneyFromText(r.Amount)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := timeFromText(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	created, err := timeFromText(r.CreatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	updated, err := timeFromText(r.UpdatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:                r.ID,
		Type:              core.TransactionType(r.Type),
		Amount:            amount,
		Description:       r.Description,
		Date:              date,
		CategoryID:        r.CategoryID,
		AccountID:         r.AccountID,
		MemberID:          r.MemberID,
		InstallmentNumber: int(r.InstallmentNumber),
		TotalInstallments: int(r.TotalInstallments),
		Recurring:         r.IsRecurring != 0,
		Status:            core.TransactionStatus(r.Status),
		Notes:             r.Notes,
		CreatedAt:         created,
		UpdatedAt:         updated,
	}, nil
}

func recurringToRow(rt core.RecurringTransaction) RecurringTransactionRow {
	return RecurringTransactionRow{
		ID:          rt.ID,
		Type:        string(rt.Type),
		Amount:      moneyText(rt.Amount),
		Description: rt.Description,
		CategoryID:  rt.CategoryID,
		AccountID:   rt.AccountID,
		MemberID:    rt.MemberID,
		Frequency:   string(rt.Frequency),
		DayOfMonth:  int64(rt.DayOfMonth),
		DayOfWeek:   int64(rt.DayOfWeek),
		StartDate:   timeText(rt.StartDate),
		EndDate:     timeText(rt.EndDate),
		IsActive:    boolArg(rt.Active),
		LastRunAt:   timeText(rt.LastRunAt),
	}
}

func recurringFromRow(r RecurringTransactionRow) (core.RecurringTransaction, error) {
	amount, err := moneyFromText(r.Amount)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	start, err := timeFromText(r.StartDate)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	end, err := timeFromText(r.EndDate)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	lastRun, err := timeFromText(r.LastRunAt)
	if err != nil {
		return core.RecurringTransaction{}, err
	}
	return core.RecurringTransaction{
		ID:          r.ID,
		Type:        core.TransactionType(r.Type),
		Amount:      amount,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		AccountID:   r.AccountID,
		MemberID:    r.MemberID,
		Frequency:   core.Frequency(r.Frequency),
		DayOfMonth:  int(r.DayOfMonth),
		DayOfWeek:   int(r.DayOfWeek),
		StartDate:   start,
		EndDate:     end,
		Active:      r.IsActive != 0,
		LastRunAt:   lastRun,
	}, nil
}

func billToRow(b core.Bill) BillRow {
	return BillRow{
		ID:                b.ID,
		Description:       b.Description,
		Value:             moneyText(b.Value),
		DueDate:           timeText(b.DueDate),
		AccountID:         b.AccountID,
		IsRecurring:       boolArg(b.Recurring),
		InstallmentNumber: int64(b.InstallmentNumber),
		TotalInstallments: int64(b.TotalInstallments),
	}
}

func billFromRow(r BillRow) (core.Bill, error) {
	value, err := moneyFromText(r.Value)
	if err != nil {
		return core.Bill{}, err
	}
	due, err := timeFromText(r.DueDate)
	if err != nil {
		return core.Bill{}, err
	}
	return core.Bill{
		ID:                r.ID,
		Description:       r.Description,
		Value:             value,
		DueDate:           due,
		AccountID:         r.AccountID,
		Recurring:         r.IsRecurring != 0,
		InstallmentNumber: int(r.InstallmentNumber),
		TotalInstallments: int(r.TotalInstallments),
	}, nil
}

func goalToRow(g core.Goal) GoalRow {
	return GoalRow{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  moneyText(g.TargetAmount),
		CurrentAmount: moneyText(g.CurrentAmount),
		Deadline:      timeText(g.Deadline),
		Category:      g.Category,
		MemberID:      g.MemberID,
		IsCompleted:   boolArg(g.Completed),
		IsActive:      boolArg(g.Active),
	}
}

func goalFromRow(r GoalRow) (core.Goal, error) {
	target, err := moneyFromText(r.TargetAmount)
	if err != nil {
		return core.Goal{}, err
	}
	current, err := moneyFromText(r.CurrentAmount)
	if err != nil {
		return core.Goal{}, err
	}
	deadline, err := timeFromText(r.Deadline)
	if err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
		Category:      r.Category,
		MemberID:      r.MemberID,
		Completed:     r.IsCompleted != 0,
		Active:        r.IsActive != 0,
	}, nil
}

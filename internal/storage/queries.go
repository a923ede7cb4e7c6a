package storage

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql both *sql.DB and *sql.Tx satisfy.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const listFamilyMembers = `
SELECT id, name, role, avatar_url, monthly_income, color, is_active, created_at, updated_at
FROM family_members
WHERE (?1 = 0 OR is_active = 1)
ORDER BY created_at
`

func (q *Queries) ListFamilyMembers(ctx context.Context, onlyActive bool) ([]FamilyMemberRow, error) {
	rows, err := q.db.QueryContext(ctx, listFamilyMembers, boolArg(onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FamilyMemberRow
	for rows.Next() {
		var r FamilyMemberRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Role, &r.AvatarURL, &r.MonthlyIncome,
			&r.Color, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createFamilyMember = `
INSERT INTO family_members (id, name, role, avatar_url, monthly_income, color, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateFamilyMember(ctx context.Context, r FamilyMemberRow) error {
	_, err := q.db.ExecContext(ctx, createFamilyMember,
		r.ID, r.Name, r.Role, r.AvatarURL, r.MonthlyIncome, r.Color, r.IsActive, r.CreatedAt, r.UpdatedAt)
	return err
}

const updateFamilyMember = `
UPDATE family_members
SET name = ?, role = ?, avatar_url = ?, monthly_income = ?, color = ?, is_active = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateFamilyMember(ctx context.Context, r FamilyMemberRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateFamilyMember,
		r.Name, r.Role, r.AvatarURL, r.MonthlyIncome, r.Color, r.IsActive, r.UpdatedAt, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateFamilyMember = `
UPDATE family_members SET is_active = 0 WHERE id = ?
`

func (q *Queries) DeactivateFamilyMember(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateFamilyMember, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listCategories = `
SELECT id, name, icon, type, color, is_active
FROM categories
WHERE (?1 = 0 OR is_active = 1)
ORDER BY rowid
`

func (q *Queries) ListCategories(ctx context.Context, onlyActive bool) ([]CategoryRow, error) {
	rows, err := q.db.QueryContext(ctx, listCategories, boolArg(onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CategoryRow
	for rows.Next() {
		var r CategoryRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Icon, &r.Type, &r.Color, &r.IsActive); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createCategory = `
INSERT INTO categories (id, name, icon, type, color, is_active)
VALUES (?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateCategory(ctx context.Context, r CategoryRow) error {
	_, err := q.db.ExecContext(ctx, createCategory, r.ID, r.Name, r.Icon, r.Type, r.Color, r.IsActive)
	return err
}

const updateCategory = `
UPDATE categories SET name = ?, icon = ?, type = ?, color = ?, is_active = ? WHERE id = ?
`

func (q *Queries) UpdateCategory(ctx context.Context, r CategoryRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateCategory, r.Name, r.Icon, r.Type, r.Color, r.IsActive, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateCategory = `
UPDATE categories SET is_active = 0 WHERE id = ?
`

func (q *Queries) DeactivateCategory(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateCategory, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listAccounts = `
SELECT id, type, name, bank, last_digits, holder_id, balance, credit_limit, current_bill,
       closing_day, due_day, color, is_active, created_at, updated_at
FROM accounts
WHERE (?1 = 0 OR is_active = 1)
ORDER BY created_at
`

func (q *Queries) ListAccounts(ctx context.Context, onlyActive bool) ([]AccountRow, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts, boolArg(onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AccountRow
	for rows.Next() {
		var r AccountRow
		if err := rows.Scan(&r.ID, &r.Type, &r.Name, &r.Bank, &r.LastDigits, &r.HolderID,
			&r.Balance, &r.CreditLimit, &r.CurrentBill, &r.ClosingDay, &r.DueDay,
			&r.Color, &r.IsActive, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createAccount = `
INSERT INTO accounts (id, type, name, bank, last_digits, holder_id, balance, credit_limit,
                      current_bill, closing_day, due_day, color, is_active, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateAccount(ctx context.Context, r AccountRow) error {
	_, err := q.db.ExecContext(ctx, createAccount,
		r.ID, r.Type, r.Name, r.Bank, r.LastDigits, r.HolderID, r.Balance, r.CreditLimit,
		r.CurrentBill, r.ClosingDay, r.DueDay, r.Color, r.IsActive, r.CreatedAt, r.UpdatedAt)
	return err
}

const updateAccount = `
UPDATE accounts
SET type = ?, name = ?, bank = ?, last_digits = ?, holder_id = ?, balance = ?,
    credit_limit = ?, current_bill = ?, closing_day = ?, due_day = ?, color = ?,
    is_active = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateAccount(ctx context.Context, r AccountRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateAccount,
		r.Type, r.Name, r.Bank, r.LastDigits, r.HolderID, r.Balance, r.CreditLimit,
		r.CurrentBill, r.ClosingDay, r.DueDay, r.Color, r.IsActive, r.UpdatedAt, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateAccount = `
UPDATE accounts SET is_active = 0 WHERE id = ?
`

func (q *Queries) DeactivateAccount(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateAccount, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTransactions = `
SELECT id, type, amount, description, date, category_id, account_id, member_id,
       installment_number, total_installments, is_recurring, status, notes, created_at, updated_at
FROM transactions
ORDER BY date DESC, created_at DESC
`

func (q *Queries) ListTransactions(ctx context.Context) ([]TransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TransactionRow
	for rows.Next() {
		var r TransactionRow
		if err := scanTransaction(rows, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const getTransaction = `
SELECT id, type, amount, description, date, category_id, account_id, member_id,
       installment_number, total_installments, is_recurring, status, notes, created_at, updated_at
FROM transactions
WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id string) (TransactionRow, error) {
	var r TransactionRow
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	err := row.Scan(&r.ID, &r.Type, &r.Amount, &r.Description, &r.Date,
		&r.CategoryID, &r.AccountID, &r.MemberID, &r.InstallmentNumber, &r.TotalInstallments,
		&r.IsRecurring, &r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const createTransaction = `
INSERT INTO transactions (id, type, amount, description, date, category_id, account_id, member_id,
                          installment_number, total_installments, is_recurring, status, notes,
                          created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateTransaction(ctx context.Context, r TransactionRow) error {
	_, err := q.db.ExecContext(ctx, createTransaction,
		r.ID, r.Type, r.Amount, r.Description, r.Date, r.CategoryID, r.AccountID, r.MemberID,
		r.InstallmentNumber, r.TotalInstallments, r.IsRecurring, r.Status, r.Notes,
		r.CreatedAt, r.UpdatedAt)
	return err
}

const updateTransaction = `
UPDATE transactions
SET type = ?, amount = ?, description = ?, date = ?, category_id = ?, account_id = ?,
    member_id = ?, installment_number = ?, total_installments = ?, is_recurring = ?,
    status = ?, notes = ?, updated_at = ?
WHERE id = ?
`

func (q *Queries) UpdateTransaction(ctx context.Context, r TransactionRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		r.Type, r.Amount, r.Description, r.Date, r.CategoryID, r.AccountID, r.MemberID,
		r.InstallmentNumber, r.TotalInstallments, r.IsRecurring, r.Status, r.Notes,
		r.UpdatedAt, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTransaction = `
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listRecurringTransactions = `
SELECT id, type, amount, description, category_id, account_id, member_id, frequency,
       day_of_month, day_of_week, start_date, end_date, is_active, last_run_at
FROM recurring_transactions
WHERE (?1 = 0 OR is_active = 1)
ORDER BY start_date
`

func (q *Queries) ListRecurringTransactions(ctx context.Context, onlyActive bool) ([]RecurringTransactionRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecurringTransactions, boolArg(onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RecurringTransactionRow
	for rows.Next() {
		var r RecurringTransactionRow
		if err := rows.Scan(&r.ID, &r.Type, &r.Amount, &r.Description, &r.CategoryID,
			&r.AccountID, &r.MemberID, &r.Frequency, &r.DayOfMonth, &r.DayOfWeek,
			&r.StartDate, &r.EndDate, &r.IsActive, &r.LastRunAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createRecurringTransaction = `
INSERT INTO recurring_transactions (id, type, amount, description, category_id, account_id,
                                    member_id, frequency, day_of_month, day_of_week,
                                    start_date, end_date, is_active, last_run_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateRecurringTransaction(ctx context.Context, r RecurringTransactionRow) error {
	_, err := q.db.ExecContext(ctx, createRecurringTransaction,
		r.ID, r.Type, r.Amount, r.Description, r.CategoryID, r.AccountID, r.MemberID,
		r.Frequency, r.DayOfMonth, r.DayOfWeek, r.StartDate, r.EndDate, r.IsActive, r.LastRunAt)
	return err
}

const updateRecurringTransaction = `
UPDATE recurring_transactions
SET type = ?, amount = ?, description = ?, category_id = ?, account_id = ?, member_id = ?,
    frequency = ?, day_of_month = ?, day_of_week = ?, start_date = ?, end_date = ?,
    is_active = ?, last_run_at = ?
WHERE id = ?
`

func (q *Queries) UpdateRecurringTransaction(ctx context.Context, r RecurringTransactionRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateRecurringTransaction,
		r.Type, r.Amount, r.Description, r.CategoryID, r.AccountID, r.MemberID,
		r.Frequency, r.DayOfMonth, r.DayOfWeek, r.StartDate, r.EndDate, r.IsActive,
		r.LastRunAt, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateRecurringTransaction = `
UPDATE recurring_transactions SET is_active = 0 WHERE id = ?
`

func (q *Queries) DeactivateRecurringTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateRecurringTransaction, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listBills = `
SELECT id, description, value, due_date, account_id, is_recurring, installment_number, total_installments
FROM bills
ORDER BY due_date
`

func (q *Queries) ListBills(ctx context.Context) ([]BillRow, error) {
	rows, err := q.db.QueryContext(ctx, listBills)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BillRow
	for rows.Next() {
		var r BillRow
		if err := rows.Scan(&r.ID, &r.Description, &r.Value, &r.DueDate, &r.AccountID,
			&r.IsRecurring, &r.InstallmentNumber, &r.TotalInstallments); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createBill = `
INSERT INTO bills (id, description, value, due_date, account_id, is_recurring, installment_number, total_installments)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateBill(ctx context.Context, r BillRow) error {
	_, err := q.db.ExecContext(ctx, createBill,
		r.ID, r.Description, r.Value, r.DueDate, r.AccountID, r.IsRecurring,
		r.InstallmentNumber, r.TotalInstallments)
	return err
}

const deleteBill = `
DELETE FROM bills WHERE id = ?
`

func (q *Queries) DeleteBill(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteBill, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listGoals = `
SELECT id, title, description, target_amount, current_amount, deadline, category, member_id,
       is_completed, is_active
FROM goals
WHERE (?1 = 0 OR is_active = 1)
ORDER BY rowid
`

func (q *Queries) ListGoals(ctx context.Context, onlyActive bool) ([]GoalRow, error) {
	rows, err := q.db.QueryContext(ctx, listGoals, boolArg(onlyActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GoalRow
	for rows.Next() {
		var r GoalRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Description, &r.TargetAmount, &r.CurrentAmount,
			&r.Deadline, &r.Category, &r.MemberID, &r.IsCompleted, &r.IsActive); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createGoal = `
INSERT INTO goals (id, title, description, target_amount, current_amount, deadline, category,
                   member_id, is_completed, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateGoal(ctx context.Context, r GoalRow) error {
	_, err := q.db.ExecContext(ctx, createGoal,
		r.ID, r.Title, r.Description, r.TargetAmount, r.CurrentAmount, r.Deadline,
		r.Category, r.MemberID, r.IsCompleted, r.IsActive)
	return err
}

const updateGoal = `
UPDATE goals
SET title = ?, description = ?, target_amount = ?, current_amount = ?, deadline = ?,
    category = ?, member_id = ?, is_completed = ?, is_active = ?
WHERE id = ?
`

func (q *Queries) UpdateGoal(ctx context.Context, r GoalRow) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateGoal,
		r.Title, r.Description, r.TargetAmount, r.CurrentAmount, r.Deadline, r.Category,
		r.MemberID, r.IsCompleted, r.IsActive, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deactivateGoal = `
UPDATE goals SET is_active = 0 WHERE id = ?
`

func (q *Queries) DeactivateGoal(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deactivateGoal, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanTransaction(rows *sql.Rows, r *TransactionRow) error {
	return rows.Scan(&r.ID, &r.Type, &r.Amount, &r.Description, &r.Date,
		&r.CategoryID, &r.AccountID, &r.MemberID, &r.InstallmentNumber, &r.TotalInstallments,
		&r.IsRecurring, &r.Status, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
}

func boolArg(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

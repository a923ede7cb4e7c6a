package http

import (
	"time"

	"famfin/internal/core"
	"famfin/internal/finance"
)

// Wire representations of the domain entities. The JSON surface is
// snake_case and carries money as two-decimal numbers (core.Money's own
// marshalling); the domain structs stay free of transport tags.

type memberJSON struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Role          string     `json:"role,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	MonthlyIncome core.Money `json:"monthly_income"`
	Color         string     `json:"color,omitempty"`
	Active        bool       `json:"active"`
}

func memberToJSON(m core.FamilyMember) memberJSON {
	return memberJSON{
		ID: m.ID, Name: m.Name, Role: m.Role, AvatarURL: m.AvatarURL,
		MonthlyIncome: m.MonthlyIncome, Color: m.Color, Active: m.Active,
	}
}

func (j memberJSON) toDomain() core.FamilyMember {
	return core.FamilyMember{
		ID: j.ID, Name: j.Name, Role: j.Role, AvatarURL: j.AvatarURL,
		MonthlyIncome: j.MonthlyIncome, Color: j.Color, Active: j.Active,
	}
}

type categoryJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon,omitempty"`
	Type   string `json:"type"`
	Color  string `json:"color,omitempty"`
	Active bool   `json:"active"`
}

func categoryToJSON(c core.Category) categoryJSON {
	return categoryJSON{
		ID: c.ID, Name: c.Name, Icon: c.Icon,
		Type: string(c.Type), Color: c.Color, Active: c.Active,
	}
}

func (j categoryJSON) toDomain() core.Category {
	return core.Category{
		ID: j.ID, Name: j.Name, Icon: j.Icon,
		Type: core.CategoryType(j.Type), Color: j.Color, Active: j.Active,
	}
}

type accountJSON struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Name        string     `json:"name"`
	Bank        string     `json:"bank,omitempty"`
	LastDigits  string     `json:"last_digits,omitempty"`
	HolderID    string     `json:"holder_id,omitempty"`
	Balance     core.Money `json:"balance"`
	CreditLimit core.Money `json:"credit_limit"`
	CurrentBill core.Money `json:"current_bill"`
	ClosingDay  int        `json:"closing_day,omitempty"`
	DueDay      int        `json:"due_day,omitempty"`
	Color       string     `json:"color,omitempty"`
	Active      bool       `json:"active"`
}

func accountToJSON(a core.Account) accountJSON {
	return accountJSON{
		ID: a.ID, Type: string(a.Type), Name: a.Name, Bank: a.Bank,
		LastDigits: a.LastDigits, HolderID: a.HolderID, Balance: a.Balance,
		CreditLimit: a.CreditLimit, CurrentBill: a.CurrentBill,
		ClosingDay: a.ClosingDay, DueDay: a.DueDay, Color: a.Color, Active: a.Active,
	}
}

func (j accountJSON) toDomain() core.Account {
	return core.Account{
		ID: j.ID, Type: core.AccountType(j.Type), Name: j.Name, Bank: j.Bank,
		LastDigits: j.LastDigits, HolderID: j.HolderID, Balance: j.Balance,
		CreditLimit: j.CreditLimit, CurrentBill: j.CurrentBill,
		ClosingDay: j.ClosingDay, DueDay: j.DueDay, Color: j.Color, Active: j.Active,
	}
}

type transactionJSON struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Amount            core.Money `json:"amount"`
	Description       string     `json:"description"`
	Date              time.Time  `json:"date"`
	CategoryID        string     `json:"category_id,omitempty"`
	AccountID         string     `json:"account_id,omitempty"`
	MemberID          string     `json:"member_id,omitempty"`
	InstallmentNumber int        `json:"installment_number,omitempty"`
	TotalInstallments int        `json:"total_installments,omitempty"`
	Recurring         bool       `json:"recurring"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
}

func transactionToJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID: t.ID, Type: string(t.Type), Amount: t.Amount,
		Description: t.Description, Date: t.Date,
		CategoryID: t.CategoryID, AccountID: t.AccountID, MemberID: t.MemberID,
		InstallmentNumber: t.InstallmentNumber, TotalInstallments: t.TotalInstallments,
		Recurring: t.Recurring, Status: string(t.Status), Notes: t.Notes,
	}
}

func (j transactionJSON) toDomain() core.Transaction {
	return core.Transaction{
		ID: j.ID, Type: core.TransactionType(j.Type), Amount: j.Amount,
		Description: j.Description, Date: j.Date,
		CategoryID: j.CategoryID, AccountID: j.AccountID, MemberID: j.MemberID,
		InstallmentNumber: j.InstallmentNumber, TotalInstallments: j.TotalInstallments,
		Recurring: j.Recurring, Status: core.TransactionStatus(j.Status), Notes: j.Notes,
	}
}

type recurringJSON struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	CategoryID  string     `json:"category_id,omitempty"`
	AccountID   string     `json:"account_id,omitempty"`
	MemberID    string     `json:"member_id,omitempty"`
	Frequency   string     `json:"frequency"`
	DayOfMonth  int        `json:"day_of_month,omitempty"`
	DayOfWeek   int        `json:"day_of_week,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Active      bool       `json:"active"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
}

func recurringToJSON(r core.RecurringTransaction) recurringJSON {
	out := recurringJSON{
		ID: r.ID, Type: string(r.Type), Amount: r.Amount,
		Description: r.Description, CategoryID: r.CategoryID,
		AccountID: r.AccountID, MemberID: r.MemberID,
		Frequency: string(r.Frequency), DayOfMonth: r.DayOfMonth,
		DayOfWeek: r.DayOfWeek, StartDate: r.StartDate, Active: r.Active,
	}
	if !r.EndDate.IsZero() {
		end := r.EndDate
		out.EndDate = &end
	}
	if !r.LastRunAt.IsZero() {
		last := r.LastRunAt
		out.LastRunAt = &last
	}
	return out
}

func (j recurringJSON) toDomain() core.RecurringTransaction {
	out := core.RecurringTransaction{
		ID: j.ID, Type: core.TransactionType(j.Type), Amount: j.Amount,
		Description: j.Description, CategoryID: j.CategoryID,
		AccountID: j.AccountID, MemberID: j.MemberID,
		Frequency: core.Frequency(j.Frequency), DayOfMonth: j.DayOfMonth,
		DayOfWeek: j.DayOfWeek, StartDate: j.StartDate, Active: j.Active,
	}
	if j.EndDate != nil {
		out.EndDate = *j.EndDate
	}
	if j.LastRunAt != nil {
		out.LastRunAt = *j.LastRunAt
	}
	return out
}

type billJSON struct {
	ID                string     `json:"id"`
	Description       string     `json:"description"`
	Value             core.Money `json:"value"`
	DueDate           time.Time  `json:"due_date"`
	AccountID         string     `json:"account_id,omitempty"`
	Recurring         bool       `json:"recurring"`
	InstallmentNumber int        `json:"installment_number,omitempty"`
	TotalInstallments int        `json:"total_installments,omitempty"`
}

func billToJSON(b core.Bill) billJSON {
	return billJSON{
		ID: b.ID, Description: b.Description, Value: b.Value, DueDate: b.DueDate,
		AccountID: b.AccountID, Recurring: b.Recurring,
		InstallmentNumber: b.InstallmentNumber, TotalInstallments: b.TotalInstallments,
	}
}

func (j billJSON) toDomain() core.Bill {
	return core.Bill{
		ID: j.ID, Description: j.Description, Value: j.Value, DueDate: j.DueDate,
		AccountID: j.AccountID, Recurring: j.Recurring,
		InstallmentNumber: j.InstallmentNumber, TotalInstallments: j.TotalInstallments,
	}
}

type goalJSON struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  core.Money `json:"target_amount"`
	CurrentAmount core.Money `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Category      string     `json:"category,omitempty"`
	MemberID      string     `json:"member_id,omitempty"`
	Completed     bool       `json:"completed"`
	Active        bool       `json:"active"`
	Progress      float64    `json:"progress"`
}

func goalToJSON(g core.Goal) goalJSON {
	out := goalJSON{
		ID: g.ID, Title: g.Title, Description: g.Description,
		TargetAmount: g.TargetAmount, CurrentAmount: g.CurrentAmount,
		Category: g.Category, MemberID: g.MemberID,
		Completed: g.Completed, Active: g.Active, Progress: g.Progress(),
	}
	if !g.Deadline.IsZero() {
		d := g.Deadline
		out.Deadline = &d
	}
	return out
}

func (j goalJSON) toDomain() core.Goal {
	out := core.Goal{
		ID: j.ID, Title: j.Title, Description: j.Description,
		TargetAmount: j.TargetAmount, CurrentAmount: j.CurrentAmount,
		Category: j.Category, MemberID: j.MemberID,
		Completed: j.Completed, Active: j.Active,
	}
	if j.Deadline != nil {
		out.Deadline = *j.Deadline
	}
	return out
}

type filtersJSON struct {
	DateStart time.Time `json:"date_start"`
	DateEnd   time.Time `json:"date_end"`
	MemberID  string    `json:"member_id,omitempty"`
	Type      string    `json:"type"`
	Search    string    `json:"search,omitempty"`
}

func filtersToJSON(f finance.FiltersState) filtersJSON {
	return filtersJSON{
		DateStart: f.DateRange.Start,
		DateEnd:   f.DateRange.End,
		MemberID:  f.MemberID,
		Type:      string(f.Type),
		Search:    f.Search,
	}
}

type ledgerPageJSON struct {
	Items      []transactionJSON `json:"items"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalItems int               `json:"total_items"`
	TotalPages int               `json:"total_pages"`
}

func ledgerPageToJSON(p finance.LedgerPage) ledgerPageJSON {
	items := make([]transactionJSON, 0, len(p.Items))
	for _, t := range p.Items {
		items = append(items, transactionToJSON(t))
	}
	return ledgerPageJSON{
		Items: items, Page: p.Page, PageSize: p.PageSize,
		TotalItems: p.TotalItems, TotalPages: p.TotalPages,
	}
}

type dashboardJSON struct {
	TotalBalance       core.Money                `json:"total_balance"`
	IncomeForPeriod    core.Money                `json:"income_for_period"`
	ExpensesForPeriod  core.Money                `json:"expenses_for_period"`
	SavingsRate        float64                   `json:"savings_rate"`
	ExpensesByCategory []finance.CategorySummary `json:"expenses_by_category"`
	PendingBills       []billJSON                `json:"pending_bills"`
	Filters            filtersJSON               `json:"filters"`
}

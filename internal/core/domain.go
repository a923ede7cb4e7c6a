package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	TransactionType   string
	TransactionStatus string
	CategoryType      string
	AccountType       string
	Frequency         string
)

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"

	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"

	IncomeCategory  CategoryType = "INCOME"
	ExpenseCategory CategoryType = "EXPENSE"

	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	CreditCard AccountType = "CREDIT_CARD"

	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid type")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrInvalidDay       = errors.New("invalid day of month")
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// NewID generates an entity id.
func NewID() string {
	return uuid.NewString()
}

// ParseTransactionType normalizes a free-form type string. Comparison is
// case-insensitive; the canonical form is uppercase.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	default:
		return "", ErrInvalidType
	}
}

// ParseTransactionStatus normalizes a free-form status string. An empty
// status defaults to Completed, matching how ledger entries arrive from
// backends that predate the status column.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return Completed, nil
	case Pending:
		return Pending, nil
	case Completed:
		return Completed, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FamilyMember is a person transactions can be attributed to. Members are
// soft-deleted so historical transactions keep resolving.
type FamilyMember struct {
	ID            string
	Name          string
	Role          string
	AvatarURL     string
	MonthlyIncome Money
	Color         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m FamilyMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	return m.MonthlyIncome.Validate()
}

// Category belongs to exactly one of the income or expense namespaces and is
// never matched against transactions of the other type.
type Category struct {
	ID     string
	Name   string
	Icon   string
	Type   CategoryType
	Color  string
	Active bool
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Type != IncomeCategory && c.Type != ExpenseCategory {
		return ErrInvalidType
	}
	return nil
}

// Account unifies bank accounts and credit cards under one discriminated
// type. Checking/savings accounts carry a balance; credit cards carry a
// limit, a running current bill and closing/due days.
type Account struct {
	ID          string
	Type        AccountType
	Name        string
	Bank        string
	LastDigits  string
	HolderID    string
	Balance     Money
	CreditLimit Money
	CurrentBill Money
	ClosingDay  int
	DueDay      int
	Color       string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCreditCard reports whether the account is a credit card.
func (a Account) IsCreditCard() bool {
	return a.Type == CreditCard
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	switch a.Type {
	case Checking, Savings:
		// No balance check: an overdrawn account is a negative balance,
		// and reconciliation must be able to record it.
		return nil
	case CreditCard:
		if a.ClosingDay < 1 || a.ClosingDay > 31 || a.DueDay < 1 || a.DueDay > 31 {
			return ErrInvalidDay
		}
		return a.CreditLimit.Validate()
	default:
		return ErrInvalidType
	}
}

// Transaction is a ledger entry. Only Completed transactions count toward
// balance-affecting aggregates; Pending entries are scheduled but unsettled.
// An empty MemberID means the entry belongs to the whole family.
type Transaction struct {
	ID                string
	Type              TransactionType
	Amount            Money
	Description       string
	Date              time.Time
	CategoryID        string
	AccountID         string
	MemberID          string
	InstallmentNumber int
	TotalInstallments int
	Recurring         bool
	Status            TransactionStatus
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (t Transaction) Validate() error {
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	if t.Status != Pending && t.Status != Completed {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Date.IsZero() {
		return errors.New("zero date")
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// RecurringTransaction is a template the recurring processor materializes
// into real transactions when due.
type RecurringTransaction struct {
	ID         string
	Type       TransactionType
	Amount     Money
	Description string
	CategoryID string
	AccountID  string
	MemberID   string
	Frequency  Frequency
	DayOfMonth int
	DayOfWeek  int
	StartDate  time.Time
	EndDate    time.Time
	Active     bool
	LastRunAt  time.Time
}

func (r RecurringTransaction) Validate() error {
	if r.Type != Income && r.Type != Expense {
		return ErrInvalidType
	}
	switch r.Frequency {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return ErrInvalidFrequency
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	if r.StartDate.IsZero() {
		return errors.New("zero start date")
	}
	if !r.EndDate.IsZero() && r.EndDate.Before(r.StartDate) {
		return errors.New("end date before start date")
	}
	return r.Amount.Validate()
}

// Bill is a forward-looking payable obligation, distinct from a ledger
// entry. A bill is pending by existence: paying it removes the record and,
// for recurring or installment bills, replaces it with a successor under a
// new id. There is no paid flag to flip.
type Bill struct {
	ID                string
	Description       string
	Value             Money
	DueDate           time.Time
	AccountID         string
	Recurring         bool
	InstallmentNumber int
	TotalInstallments int
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Description) == "" {
		return ErrEmptyDescription
	}
	if b.DueDate.IsZero() {
		return errors.New("zero due date")
	}
	if !b.Value.IsPositive() {
		return ErrInvalidAmount
	}
	if b.TotalInstallments > 0 && (b.InstallmentNumber < 1 || b.InstallmentNumber > b.TotalInstallments) {
		return errors.New("installment number out of range")
	}
	return nil
}

// Goal is a savings target.
type Goal struct {
	ID            string
	Title         string
	Description   string
	TargetAmount  Money
	CurrentAmount Money
	Deadline      time.Time
	Category      string
	MemberID      string
	Completed     bool
	Active        bool
}

// Progress returns completion as a percentage clamped to [0, 100]. A zero
// target yields 0, not a division error.
func (g Goal) Progress() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	p := g.CurrentAmount.PercentOf(g.TargetAmount)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyName
	}
	if err := g.TargetAmount.Validate(); err != nil {
		return err
	}
	return g.CurrentAmount.Validate()
}

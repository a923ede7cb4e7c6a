package storage

// Row types mirror the SQLite schema one to one. Money columns are decimal
// strings, date columns RFC 3339 strings with the empty string standing in
// for a missing value, and flags are 0/1 integers. Conversion to core types
// happens in the repository layer.

type FamilyMemberRow struct {
	ID            string
	Name          string
	Role          string
	AvatarURL     string
	MonthlyIncome string
	Color         string
	IsActive      int64
	CreatedAt     string
	UpdatedAt     string
}

type CategoryRow struct {
	ID       string
	Name     string
	Icon     string
	Type     string
	Color    string
	IsActive int64
}

type AccountRow struct {
	ID          string
	Type        string
	Name        string
	Bank        string
	LastDigits  string
	HolderID    string
	Balance     string
	CreditLimit string
	CurrentBill string
	ClosingDay  int64
	DueDay      int64
	Color       string
	IsActive    int64
	CreatedAt   string
	UpdatedAt   string
}

type TransactionRow struct {
	ID                string
	Type              string
	Amount            string
	Description       string
	Date              string
	CategoryID        string
	AccountID         string
	MemberID          string
	InstallmentNumber int64
	TotalInstallments int64
	IsRecurring       int64
	Status            string
	Notes             string
	CreatedAt         string
	UpdatedAt         string
}

type RecurringTransactionRow struct {
	ID          string
	Type        string
	Amount      string
	Description string
	CategoryID  string
	AccountID   string
	MemberID    string
	Frequency   string
	DayOfMonth  int64
	DayOfWeek   int64
	StartDate   string
	EndDate     string
	IsActive    int64
	LastRunAt   string
}

type BillRow struct {
	ID                string
	Description       string
	Value             string
	DueDate           string
	AccountID         string
	IsRecurring       int64
	InstallmentNumber int64
	TotalInstallments int64
}

type GoalRow struct {
	ID            string
	Title         string
	Description   string
	TargetAmount  string
	CurrentAmount string
	Deadline      string
	Category      string
	MemberID      string
	IsCompleted   int64
	IsActive      int64
}

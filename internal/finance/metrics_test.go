package finance_test

import (
	"context"
	"testing"
	"time"

	"famfin/internal/core"
	"famfin/internal/finance"
	"famfin/internal/memory"
)

func mustAddTransaction(t *testing.T, store *finance.Store, tx core.Transaction) core.Transaction {
	t.Helper()
	out, err := store.AddTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("AddTransaction(%q): %v", tx.Description, err)
	}
	return out
}

func seededStore(t *testing.T) *finance.Store {
	t.Helper()
	repo := memory.NewWithDefaultCategories()
	store := finance.NewStore(repo, finance.WithClock(func() time.Time { return testClock }))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store
}

func TestMonthlyDashboard(t *testing.T) {
	// One salary of 1000 and one food expense of 300 inside January: the
	// dashboard shows income 1000, expenses 300, savings rate 70 and a food
	// slice worth 30% of income.
	store := seededStore(t)
	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(1000, 0),
		Description: "salary", Date: jan, CategoryID: "salary",
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(300, 0),
		Description: "groceries run", Date: jan, CategoryID: "food",
	})

	if got := store.IncomeForPeriod(); got.String() != "1000.00" {
		t.Errorf("IncomeForPeriod = %s, want 1000.00", got)
	}
	if got := store.ExpensesForPeriod(); got.String() != "300.00" {
		t.Errorf("ExpensesForPeriod = %s, want 300.00", got)
	}
	if got := store.SavingsRate(); got != 70 {
		t.Errorf("SavingsRate = %v, want 70", got)
	}

	rows := store.ExpensesByCategory()
	if len(rows) != 1 {
		t.Fatalf("ExpensesByCategory returned %d rows, want 1", len(rows))
	}
	if rows[0].Name != "Food" {
		t.Errorf("row name = %q, want Food", rows[0].Name)
	}
	if rows[0].Total.String() != "300.00" {
		t.Errorf("row total = %s, want 300.00", rows[0].Total)
	}
	if rows[0].Count != 1 {
		t.Errorf("row count = %d, want 1", rows[0].Count)
	}
	if rows[0].Percentage != 30 {
		t.Errorf("row percentage = %v, want 30 (of income, not of expenses)", rows[0].Percentage)
	}
}

func TestPeriodSums(t *testing.T) {
	store := seededStore(t)
	jan := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC)

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(500, 0), Description: "inside", Date: jan,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(999, 0), Description: "outside", Date: feb,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(100, 0), Description: "unsettled",
		Date: jan, Status: core.Pending,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(200, 0), Description: "anas bonus",
		Date: jan, MemberID: "m1",
	})

	t.Run("range and status", func(t *testing.T) {
		// February and Pending entries stay out of January's totals.
		if got := store.IncomeForPeriod(); got.String() != "700.00" {
			t.Errorf("IncomeForPeriod = %s, want 700.00", got)
		}
	})

	t.Run("member filter", func(t *testing.T) {
		store.SetSelectedMember("m1")
		defer store.SetSelectedMember("")
		// Whole-family entries (empty member id) are excluded once a member
		// is selected.
		if got := store.IncomeForPeriod(); got.String() != "200.00" {
			t.Errorf("IncomeForPeriod with member = %s, want 200.00", got)
		}
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		lastInstant := time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)
		mustAddTransaction(t, store, core.Transaction{
			Type: core.Income, Amount: core.NewMoney(1, 0), Description: "midnight", Date: lastInstant,
		})
		if got := store.IncomeForPeriod(); got.String() != "701.00" {
			t.Errorf("IncomeForPeriod = %s, want 701.00 (end of range is inclusive)", got)
		}
	})
}

func TestExpensesByCategory(t *testing.T) {
	store := seededStore(t)
	jan := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(1000, 0), Description: "salary", Date: jan,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(120, 0), Description: "lunch", Date: jan, CategoryID: "food",
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(80, 0), Description: "dinner", Date: jan, CategoryID: "food",
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(400, 0), Description: "rent", Date: jan, CategoryID: "housing",
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(999, 0), Description: "mystery", Date: jan, CategoryID: "deleted-cat",
	})

	rows := store.ExpensesByCategory()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (dangling category excluded)", len(rows))
	}
	// Descending by total: housing 400 before food 200.
	if rows[0].CategoryID != "housing" || rows[0].Total.String() != "400.00" {
		t.Errorf("rows[0] = %s/%s, want housing/400.00", rows[0].CategoryID, rows[0].Total)
	}
	if rows[1].CategoryID != "food" || rows[1].Total.String() != "200.00" || rows[1].Count != 2 {
		t.Errorf("rows[1] = %s/%s count=%d, want food/200.00 count=2", rows[1].CategoryID, rows[1].Total, rows[1].Count)
	}
	if rows[0].Percentage != 40 {
		t.Errorf("housing percentage = %v, want 40", rows[0].Percentage)
	}
}

func TestPercentagesWithZeroIncome(t *testing.T) {
	store := seededStore(t)
	jan := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(50, 0), Description: "lunch", Date: jan, CategoryID: "food",
	})

	if got := store.SavingsRate(); got != 0 {
		t.Errorf("SavingsRate with zero income = %v, want 0", got)
	}
	rows := store.ExpensesByCategory()
	if len(rows) != 1 || rows[0].Percentage != 0 {
		t.Errorf("category percentage with zero income = %+v, want single row at 0", rows)
	}
	if got := store.CategoryPercentage(core.NewMoney(50, 0)); got != 0 {
		t.Errorf("CategoryPercentage with zero income = %v, want 0", got)
	}
}

func TestSavingsRateNegative(t *testing.T) {
	store := seededStore(t)
	jan := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(100, 0), Description: "salary", Date: jan,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(150, 0), Description: "overspend", Date: jan,
	})

	if got := store.SavingsRate(); got != -50 {
		t.Errorf("SavingsRate = %v, want -50 (overspending goes negative)", got)
	}
}

func TestTotalBalance(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	t.Run("empty portfolio", func(t *testing.T) {
		if got := store.TotalBalance(); !got.IsZero() {
			t.Errorf("TotalBalance of empty store = %s, want 0", got)
		}
	})

	if _, err := store.AddBankAccount(ctx, core.Account{Name: "Checking", Balance: core.NewMoney(1500, 0)}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddBankAccount(ctx, core.Account{Name: "Savings", Type: core.Savings, Balance: core.NewMoney(3000, 50)}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddCreditCard(ctx, core.Account{
		Name: "Visa", ClosingDay: 5, DueDay: 12,
		CreditLimit: core.NewMoney(5000, 0), CurrentBill: core.NewMoney(500, 50),
	}); err != nil {
		t.Fatal(err)
	}

	// 1500 + 3000.50 - 500.50
	if got := store.TotalBalance(); got.String() != "4000.00" {
		t.Errorf("TotalBalance = %s, want 4000.00", got)
	}

	// The figure ignores the period filter entirely.
	store.SetDateRange(core.DateRange{
		Start: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC),
	})
	if got := store.TotalBalance(); got.String() != "4000.00" {
		t.Errorf("TotalBalance after range change = %s, want 4000.00", got)
	}
}

func TestNameResolution(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)

	m, err := store.AddMember(ctx, core.FamilyMember{Name: "Ana"})
	if err != nil {
		t.Fatal(err)
	}
	a, err := store.AddBankAccount(ctx, core.Account{Name: "Main"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"member by id", store.MemberName(m.ID), "Ana"},
		{"empty member is family", store.MemberName(""), finance.FallbackMemberName},
		{"dangling member is family", store.MemberName("gone"), finance.FallbackMemberName},
		{"category by id", store.CategoryName("food"), "Food"},
		{"dangling category", store.CategoryName("gone"), finance.FallbackUnknown},
		{"account by id", store.AccountName(a.ID), "Main"},
		{"dangling account", store.AccountName("gone"), finance.FallbackUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestAccountReconciliation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	jan := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)

	bank, err := store.AddBankAccount(ctx, core.Account{Name: "Checking", Balance: core.NewMoney(1000, 0)})
	if err != nil {
		t.Fatal(err)
	}
	card, err := store.AddCreditCard(ctx, core.Account{
		Name: "Visa", ClosingDay: 5, DueDay: 12, CreditLimit: core.NewMoney(5000, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(200, 0), Description: "rent",
		Date: jan, AccountID: bank.ID,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(50, 0), Description: "refund",
		Date: jan, AccountID: bank.ID,
	})
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(75, 25), Description: "online order",
		Date: jan, AccountID: card.ID,
	})
	// Pending entries never touch balances.
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(999, 0), Description: "scheduled",
		Date: jan, AccountID: bank.ID, Status: core.Pending,
	})

	accounts := store.Accounts()
	for _, a := range accounts {
		switch a.ID {
		case bank.ID:
			if a.Balance.String() != "850.00" {
				t.Errorf("bank balance = %s, want 850.00", a.Balance)
			}
		case card.ID:
			if a.CurrentBill.String() != "75.25" {
				t.Errorf("card bill = %s, want 75.25", a.CurrentBill)
			}
		}
	}

	// Paying the card down registers as income against it.
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(75, 25), Description: "bill payment",
		Date: jan, AccountID: card.ID,
	})
	for _, a := range store.CreditCards() {
		if a.ID == card.ID && !a.CurrentBill.IsZero() {
			t.Errorf("card bill after payment = %s, want 0", a.CurrentBill)
		}
	}

	// An expense beyond the balance overdraws the account; the adjustment
	// must commit, not be skipped.
	mustAddTransaction(t, store, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(1200, 0), Description: "car repair",
		Date: jan, AccountID: bank.ID,
	})
	for _, a := range store.BankAccounts() {
		if a.ID == bank.ID && a.Balance.String() != "-350.00" {
			t.Errorf("overdrawn balance = %s, want -350.00", a.Balance)
		}
	}
}

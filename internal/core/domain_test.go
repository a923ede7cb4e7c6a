package core

import (
	"testing"
	"time"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"INCOME", Income, true},
		{"income", Income, true},
		{" Expense ", Expense, true},
		{"EXPENSE", Expense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseTransactionType(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseTransactionType(%q) expected error", tc.in)
		}
	}
}

func TestParseTransactionStatusDefaultsToCompleted(t *testing.T) {
	got, err := ParseTransactionStatus("")
	if err != nil || got != Completed {
		t.Fatalf("empty status = %q, %v; want COMPLETED", got, err)
	}
	if got, _ := ParseTransactionStatus("pending"); got != Pending {
		t.Fatalf("lowercase pending = %q, want PENDING", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:        Expense,
		Amount:      NewMoney(30, 0),
		Description: "groceries",
		Date:        time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:      Completed,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Transaction)
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "TRANSFER" }},
		{"bad status", func(tx *Transaction) { tx.Status = "DONE" }},
		{"empty description", func(tx *Transaction) { tx.Description = "  " }},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }},
		{"zero amount", func(tx *Transaction) { tx.Amount = Zero }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mut(&tx)
			if err := tx.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestAccountValidate(t *testing.T) {
	bank := Account{Type: Checking, Name: "Main", Balance: NewMoney(100, 0)}
	if err := bank.Validate(); err != nil {
		t.Fatalf("valid bank account rejected: %v", err)
	}
	overdrawn := Account{Type: Checking, Name: "Main", Balance: NewMoney(-250, 0)}
	if err := overdrawn.Validate(); err != nil {
		t.Fatalf("overdrawn bank account rejected: %v", err)
	}
	card := Account{Type: CreditCard, Name: "Card", CreditLimit: NewMoney(5000, 0), ClosingDay: 25, DueDay: 5}
	if err := card.Validate(); err != nil {
		t.Fatalf("valid credit card rejected: %v", err)
	}
	card.DueDay = 32
	if err := card.Validate(); err == nil {
		t.Fatal("due day 32 must be rejected")
	}
	card.DueDay = 0
	if err := card.Validate(); err == nil {
		t.Fatal("due day 0 must be rejected")
	}
}

func TestBillValidate(t *testing.T) {
	good := Bill{
		Description:       "electricity",
		Value:             NewMoney(154, 0),
		DueDate:           time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC),
		InstallmentNumber: 2,
		TotalInstallments: 3,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid bill rejected: %v", err)
	}
	bad := good
	bad.InstallmentNumber = 4
	if err := bad.Validate(); err == nil {
		t.Fatal("installment past total must be rejected")
	}
}

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		name    string
		target  Money
		current Money
		want    float64
	}{
		{"halfway", NewMoney(1000, 0), NewMoney(500, 0), 50},
		{"zero target yields zero", Zero, Zero, 0},
		{"zero target nonzero current", Zero, NewMoney(10, 0), 0},
		{"overshoot clamps to 100", NewMoney(100, 0), NewMoney(150, 0), 100},
		{"complete", NewMoney(200, 0), NewMoney(200, 0), 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Goal{Title: "g", TargetAmount: tc.target, CurrentAmount: tc.current}
			if got := g.Progress(); got != tc.want {
				t.Fatalf("Progress() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Fatalf("ids must be non-empty and unique: %q %q", a, b)
	}
}

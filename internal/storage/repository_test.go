package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"famfin/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "famfin.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestMigrationsSeedCategories(t *testing.T) {
	repo := newTestRepo(t)

	cats, err := repo.ListCategories(context.Background(), true)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) == 0 {
		t.Fatal("fresh database has no categories, want the seeded defaults")
	}
	byID := map[string]core.Category{}
	for _, c := range cats {
		byID[c.ID] = c
	}
	if food, ok := byID["food"]; !ok || food.Name != "Food" || food.Type != core.ExpenseCategory {
		t.Errorf("seeded food category = %+v", byID["food"])
	}
	if salary, ok := byID["salary"]; !ok || salary.Type != core.IncomeCategory {
		t.Errorf("seeded salary category = %+v", byID["salary"])
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	in := core.Transaction{
		ID:                "t1",
		Type:              core.Expense,
		Amount:            core.NewMoney(123, 45),
		Description:       "groceries",
		Date:              time.Date(2025, time.January, 10, 15, 30, 0, 0, time.UTC),
		CategoryID:        "food",
		AccountID:         "a1",
		MemberID:          "m1",
		InstallmentNumber: 1,
		TotalInstallments: 1,
		Status:            core.Completed,
		Notes:             "weekly run",
		CreatedAt:         time.Date(2025, time.January, 10, 15, 30, 1, 0, time.UTC),
		UpdatedAt:         time.Date(2025, time.January, 10, 15, 30, 1, 0, time.UTC),
	}
	if err := repo.InsertTransaction(ctx, in); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}

	got, err := repo.GetTransaction(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.Amount.String() != "123.45" {
		t.Errorf("amount = %s, want 123.45 exactly", got.Amount)
	}
	if !got.Date.Equal(in.Date) {
		t.Errorf("date = %v, want %v", got.Date, in.Date)
	}
	if got.Description != in.Description || got.CategoryID != in.CategoryID ||
		got.Status != in.Status || got.Notes != in.Notes {
		t.Errorf("round trip mismatch: %+v", got)
	}

	got.Description = "groceries edited"
	if err := repo.UpdateTransaction(ctx, got); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	updated, err := repo.GetTransaction(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Description != "groceries edited" {
		t.Errorf("description after update = %q", updated.Description)
	}

	if err := repo.DeleteTransaction(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := repo.GetTransaction(ctx, "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("GetTransaction after delete = %v, want ErrNotFound", err)
	}
}

func TestNotFoundMapping(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	cases := []struct {
		name string
		call func() error
	}{
		{"update member", func() error { return repo.UpdateMember(ctx, core.FamilyMember{ID: "x", Name: "n"}) }},
		{"soft delete member", func() error { return repo.SoftDeleteMember(ctx, "x") }},
		{"update account", func() error { return repo.UpdateAccount(ctx, core.Account{ID: "x", Type: core.Checking, Name: "n"}) }},
		{"update transaction", func() error {
			return repo.UpdateTransaction(ctx, core.Transaction{ID: "x", Type: core.Income, Status: core.Completed})
		}},
		{"delete transaction", func() error { return repo.DeleteTransaction(ctx, "x") }},
		{"delete bill", func() error { return repo.DeleteBill(ctx, "x") }},
		{"soft delete goal", func() error { return repo.SoftDeleteGoal(ctx, "x") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, core.ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestSoftDeleteFiltering(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	m := core.FamilyMember{ID: "m1", Name: "Ana", Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := repo.InsertMember(ctx, m); err != nil {
		t.Fatal(err)
	}
	if err := repo.SoftDeleteMember(ctx, "m1"); err != nil {
		t.Fatal(err)
	}

	active, err := repo.ListMembers(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("active list has %d members, want 0", len(active))
	}

	all, err := repo.ListMembers(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Active {
		t.Errorf("full list = %+v, want one inactive member", all)
	}
}

func TestAccountRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	card := core.Account{
		ID:          "c1",
		Type:        core.CreditCard,
		Name:        "Visa",
		Bank:        "Acme Bank",
		LastDigits:  "4242",
		CreditLimit: core.NewMoney(5000, 0),
		CurrentBill: core.NewMoney(120, 99),
		ClosingDay:  5,
		DueDay:      12,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := repo.InsertAccount(ctx, card); err != nil {
		t.Fatal(err)
	}

	accounts, err := repo.ListAccounts(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}
	got := accounts[0]
	if !got.IsCreditCard() || got.CurrentBill.String() != "120.99" || got.ClosingDay != 5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestBillRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	b := core.Bill{
		ID:          "b1",
		Description: "rent",
		Value:       core.NewMoney(900, 0),
		DueDate:     time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		Recurring:   true,
	}
	if err := repo.InsertBill(ctx, b); err != nil {
		t.Fatal(err)
	}
	bills, err := repo.ListBills(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 1 || !bills[0].Recurring || bills[0].Value.String() != "900.00" {
		t.Errorf("round trip mismatch: %+v", bills)
	}
	if err := repo.DeleteBill(ctx, "b1"); err != nil {
		t.Fatal(err)
	}
	bills, err = repo.ListBills(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 0 {
		t.Errorf("bill survived delete: %+v", bills)
	}
}

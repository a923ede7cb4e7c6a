package services

import (
	"context"
	"testing"
	"time"

	"famfin/internal/core"
	"famfin/internal/finance"
	"famfin/internal/memory"
)

func newProcessorFixture(t *testing.T, now time.Time) (*RecurringProcessor, *finance.Store) {
	t.Helper()
	store := finance.NewStore(memory.New(), finance.WithClock(func() time.Time { return now }))
	svc := NewTransactionService(store, nil)
	return NewRecurringProcessor(store, svc), store
}

func addTemplate(t *testing.T, store *finance.Store, tmpl core.RecurringTransaction) core.RecurringTransaction {
	t.Helper()
	out, err := store.AddRecurringTransaction(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("AddRecurringTransaction: %v", err)
	}
	return out
}

func TestProcessDue_MaterializesTemplate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	proc, store := newProcessorFixture(t, now)

	tmpl := addTemplate(t, store, core.RecurringTransaction{
		Type:        core.Expense,
		Amount:      core.NewMoney(15, 90),
		Description: "streaming",
		CategoryID:  "subscriptions",
		Frequency:   core.Monthly,
		StartDate:   time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	})

	n, err := proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if n != 1 {
		t.Fatalf("processed %d templates, want 1", n)
	}

	txs := store.Transactions()
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	tx := txs[0]
	if tx.Description != "streaming" || tx.Amount.String() != "15.90" || !tx.Recurring {
		t.Errorf("materialized entry = %+v", tx)
	}
	if tx.Status != core.Completed {
		t.Errorf("status = %s, want Completed", tx.Status)
	}

	// The template's last run is stamped so a second sweep is a no-op.
	for _, rt := range store.RecurringTransactions() {
		if rt.ID == tmpl.ID && !rt.LastRunAt.Equal(now) {
			t.Errorf("last run = %v, want %v", rt.LastRunAt, now)
		}
	}
	n, err = proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("second sweep processed %d templates, want 0", n)
	}
	if got := len(store.Transactions()); got != 1 {
		t.Errorf("second sweep duplicated entries: %d", got)
	}
}

func TestProcessDue_SkipsOutOfWindowTemplates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	proc, store := newProcessorFixture(t, now)

	addTemplate(t, store, core.RecurringTransaction{
		Type: core.Expense, Amount: core.NewMoney(10, 0), Description: "future",
		Frequency: core.Daily,
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	})
	addTemplate(t, store, core.RecurringTransaction{
		Type: core.Expense, Amount: core.NewMoney(10, 0), Description: "expired",
		Frequency: core.Daily,
		StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	})

	n, err := proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("processed %d templates, want 0 (one not started, one ended)", n)
	}
	if got := len(store.Transactions()); got != 0 {
		t.Errorf("created %d transactions, want 0", got)
	}
}

func TestProcessDue_DailySweepAcrossDays(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, time.January, 15, 9, 0, 0, 0, time.UTC)
	proc, store := newProcessorFixture(t, day1)

	addTemplate(t, store, core.RecurringTransaction{
		Type: core.Income, Amount: core.NewMoney(5, 0), Description: "allowance",
		Frequency: core.Daily,
		StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	if n, _ := proc.ProcessDue(ctx, day1); n != 1 {
		t.Fatalf("day 1 processed %d, want 1", n)
	}
	// Same day again: nothing.
	if n, _ := proc.ProcessDue(ctx, day1.Add(6*time.Hour)); n != 0 {
		t.Fatalf("same-day sweep processed templates")
	}
	// Next day: due again.
	if n, _ := proc.ProcessDue(ctx, day1.AddDate(0, 0, 1)); n != 1 {
		t.Fatalf("day 2 sweep did not process")
	}
	if got := len(store.Transactions()); got != 2 {
		t.Errorf("got %d transactions after two days, want 2", got)
	}
}

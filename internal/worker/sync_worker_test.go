package worker

import (
	"context"
	"testing"
	"time"

	"famfin/internal/amqp"
	"famfin/internal/core"
	"famfin/internal/memory"
	sheetsmem "famfin/internal/sheets/memory"
)

func newWorkerFixture(t *testing.T) (*SyncWorker, *memory.Repository, *sheetsmem.Store) {
	t.Helper()
	repo := memory.NewWithDefaultCategories()
	target := sheetsmem.New()
	return NewSyncWorker(repo, target, target, 2), repo, target
}

func insertTransaction(t *testing.T, repo *memory.Repository, tx core.Transaction) core.Transaction {
	t.Helper()
	if tx.ID == "" {
		tx.ID = core.NewID()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	}
	if err := repo.InsertTransaction(context.Background(), tx); err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	return tx
}

func TestHandleSyncMessage_UpsertExportsRow(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t)

	tx := insertTransaction(t, repo, core.Transaction{
		Type:        core.Expense,
		Amount:      core.NewMoney(42, 50),
		Description: "groceries",
		CategoryID:  "food",
		Status:      core.Completed,
	})

	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(tx.ID)); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}

	rows := target.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.TransactionID != tx.ID || row.Amount != "42.50" || row.Date != "2025-01-15" {
		t.Errorf("row = %+v", row)
	}
	if row.Category != "Food" {
		t.Errorf("category = %q, want resolved name Food", row.Category)
	}
	if row.Member != "Family" {
		t.Errorf("member = %q, want Family fallback", row.Member)
	}
	if row.Account != "Unknown" {
		t.Errorf("account = %q, want Unknown fallback", row.Account)
	}
}

func TestHandleSyncMessage_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t)

	tx := insertTransaction(t, repo, core.Transaction{
		Type: core.Income, Amount: core.NewMoney(100, 0),
		Description: "salary", CategoryID: "salary", Status: core.Completed,
	})

	for i := 0; i < 3; i++ {
		if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(tx.ID)); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}
	if got := len(target.Rows()); got != 1 {
		t.Errorf("got %d rows after repeated upserts, want 1", got)
	}
}

func TestHandleSyncMessage_PendingEntryRemovesRow(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t)

	tx := insertTransaction(t, repo, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(10, 0),
		Description: "reserved", CategoryID: "food", Status: core.Completed,
	})
	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(tx.ID)); err != nil {
		t.Fatal(err)
	}
	if len(target.Rows()) != 1 {
		t.Fatal("expected one exported row")
	}

	// Entry moves back to pending: the sheet only carries settled entries.
	tx.Status = core.Pending
	if err := repo.UpdateTransaction(ctx, tx); err != nil {
		t.Fatal(err)
	}
	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(tx.ID)); err != nil {
		t.Fatal(err)
	}
	if got := len(target.Rows()); got != 0 {
		t.Errorf("got %d rows, want 0 after entry went pending", got)
	}
}

func TestHandleSyncMessage_DeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t)

	tx := insertTransaction(t, repo, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(5, 0),
		Description: "snack", CategoryID: "food", Status: core.Completed,
	})
	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(tx.ID)); err != nil {
		t.Fatal(err)
	}

	if err := w.HandleSyncMessage(ctx, amqp.NewDeleteMessage(tx.ID)); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if got := len(target.Rows()); got != 0 {
		t.Errorf("got %d rows after delete, want 0", got)
	}

	// Upsert for an id the repository no longer has must not error or requeue.
	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage("gone")); err != nil {
		t.Errorf("upsert for missing transaction returned %v", err)
	}
}

func TestStartupSyncCheck_BackfillsMissingRows(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t)

	exported := insertTransaction(t, repo, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(1, 0),
		Description: "already there", CategoryID: "food", Status: core.Completed,
	})
	insertTransaction(t, repo, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(2, 0),
		Description: "missing", CategoryID: "food", Status: core.Completed,
	})
	insertTransaction(t, repo, core.Transaction{
		Type: core.Expense, Amount: core.NewMoney(3, 0),
		Description: "not settled", CategoryID: "food", Status: core.Pending,
	})
	if err := w.HandleSyncMessage(ctx, amqp.NewUpsertMessage(exported.ID)); err != nil {
		t.Fatal(err)
	}

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("StartupSyncCheck: %v", err)
	}
	if got := len(target.Rows()); got != 2 {
		t.Errorf("got %d rows after backfill, want 2 (pending excluded, no duplicates)", got)
	}
}

func TestProcessMissing_RespectsBatchSize(t *testing.T) {
	ctx := context.Background()
	w, repo, target := newWorkerFixture(t) // batch size 2

	for i := 0; i < 5; i++ {
		insertTransaction(t, repo, core.Transaction{
			Type: core.Expense, Amount: core.NewMoney(int64(i+1), 0),
			Description: "bulk", CategoryID: "food", Status: core.Completed,
		})
	}

	if err := w.ProcessMissing(ctx); err != nil {
		t.Fatalf("ProcessMissing: %v", err)
	}
	if got := len(target.Rows()); got != 2 {
		t.Errorf("first sweep exported %d rows, want batch size 2", got)
	}

	// Subsequent sweeps drain the rest.
	for i := 0; i < 2; i++ {
		if err := w.ProcessMissing(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(target.Rows()); got != 5 {
		t.Errorf("got %d rows after draining, want 5", got)
	}
}

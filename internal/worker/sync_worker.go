// Package worker consumes transaction sync messages and mirrors settled
// ledger entries into the family's shared spreadsheet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"famfin/internal/amqp"
	"famfin/internal/core"
	"famfin/internal/finance"
	"famfin/internal/sheets"
)

// LedgerIndex reports which transaction ids are already present in the
// export target. Used by the backfill sweeps.
type LedgerIndex interface {
	ExportedIDs(ctx context.Context) ([]string, error)
}

// SyncWorker mirrors completed transactions from the repository into a
// ledger export target. AMQP messages drive the steady state; the startup
// and periodic sweeps catch entries whose messages were lost.
type SyncWorker struct {
	repo      finance.Repository
	writer    sheets.LedgerWriter
	deleter   sheets.LedgerDeleter
	batchSize int

	names nameCache
}

func NewSyncWorker(repo finance.Repository, writer sheets.LedgerWriter, deleter sheets.LedgerDeleter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &SyncWorker{
		repo:      repo,
		writer:    writer,
		deleter:   deleter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"transaction_id", msg.TransactionID,
		"action", msg.Action)

	switch msg.Action {
	case amqp.ActionDelete:
		return w.removeRow(ctx, msg.TransactionID)
	case amqp.ActionUpsert:
		return w.exportTransaction(ctx, msg.TransactionID)
	default:
		// Validate() already rejects unknown actions; a malformed message
		// must not be requeued.
		slog.WarnContext(ctx, "Ignoring message with unknown action", "action", msg.Action)
		return nil
	}
}

func (w *SyncWorker) exportTransaction(ctx context.Context, id string) error {
	t, err := w.repo.GetTransaction(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		// Deleted between publish and consume. Make sure no stale row stays.
		slog.InfoContext(ctx, "Transaction gone before export, removing row instead", "transaction_id", id)
		return w.removeRow(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("get transaction: %w", err)
	}

	// Only settled entries go to the shared sheet. A pending update removes
	// any row exported while the entry was completed.
	if t.Status != core.Completed {
		return w.removeRow(ctx, id)
	}

	// Upsert is remove-then-append: the sheet has no update-in-place key.
	if err := w.removeRow(ctx, id); err != nil {
		return err
	}

	row, err := w.rowFor(ctx, t)
	if err != nil {
		return err
	}
	ref, err := w.writer.Append(ctx, row)
	if err != nil {
		return fmt.Errorf("append to ledger sheet: %w", err)
	}

	slog.InfoContext(ctx, "Exported transaction to ledger sheet",
		"transaction_id", id,
		"sheets_ref", ref,
		"description", t.Description,
		"amount", t.Amount.String())
	return nil
}

func (w *SyncWorker) removeRow(ctx context.Context, id string) error {
	if w.deleter == nil {
		slog.WarnContext(ctx, "No ledger deleter configured, skipping row removal", "transaction_id", id)
		return nil
	}
	if err := w.deleter.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ledger row: %w", err)
	}
	return nil
}

// StartupSyncCheck exports completed transactions missing from the sheet.
// Runs once at worker startup to recover from downtime; processes at most
// five regular batches.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	n, err := w.backfill(ctx, w.batchSize*5)
	if err != nil {
		return err
	}
	if n == 0 {
		slog.InfoContext(ctx, "No missing ledger rows found on startup")
	} else {
		slog.InfoContext(ctx, "Startup backfill complete", "exported", n)
	}
	return nil
}

// ProcessMissing is the periodic safety net for lost messages. It exports
// up to one batch of completed transactions absent from the sheet.
func (w *SyncWorker) ProcessMissing(ctx context.Context) error {
	n, err := w.backfill(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.InfoContext(ctx, "Periodic backfill exported missing rows", "exported", n)
	}
	return nil
}

func (w *SyncWorker) backfill(ctx context.Context, limit int) (int, error) {
	index, ok := w.writer.(LedgerIndex)
	if !ok {
		slog.WarnContext(ctx, "Export target cannot list exported ids, skipping backfill")
		return 0, nil
	}

	ids, err := index.ExportedIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list exported ids: %w", err)
	}
	exported := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		exported[id] = struct{}{}
	}

	all, err := w.repo.ListTransactions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list transactions: %w", err)
	}

	count := 0
	for _, t := range all {
		if count >= limit {
			break
		}
		if t.Status != core.Completed {
			continue
		}
		if _, done := exported[t.ID]; done {
			continue
		}
		row, err := w.rowFor(ctx, t)
		if err != nil {
			return count, err
		}
		if _, err := w.writer.Append(ctx, row); err != nil {
			slog.ErrorContext(ctx, "Backfill append failed", "transaction_id", t.ID, "error", err)
			continue
		}
		count++
	}
	return count, nil
}

func (w *SyncWorker) rowFor(ctx context.Context, t core.Transaction) (sheets.Row, error) {
	if err := w.names.refreshIfStale(ctx, w.repo); err != nil {
		return sheets.Row{}, err
	}
	return sheets.Row{
		TransactionID: t.ID,
		Date:          t.Date.Format("2006-01-02"),
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        t.Amount.String(),
		Category:      w.names.category(t.CategoryID),
		Member:        w.names.member(t.MemberID),
		Account:       w.names.account(t.AccountID),
	}, nil
}

// nameCache resolves entity ids to display names without hitting the
// repository on every message. Dangling references fall back the same way
// the store's read paths do.
type nameCache struct {
	mu       sync.Mutex
	loadedAt time.Time

	members    map[string]string
	categories map[string]string
	accounts   map[string]string
}

const nameCacheMaxAge = 5 * time.Minute

func (c *nameCache) refreshIfStale(ctx context.Context, repo finance.Repository) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loadedAt.IsZero() && time.Since(c.loadedAt) < nameCacheMaxAge {
		return nil
	}

	members, err := repo.ListMembers(ctx, false)
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}
	categories, err := repo.ListCategories(ctx, false)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	accounts, err := repo.ListAccounts(ctx, false)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}

	c.members = make(map[string]string, len(members))
	for _, m := range members {
		c.members[m.ID] = m.Name
	}
	c.categories = make(map[string]string, len(categories))
	for _, cat := range categories {
		c.categories[cat.ID] = cat.Name
	}
	c.accounts = make(map[string]string, len(accounts))
	for _, a := range accounts {
		c.accounts[a.ID] = a.Name
	}
	c.loadedAt = time.Now()
	return nil
}

func (c *nameCache) member(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.members[id]; ok && name != "" {
		return name
	}
	return "Family"
}

func (c *nameCache) category(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.categories[id]; ok && name != "" {
		return name
	}
	return "Unknown"
}

func (c *nameCache) account(id string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name, ok := c.accounts[id]; ok && name != "" {
		return name
	}
	return "Unknown"
}

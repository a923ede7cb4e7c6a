package finance

import (
	"context"
	"fmt"
	"log/slog"

	"famfin/internal/core"
)

// AddTransaction persists a ledger entry and applies it to the in-memory
// collection. Type and status arrive already normalized (core.Parse*); a
// zero date defaults to today and a zero installment count to a lump sum.
//
// When a completed transaction references an account, the account is
// reconciled: income raises a bank balance, an expense lowers it, and an
// expense on a credit card raises the card's current bill. The transaction
// insert is the commit point; if the follow-up account update fails the
// entry stands, the drift is logged and the next Load restores backend
// truth.
func (s *Store) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = core.NewID()
	}
	if t.Status == "" {
		t.Status = core.Completed
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}
	if t.TotalInstallments < 1 {
		t.TotalInstallments = 1
	}
	if t.InstallmentNumber < 1 {
		t.InstallmentNumber = 1
	}
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.repo.InsertTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	s.mu.Lock()
	s.transactions = append([]core.Transaction{t}, s.transactions...)
	s.mu.Unlock()

	s.reconcileAccount(ctx, t)
	return t, nil
}

// reconcileAccount adjusts the referenced account after a settled
// transaction lands. Failures are logged, never propagated: the ledger
// entry is already committed.
func (s *Store) reconcileAccount(ctx context.Context, t core.Transaction) {
	if t.AccountID == "" || t.Status != core.Completed {
		return
	}
	err := s.UpdateAccount(ctx, t.AccountID, func(a *core.Account) {
		switch {
		case a.IsCreditCard():
			if t.Type == core.Expense {
				a.CurrentBill = a.CurrentBill.Add(t.Amount)
			} else {
				// Income against a card is a bill payment.
				a.CurrentBill = a.CurrentBill.Sub(t.Amount)
			}
		case t.Type == core.Income:
			a.Balance = a.Balance.Add(t.Amount)
		default:
			a.Balance = a.Balance.Sub(t.Amount)
		}
	})
	if err != nil {
		slog.WarnContext(ctx, "Account reconciliation failed, balances stale until next load",
			"transaction_id", t.ID,
			"account_id", t.AccountID,
			"error", err)
	}
}

func (s *Store) UpdateTransaction(ctx context.Context, id string, mutate func(*core.Transaction)) error {
	transactionID := func(t core.Transaction) string { return t.ID }
	s.mu.RLock()
	updated, found := findByID(s.transactions, id, transactionID)
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}

	mutate(&updated)
	updated.ID = id
	updated.UpdatedAt = s.now()
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateTransaction(ctx, updated); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.transactions, id, transactionID, updated)
	s.mu.Unlock()
	return nil
}

// DeleteTransaction removes a ledger entry outright. Transactions are the
// one entity deleted hard; history that should survive lives on soft-deleted
// members and accounts, not on the entry itself.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.RLock()
	found := false
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.mu.Lock()
	s.transactions = removeByID(s.transactions, id, func(t core.Transaction) string { return t.ID })
	s.mu.Unlock()
	return nil
}

// TransactionsByAccount returns the entries charged to one account or card.
func (s *Store) TransactionsByAccount(accountID string) []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) AddRecurringTransaction(ctx context.Context, r core.RecurringTransaction) (core.RecurringTransaction, error) {
	if r.ID == "" {
		r.ID = core.NewID()
	}
	if r.StartDate.IsZero() {
		r.StartDate = s.now()
	}
	r.Active = true
	if err := r.Validate(); err != nil {
		return core.RecurringTransaction{}, err
	}
	if err := s.repo.InsertRecurring(ctx, r); err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("insert recurring transaction: %w", err)
	}
	s.mu.Lock()
	s.recurring = append(s.recurring, r)
	s.mu.Unlock()
	return r, nil
}

func (s *Store) UpdateRecurringTransaction(ctx context.Context, id string, mutate func(*core.RecurringTransaction)) error {
	recurringID := func(r core.RecurringTransaction) string { return r.ID }
	s.mu.RLock()
	updated, found := findByID(s.recurring, id, recurringID)
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}

	mutate(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateRecurring(ctx, updated); err != nil {
		return fmt.Errorf("update recurring transaction: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.recurring, id, recurringID, updated)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteRecurringTransaction(ctx context.Context, id string) error {
	s.mu.RLock()
	found := false
	for i := range s.recurring {
		if s.recurring[i].ID == id {
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}
	if err := s.repo.SoftDeleteRecurring(ctx, id); err != nil {
		return fmt.Errorf("soft delete recurring transaction: %w", err)
	}
	s.mu.Lock()
	s.recurring = removeByID(s.recurring, id, func(r core.RecurringTransaction) string { return r.ID })
	s.mu.Unlock()
	return nil
}

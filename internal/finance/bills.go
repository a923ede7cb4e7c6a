package finance

import (
	"context"
	"fmt"
	"sort"

	"famfin/internal/core"
)

// BillKind is the lifecycle variant of a bill. The kind is derived, not
// stored: a recurring flag wins over installments, anything else is a
// one-off.
type BillKind int

const (
	OneOff BillKind = iota
	Recurring
	Installment
)

// Kind classifies a bill for the paid transition.
func Kind(b core.Bill) BillKind {
	switch {
	case b.Recurring:
		return Recurring
	case b.TotalInstallments > 1 && b.InstallmentNumber < b.TotalInstallments:
		return Installment
	default:
		return OneOff
	}
}

// Advance is the single paid-transition function: it returns the successor
// bill and true for non-terminal kinds, or false when paying the bill ends
// its lifecycle. The successor carries a fresh id and a due date one
// calendar month later, day clamped to the target month's length.
func Advance(b core.Bill) (core.Bill, bool) {
	switch Kind(b) {
	case Recurring:
		next := b
		next.ID = core.NewID()
		next.DueDate = core.AddMonthClamped(b.DueDate)
		return next, true
	case Installment:
		next := b
		next.ID = core.NewID()
		next.DueDate = core.AddMonthClamped(b.DueDate)
		next.InstallmentNumber = b.InstallmentNumber + 1
		return next, true
	default:
		return core.Bill{}, false
	}
}

// AddBill registers a payable obligation.
func (s *Store) AddBill(ctx context.Context, b core.Bill) (core.Bill, error) {
	if b.ID == "" {
		b.ID = core.NewID()
	}
	if b.TotalInstallments > 1 && b.InstallmentNumber < 1 {
		b.InstallmentNumber = 1
	}
	if err := b.Validate(); err != nil {
		return core.Bill{}, err
	}
	if err := s.repo.InsertBill(ctx, b); err != nil {
		return core.Bill{}, fmt.Errorf("insert bill: %w", err)
	}
	s.mu.Lock()
	s.bills = append(s.bills, b)
	s.mu.Unlock()
	return b, nil
}

// MarkBillPaid runs the paid transition: the original record is removed
// and, for recurring or installment bills, its successor inserted under a
// new id. An unknown id reports core.ErrNotFound.
func (s *Store) MarkBillPaid(ctx context.Context, id string) error {
	s.mu.RLock()
	var bill core.Bill
	found := false
	for _, b := range s.bills {
		if b.ID == id {
			bill = b
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}

	next, hasNext := Advance(bill)

	// The successor commits first. If the delete then fails the backend
	// briefly holds both bills, which a retry can reconcile; the reverse
	// order would lose the recurring chain outright.
	if hasNext {
		if err := s.repo.InsertBill(ctx, next); err != nil {
			return fmt.Errorf("insert successor bill: %w", err)
		}
	}
	if err := s.repo.DeleteBill(ctx, id); err != nil {
		if hasNext {
			// Keep memory aligned with what committed: the successor
			// exists backend-side, the original is still open.
			s.mu.Lock()
			s.bills = append(s.bills, next)
			s.mu.Unlock()
		}
		return fmt.Errorf("delete paid bill: %w", err)
	}

	s.mu.Lock()
	s.bills = removeByID(s.bills, id, func(b core.Bill) string { return b.ID })
	if hasNext {
		s.bills = append(s.bills, next)
	}
	s.mu.Unlock()
	return nil
}

// PendingBills returns every open bill sorted ascending by due date,
// soonest first. The "next bills due" panel depends on this ordering.
func (s *Store) PendingBills() []core.Bill {
	s.mu.RLock()
	out := append([]core.Bill(nil), s.bills...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

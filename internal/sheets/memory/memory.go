// Package memory is an in-process ledger export target. It backs tests and
// local runs where no spreadsheet is configured.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"famfin/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	rows []sheets.Row
}

var (
	_ sheets.LedgerWriter  = (*Store)(nil)
	_ sheets.LedgerDeleter = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// Append stores the row and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, row sheets.Row) (string, error) {
	if row.TransactionID == "" {
		return "", errors.New("row missing transaction id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, row)
	return fmt.Sprintf("mem:%d", len(s.rows)), nil
}

// Delete removes every row carrying the given transaction id.
func (s *Store) Delete(_ context.Context, transactionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, r := range s.rows {
		if r.TransactionID != transactionID {
			kept = append(kept, r)
		}
	}
	s.rows = kept
	return nil
}

// ExportedIDs returns the transaction ids currently held, in append order.
func (s *Store) ExportedIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.rows))
	for _, r := range s.rows {
		ids = append(ids, r.TransactionID)
	}
	return ids, nil
}

// Rows returns a copy of the exported rows in append order.
func (s *Store) Rows() []sheets.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sheets.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

package finance

import (
	"famfin/internal/core"
)

// TypeFilter narrows aggregations and listings by transaction type.
type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

// Matches reports whether a transaction type passes the filter.
func (f TypeFilter) Matches(t core.TransactionType) bool {
	switch f {
	case FilterIncome:
		return t == core.Income
	case FilterExpense:
		return t == core.Expense
	default:
		return true
	}
}

// FiltersState is the session-scoped filter record every aggregation reads.
// It is never persisted; a fresh store starts at the current calendar month
// with no member, no type narrowing and no search text.
type FiltersState struct {
	DateRange core.DateRange
	MemberID  string // empty means all members
	Type      TypeFilter
	Search    string
}

// Each setter merges a single field and leaves the rest untouched. Every
// change bumps the filter generation so ledger views know to reset their
// pagination.

func (s *Store) SetDateRange(r core.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Stored verbatim: callers are responsible for start <= end.
	s.filters.DateRange = r
	s.filterGen++
}

func (s *Store) SetSelectedMember(memberID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.MemberID = memberID
	s.filterGen++
}

func (s *Store) SetTransactionType(t TypeFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == "" {
		t = FilterAll
	}
	s.filters.Type = t
	s.filterGen++
}

func (s *Store) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Search = text
	s.filterGen++
}

// Filters returns the current filter state.
func (s *Store) Filters() FiltersState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// FilterGeneration increments on every filter change.
func (s *Store) FilterGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterGen
}

package finance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"famfin/internal/core"
)

// Store holds the in-memory entity collections and the session filter
// state. All reads are served from memory; mutations go through the
// repository first and are applied locally only on success, so a backend
// failure never leaves the collections ahead of the backend.
type Store struct {
	mu        sync.RWMutex
	repo      Repository
	now       func() time.Time
	filters   FiltersState
	filterGen uint64

	members      []core.FamilyMember
	categories   []core.Category
	accounts     []core.Account
	transactions []core.Transaction
	recurring    []core.RecurringTransaction
	bills        []core.Bill
	goals        []core.Goal
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store clock. Tests pin it.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store bound to a persistence backend. The initial date
// range is the first through last calendar day of the current month.
func NewStore(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filters = FiltersState{
		DateRange: core.CurrentMonthRange(s.now()),
		Type:      FilterAll,
	}
	return s
}

// Load refreshes every collection wholesale from the backend. The five
// entity lists are fetched in parallel; any failure leaves the previous
// snapshot intact.
func (s *Store) Load(ctx context.Context) error {
	var (
		members      []core.FamilyMember
		categories   []core.Category
		accounts     []core.Account
		transactions []core.Transaction
		recurring    []core.RecurringTransaction
		bills        []core.Bill
		goals        []core.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.repo.ListMembers(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repo.ListCategories(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		accounts, err = s.repo.ListAccounts(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = s.repo.ListTransactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		recurring, err = s.repo.ListRecurring(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		bills, err = s.repo.ListBills(gctx)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.repo.ListGoals(gctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load entities: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = members
	s.categories = categories
	s.accounts = accounts
	s.transactions = transactions
	s.recurring = recurring
	s.bills = bills
	s.goals = goals
	return nil
}

// Snapshot accessors return copies so callers cannot mutate store state.

func (s *Store) Members() []core.FamilyMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.FamilyMember(nil), s.members...)
}

func (s *Store) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

func (s *Store) Accounts() []core.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Account(nil), s.accounts...)
}

func (s *Store) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

func (s *Store) RecurringTransactions() []core.RecurringTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.RecurringTransaction(nil), s.recurring...)
}

func (s *Store) Goals() []core.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Goal(nil), s.goals...)
}

// CreditCards returns the credit-card accounts.
func (s *Store) CreditCards() []core.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Account
	for _, a := range s.accounts {
		if a.IsCreditCard() {
			out = append(out, a)
		}
	}
	return out
}

// BankAccounts returns every non-credit-card account.
func (s *Store) BankAccounts() []core.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Account
	for _, a := range s.accounts {
		if !a.IsCreditCard() {
			out = append(out, a)
		}
	}
	return out
}

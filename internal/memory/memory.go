// Package memory is the in-memory persistence backend: the default for
// local development and the fixture for tests. Soft deletes flip the active
// flag and keep the record, exactly like the SQL backend.
package memory

import (
	"context"
	"sync"

	"famfin/internal/core"
	"famfin/internal/finance"
)

// Repository keeps every entity collection in process memory.
type Repository struct {
	mu           sync.Mutex
	members      map[string]core.FamilyMember
	categories   map[string]core.Category
	accounts     map[string]core.Account
	transactions map[string]core.Transaction
	recurring    map[string]core.RecurringTransaction
	bills        map[string]core.Bill
	goals        map[string]core.Goal
}

var _ finance.Repository = (*Repository)(nil)

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		members:      map[string]core.FamilyMember{},
		categories:   map[string]core.Category{},
		accounts:     map[string]core.Account{},
		transactions: map[string]core.Transaction{},
		recurring:    map[string]core.RecurringTransaction{},
		bills:        map[string]core.Bill{},
		goals:        map[string]core.Goal{},
	}
}

// NewWithDefaultCategories seeds the default income and expense category
// namespaces so a fresh install has something to classify against.
func NewWithDefaultCategories() *Repository {
	r := New()
	for _, c := range core.DefaultCategories() {
		r.categories[c.ID] = c
	}
	return r
}

func (r *Repository) ListMembers(_ context.Context, onlyActive bool) ([]core.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.FamilyMember
	for _, m := range r.members {
		if !onlyActive || m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *Repository) InsertMember(_ context.Context, m core.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[m.ID] = m
	return nil
}

func (r *Repository) UpdateMember(_ context.Context, m core.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return core.ErrNotFound
	}
	r.members[m.ID] = m
	return nil
}

func (r *Repository) SoftDeleteMember(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return core.ErrNotFound
	}
	m.Active = false
	r.members[id] = m
	return nil
}

func (r *Repository) ListCategories(_ context.Context, onlyActive bool) ([]core.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Category
	for _, c := range r.categories {
		if !onlyActive || c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *Repository) InsertCategory(_ context.Context, c core.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

func (r *Repository) UpdateCategory(_ context.Context, c core.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return core.ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *Repository) SoftDeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return core.ErrNotFound
	}
	c.Active = false
	r.categories[id] = c
	return nil
}

func (r *Repository) ListAccounts(_ context.Context, onlyActive bool) ([]core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Account
	for _, a := range r.accounts {
		if !onlyActive || a.Active {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Repository) InsertAccount(_ context.Context, a core.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
	return nil
}

func (r *Repository) UpdateAccount(_ context.Context, a core.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[a.ID]; !ok {
		return core.ErrNotFound
	}
	r.accounts[a.ID] = a
	return nil
}

func (r *Repository) SoftDeleteAccount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	a.Active = false
	r.accounts[id] = a
	return nil
}

func (r *Repository) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Transaction
	for _, t := range r.transactions {
		out = append(out, t)
	}
	return out, nil
}

func (r *Repository) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transactions[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return t, nil
}

func (r *Repository) InsertTransaction(_ context.Context, t core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.ID] = t
	return nil
}

func (r *Repository) UpdateTransaction(_ context.Context, t core.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[t.ID]; !ok {
		return core.ErrNotFound
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *Repository) DeleteTransaction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.transactions[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *Repository) ListRecurring(_ context.Context, onlyActive bool) ([]core.RecurringTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.RecurringTransaction
	for _, rt := range r.recurring {
		if !onlyActive || rt.Active {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (r *Repository) InsertRecurring(_ context.Context, rt core.RecurringTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recurring[rt.ID] = rt
	return nil
}

func (r *Repository) UpdateRecurring(_ context.Context, rt core.RecurringTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recurring[rt.ID]; !ok {
		return core.ErrNotFound
	}
	r.recurring[rt.ID] = rt
	return nil
}

func (r *Repository) SoftDeleteRecurring(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.recurring[id]
	if !ok {
		return core.ErrNotFound
	}
	rt.Active = false
	r.recurring[id] = rt
	return nil
}

func (r *Repository) ListBills(_ context.Context) ([]core.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Bill
	for _, b := range r.bills {
		out = append(out, b)
	}
	return out, nil
}

func (r *Repository) InsertBill(_ context.Context, b core.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills[b.ID] = b
	return nil
}

func (r *Repository) DeleteBill(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.bills, id)
	return nil
}

func (r *Repository) ListGoals(_ context.Context, onlyActive bool) ([]core.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Goal
	for _, g := range r.goals {
		if !onlyActive || g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *Repository) InsertGoal(_ context.Context, g core.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[g.ID] = g
	return nil
}

func (r *Repository) UpdateGoal(_ context.Context, g core.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.goals[g.ID]; !ok {
		return core.ErrNotFound
	}
	r.goals[g.ID] = g
	return nil
}

func (r *Repository) SoftDeleteGoal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return core.ErrNotFound
	}
	g.Active = false
	r.goals[id] = g
	return nil
}

package finance

import (
	"context"
	"fmt"

	"famfin/internal/core"
)

// CRUD over members, categories, accounts and goals. Each mutation persists
// first and touches the in-memory collection only on success. Deletes are
// soft: the backend flips an active flag and the store drops the entity from
// its active collection, with no cascade to dependents.

func (s *Store) AddMember(ctx context.Context, m core.FamilyMember) (core.FamilyMember, error) {
	if m.ID == "" {
		m.ID = core.NewID()
	}
	m.Active = true
	m.CreatedAt = s.now()
	m.UpdatedAt = m.CreatedAt
	if err := m.Validate(); err != nil {
		return core.FamilyMember{}, err
	}
	if err := s.repo.InsertMember(ctx, m); err != nil {
		return core.FamilyMember{}, fmt.Errorf("insert member: %w", err)
	}
	s.mu.Lock()
	s.members = append(s.members, m)
	s.mu.Unlock()
	return m, nil
}

func (s *Store) UpdateMember(ctx context.Context, id string, mutate func(*core.FamilyMember)) error {
	memberID := func(m core.FamilyMember) string { return m.ID }
	s.mu.RLock()
	updated, found := findByID(s.members, id, memberID)
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
	if err := s.repo.UpdateMember(ctx, updated); err != nil {
		return fmt.Errorf("update member: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.members, id, memberID, updated)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteMember(ctx context.Context, id string) error {
	if !s.hasMember(id) {
		return core.ErrNotFound
	}
	if err := s.repo.SoftDeleteMember(ctx, id); err != nil {
		return fmt.Errorf("soft delete member: %w", err)
	}
	s.mu.Lock()
	s.members = removeByID(s.members, id, func(m core.FamilyMember) string { return m.ID })
	s.mu.Unlock()
	return nil
}

func (s *Store) AddCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if c.ID == "" {
		c.ID = core.NewID()
	}
	c.Active = true
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	if err := s.repo.InsertCategory(ctx, c); err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, mutate func(*core.Category)) error {
	categoryID := func(c core.Category) string { return c.ID }
	s.mu.RLock()
	updated, found := findByID(s.categories, id, categoryID)
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}

	mutate(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateCategory(ctx, updated); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.categories, id, categoryID, updated)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.category(id); !ok {
		return core.ErrNotFound
	}
	if err := s.repo.SoftDeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("soft delete category: %w", err)
	}
	s.mu.Lock()
	s.categories = removeByID(s.categories, id, func(c core.Category) string { return c.ID })
	s.mu.Unlock()
	return nil
}

func (s *Store) AddAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if a.ID == "" {
		a.ID = core.NewID()
	}
	if a.Type == "" {
		a.Type = core.Checking
	}
	a.Active = true
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}
	if err := s.repo.InsertAccount(ctx, a); err != nil {
		return core.Account{}, fmt.Errorf("insert account: %w", err)
	}
	s.mu.Lock()
	s.accounts = append(s.accounts, a)
	s.mu.Unlock()
	return a, nil
}

// AddBankAccount and AddCreditCard pin the discriminant.

func (s *Store) AddBankAccount(ctx context.Context, a core.Account) (core.Account, error) {
	if a.Type != core.Savings {
		a.Type = core.Checking
	}
	return s.AddAccount(ctx, a)
}

func (s *Store) AddCreditCard(ctx context.Context, a core.Account) (core.Account, error) {
	a.Type = core.CreditCard
	return s.AddAccount(ctx, a)
}

func (s *Store) UpdateAccount(ctx context.Context, id string, mutate func(*core.Account)) error {
	accountID := func(a core.Account) string { return a.ID }
	s.mu.RLock()
	updated, found := findByID(s.accounts, id, accountID)
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
	if err := s.repo.UpdateAccount(ctx, updated); err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.accounts, id, accountID, updated)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if _, ok := s.account(id); !ok {
		return core.ErrNotFound
	}
	if err := s.repo.SoftDeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("soft delete account: %w", err)
	}
	s.mu.Lock()
	s.accounts = removeByID(s.accounts, id, func(a core.Account) string { return a.ID })
	s.mu.Unlock()
	return nil
}

func (s *Store) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.ID == "" {
		g.ID = core.NewID()
	}
	g.Active = true
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	if err := s.repo.InsertGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	s.mu.Lock()
	s.goals = append(s.goals, g)
	s.mu.Unlock()
	return g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, id string, mutate func(*core.Goal)) error {
	goalID := func(g core.Goal) string { return g.ID }
	s.mu.RLock()
	updated, found := findByID(s.goals, id, goalID)
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}

	mutate(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateGoal(ctx, updated); err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	s.mu.Lock()
	replaceByID(s.goals, id, goalID, updated)
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	found := false
	s.mu.RLock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			found = true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return core.ErrNotFound
	}
	if err := s.repo.SoftDeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("soft delete goal: %w", err)
	}
	s.mu.Lock()
	s.goals = removeByID(s.goals, id, func(g core.Goal) string { return g.ID })
	s.mu.Unlock()
	return nil
}

func (s *Store) hasMember(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.members {
		if s.members[i].ID == id {
			return true
		}
	}
	return false
}

func removeByID[T any](items []T, id string, key func(T) string) []T {
	out := items[:0]
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func findByID[T any](items []T, id string, key func(T) string) (T, bool) {
	for i := range items {
		if key(items[i]) == id {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}

// replaceByID writes updated over the element carrying id. The element is
// re-located because the slice may have shifted while the repository call ran
// unlocked; a miss means a concurrent delete won, and the write-back is
// dropped rather than resurrecting the entity.
func replaceByID[T any](items []T, id string, key func(T) string, updated T) {
	for i := range items {
		if key(items[i]) == id {
			items[i] = updated
			return
		}
	}
}

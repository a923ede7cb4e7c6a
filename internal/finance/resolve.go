package finance

import "famfin/internal/core"

// Display fallbacks for dangling references. Members and accounts are
// soft-deleted without cascading, so a transaction may outlive whatever it
// points at; every read path degrades to a fallback label instead of
// failing.
const (
	FallbackMemberName = "Family"
	FallbackUnknown    = "Unknown"
)

func (s *Store) category(id string) (core.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryLocked(id)
}

func (s *Store) categoryLocked(id string) (core.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

func (s *Store) account(id string) (core.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return core.Account{}, false
}

// MemberName resolves a member reference for display. An empty id is a
// whole-family entry; a dangling id falls back the same way.
func (s *Store) MemberName(id string) string {
	if id == "" {
		return FallbackMemberName
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.members {
		if m.ID == id {
			return m.Name
		}
	}
	return FallbackMemberName
}

// CategoryName resolves a category reference for display.
func (s *Store) CategoryName(id string) string {
	if id == "" {
		return FallbackUnknown
	}
	if c, ok := s.category(id); ok {
		return c.Name
	}
	return FallbackUnknown
}

// AccountName resolves an account reference for display.
func (s *Store) AccountName(id string) string {
	if id == "" {
		return FallbackUnknown
	}
	if a, ok := s.account(id); ok {
		return a.Name
	}
	return FallbackUnknown
}

package finance

import (
	"sort"
	"strings"

	"famfin/internal/core"
)

// DefaultPageSize matches the statement table of the dashboard.
const DefaultPageSize = 10

// LedgerPage is one page of the filtered, date-descending statement.
type LedgerPage struct {
	Items      []core.Transaction `json:"items"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalItems int                `json:"total_items"`
	TotalPages int                `json:"total_pages"`
}

// FilteredTransactions applies the global filter state: period, member,
// type and search. Search is a case-insensitive substring match against the
// description or the resolved category name; entries with a dangling
// category simply don't match on category.
func (s *Store) FilteredTransactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(s.filters.Search))
	var out []core.Transaction
	for _, t := range s.transactions {
		if !s.filters.DateRange.Contains(t.Date) {
			continue
		}
		if s.filters.MemberID != "" && t.MemberID != s.filters.MemberID {
			continue
		}
		if !s.filters.Type.Matches(t.Type) {
			continue
		}
		if search != "" && !s.matchesSearchLocked(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) matchesSearchLocked(t core.Transaction, search string) bool {
	if strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	if cat, ok := s.categoryLocked(t.CategoryID); ok {
		return strings.Contains(strings.ToLower(cat.Name), search)
	}
	return false
}

// LedgerView layers the statement page's local controls over the global
// filters: an independent type filter that can narrow further, a local
// search, and pagination. Changing any local control, or any global filter,
// snaps the view back to page one.
type LedgerView struct {
	store     *Store
	pageSize  int
	typeFilter TypeFilter
	search    string
	page      int
	lastGen   uint64
}

// NewLedgerView creates a view over the store with the given page size
// (DefaultPageSize when <= 0).
func NewLedgerView(store *Store, pageSize int) *LedgerView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &LedgerView{
		store:      store,
		pageSize:   pageSize,
		typeFilter: FilterAll,
		page:       1,
		lastGen:    store.FilterGeneration(),
	}
}

// SetTypeFilter narrows by type locally and resets to page one.
func (v *LedgerView) SetTypeFilter(t TypeFilter) {
	if t == "" {
		t = FilterAll
	}
	v.typeFilter = t
	v.page = 1
}

// SetSearch sets the local search text and resets to page one.
func (v *LedgerView) SetSearch(text string) {
	v.search = text
	v.page = 1
}

// SetPage selects a page; values below one clamp to one.
func (v *LedgerView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Results runs the full pipeline: global filters, local overrides, the
// mandatory date-descending sort, then pagination. A page past the end
// returns empty items, never an error.
func (v *LedgerView) Results() LedgerPage {
	// A global filter change since the last read resets pagination.
	if gen := v.store.FilterGeneration(); gen != v.lastGen {
		v.lastGen = gen
		v.page = 1
	}

	items := v.store.FilteredTransactions()

	if v.typeFilter != FilterAll {
		filtered := items[:0]
		for _, t := range items {
			if v.typeFilter.Matches(t.Type) {
				filtered = append(filtered, t)
			}
		}
		items = filtered
	}
	if search := strings.ToLower(strings.TrimSpace(v.search)); search != "" {
		filtered := items[:0]
		for _, t := range items {
			if v.store.matchesSearch(t, search) {
				filtered = append(filtered, t)
			}
		}
		items = filtered
	}

	// Most recent first. Stable so same-day entries keep their load order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	total := len(items)
	totalPages := (total + v.pageSize - 1) / v.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (v.page - 1) * v.pageSize
	end := start + v.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return LedgerPage{
		Items:      items[start:end],
		Page:       v.page,
		PageSize:   v.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func (s *Store) matchesSearch(t core.Transaction, search string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matchesSearchLocked(t, search)
}

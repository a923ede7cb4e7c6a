package finance

import (
	"sort"

	"famfin/internal/core"
)

// CategorySummary is one row of the expenses-by-category breakdown.
// Percentage is relative to income for the same period, not to total
// expenses, so a single category can legitimately exceed 100.
type CategorySummary struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	Total      core.Money `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TotalBalance sums every non-credit-card balance and subtracts every
// credit-card current bill. Filters are ignored: the figure is always
// whole-portfolio, all-time. An empty account list yields zero.
func (s *Store) TotalBalance() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := core.Zero
	for _, a := range s.accounts {
		if a.IsCreditCard() {
			total = total.Sub(a.CurrentBill)
		} else {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// matchesPeriod is the shared aggregation predicate: settled, inside the
// inclusive date range, and attributed to the selected member when one is
// set. A transaction without a member belongs to the whole family and is
// excluded when filtering by member.
func matchesPeriod(t core.Transaction, f FiltersState) bool {
	if t.Status != core.Completed {
		return false
	}
	if !f.DateRange.Contains(t.Date) {
		return false
	}
	if f.MemberID != "" && t.MemberID != f.MemberID {
		return false
	}
	return true
}

// IncomeForPeriod sums settled income inside the current filter period.
func (s *Store) IncomeForPeriod() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sumForPeriod(core.Income)
}

// ExpensesForPeriod sums settled expenses inside the current filter period.
func (s *Store) ExpensesForPeriod() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sumForPeriod(core.Expense)
}

// sumForPeriod expects the read lock to be held.
func (s *Store) sumForPeriod(typ core.TransactionType) core.Money {
	total := core.Zero
	for _, t := range s.transactions {
		if t.Type == typ && matchesPeriod(t, s.filters) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// ExpensesByCategory groups the period's settled expenses by category.
// Entries whose category id does not resolve are silently excluded from the
// breakdown. Rows are sorted descending by total; percentages use income as
// the denominator and collapse to 0 when income is zero.
func (s *Store) ExpensesByCategory() []CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	income := s.sumForPeriod(core.Income)

	byID := make(map[string]*CategorySummary)
	var order []string
	for _, t := range s.transactions {
		if t.Type != core.Expense || t.CategoryID == "" || !matchesPeriod(t, s.filters) {
			continue
		}
		cat, ok := s.categoryLocked(t.CategoryID)
		if !ok {
			continue
		}
		row, seen := byID[cat.ID]
		if !seen {
			row = &CategorySummary{
				CategoryID: cat.ID,
				Name:       cat.Name,
				Icon:       cat.Icon,
				Color:      cat.Color,
			}
			byID[cat.ID] = row
			order = append(order, cat.ID)
		}
		row.Total = row.Total.Add(t.Amount)
		row.Count++
	}

	out := make([]CategorySummary, 0, len(order))
	for _, id := range order {
		row := *byID[id]
		row.Percentage = row.Total.PercentOf(income)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Cmp(out[j].Total) > 0
	})
	return out
}

// CategoryPercentage expresses an already-computed amount against the
// period's income. Zero income yields 0 for any amount.
func (s *Store) CategoryPercentage(amount core.Money) float64 {
	return amount.PercentOf(s.IncomeForPeriod())
}

// SavingsRate is (income - expenses) / income * 100 for the filtered
// period: 0 when income is zero, 100 when nothing was spent.
func (s *Store) SavingsRate() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	income := s.sumForPeriod(core.Income)
	if income.IsZero() {
		return 0
	}
	expenses := s.sumForPeriod(core.Expense)
	return income.Sub(expenses).PercentOf(income)
}

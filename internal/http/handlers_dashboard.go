package http

import (
	"net/http"
	"time"

	"famfin/internal/core"
	"famfin/internal/finance"
)

// handleDashboard returns every derived metric the dashboard shows, computed
// against the current filter state.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	bills := s.store.PendingBills()
	billsOut := make([]billJSON, 0, len(bills))
	for _, b := range bills {
		billsOut = append(billsOut, billToJSON(b))
	}

	out := dashboardJSON{
		TotalBalance:       s.store.TotalBalance(),
		IncomeForPeriod:    s.store.IncomeForPeriod(),
		ExpensesForPeriod:  s.store.ExpensesForPeriod(),
		SavingsRate:        s.store.SavingsRate(),
		ExpensesByCategory: s.store.ExpensesByCategory(),
		PendingBills:       billsOut,
		Filters:            filtersToJSON(s.store.Filters()),
	}
	if out.ExpensesByCategory == nil {
		out.ExpensesByCategory = []finance.CategorySummary{}
	}
	writeJSON(w, http.StatusOK, out)
}

// filtersUpdateJSON carries a partial filter update. Only the fields present
// in the body are applied; each maps to one independent setter.
type filtersUpdateJSON struct {
	DateStart *time.Time `json:"date_start,omitempty"`
	DateEnd   *time.Time `json:"date_end,omitempty"`
	MemberID  *string    `json:"member_id,omitempty"`
	Type      *string    `json:"type,omitempty"`
	Search    *string    `json:"search,omitempty"`
}

func (s *Server) handleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	var req filtersUpdateJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if (req.DateStart == nil) != (req.DateEnd == nil) {
		writeError(w, http.StatusUnprocessableEntity, "date_start and date_end must be set together")
		return
	}
	if req.DateStart != nil {
		if req.DateEnd.Before(*req.DateStart) {
			writeError(w, http.StatusUnprocessableEntity, "date_end before date_start")
			return
		}
		s.store.SetDateRange(core.DateRange{Start: *req.DateStart, End: *req.DateEnd})
	}
	if req.MemberID != nil {
		s.store.SetSelectedMember(*req.MemberID)
	}
	if req.Type != nil {
		switch t := finance.TypeFilter(*req.Type); t {
		case finance.FilterAll, finance.FilterIncome, finance.FilterExpense:
			s.store.SetTransactionType(t)
		default:
			writeError(w, http.StatusUnprocessableEntity, "type must be all, income or expense")
			return
		}
	}
	if req.Search != nil {
		s.store.SetSearchText(sanitizeInput(*req.Search))
	}

	writeJSON(w, http.StatusOK, filtersToJSON(s.store.Filters()))
}

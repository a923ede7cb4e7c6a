package http

import (
	"net/http"
	"strings"

	"famfin/internal/finance"
)

// handleLedger serves one page of the filtered statement. The view-local
// type filter and search narrow on top of the store's global filters; any
// change of either resets the view to the first page.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		switch t := finance.TypeFilter(v); t {
		case finance.FilterAll, finance.FilterIncome, finance.FilterExpense:
			s.ledger.SetTypeFilter(t)
		default:
			writeError(w, http.StatusUnprocessableEntity, "type must be all, income or expense")
			return
		}
	}
	if q.Has("search") {
		s.ledger.SetSearch(sanitizeInput(q.Get("search")))
	}
	s.ledger.SetPage(parsePage(r))

	writeJSON(w, http.StatusOK, ledgerPageToJSON(s.ledger.Results()))
}

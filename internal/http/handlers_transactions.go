package http

import (
	"net/http"

	"famfin/internal/core"
)

// Transactions go through the service layer so every mutation also
// publishes a sync message for the spreadsheet worker.

func (s *Server) handleListTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions := s.store.Transactions()
	out := make([]transactionJSON, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, transactionToJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Description = sanitizeInput(req.Description)

	created, err := s.service.Create(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, transactionToJSON(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.service.Update(r.Context(), r.PathValue("id"), func(t *core.Transaction) {
		t.Type = core.TransactionType(req.Type)
		t.Amount = req.Amount
		t.Description = sanitizeInput(req.Description)
		t.Date = req.Date
		t.CategoryID = req.CategoryID
		t.AccountID = req.AccountID
		t.MemberID = req.MemberID
		t.InstallmentNumber = req.InstallmentNumber
		t.TotalInstallments = req.TotalInstallments
		t.Status = core.TransactionStatus(req.Status)
		t.Notes = req.Notes
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRecurring(w http.ResponseWriter, _ *http.Request) {
	templates := s.store.RecurringTransactions()
	out := make([]recurringJSON, 0, len(templates))
	for _, t := range templates {
		out = append(out, recurringToJSON(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Description = sanitizeInput(req.Description)

	created, err := s.store.AddRecurringTransaction(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, recurringToJSON(created))
}

func (s *Server) handleUpdateRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateRecurringTransaction(r.Context(), r.PathValue("id"), func(t *core.RecurringTransaction) {
		t.Type = core.TransactionType(req.Type)
		t.Amount = req.Amount
		t.Description = sanitizeInput(req.Description)
		t.CategoryID = req.CategoryID
		t.AccountID = req.AccountID
		t.MemberID = req.MemberID
		t.Frequency = core.Frequency(req.Frequency)
		t.DayOfMonth = req.DayOfMonth
		t.DayOfWeek = req.DayOfWeek
		if !req.StartDate.IsZero() {
			t.StartDate = req.StartDate
		}
		if req.EndDate != nil {
			t.EndDate = *req.EndDate
		}
		t.Active = req.Active
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRecurring(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRecurringTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

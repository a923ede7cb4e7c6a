package http

import (
	"net/http"
)

// handleListBills returns pending bills soonest-due first.
func (s *Server) handleListBills(w http.ResponseWriter, _ *http.Request) {
	bills := s.store.PendingBills()
	out := make([]billJSON, 0, len(bills))
	for _, b := range bills {
		out = append(out, billToJSON(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var req billJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Description = sanitizeInput(req.Description)

	created, err := s.store.AddBill(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, billToJSON(created))
}

// handlePayBill settles a bill: the record disappears and, for recurring or
// installment bills, a successor with a fresh id takes its place.
func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	if err := s.store.MarkBillPaid(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"famfin/internal/core"
)

// Entity CRUD. Every kind follows the same shape: list the active
// collection, create with a generated id, update through a field-merge
// closure, soft-delete by id.

func (s *Server) handleListMembers(w http.ResponseWriter, _ *http.Request) {
	members := s.store.Members()
	out := make([]memberJSON, 0, len(members))
	for _, m := range members {
		out = append(out, memberToJSON(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req memberJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = sanitizeInput(req.Name)

	created, err := s.store.AddMember(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberToJSON(created))
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req memberJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateMember(r.Context(), r.PathValue("id"), func(m *core.FamilyMember) {
		m.Name = sanitizeInput(req.Name)
		m.Role = req.Role
		m.AvatarURL = req.AvatarURL
		m.MonthlyIncome = req.MonthlyIncome
		m.Color = req.Color
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	categories := s.store.Categories()
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToJSON(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = sanitizeInput(req.Name)

	created, err := s.store.AddCategory(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryToJSON(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateCategory(r.Context(), r.PathValue("id"), func(c *core.Category) {
		c.Name = sanitizeInput(req.Name)
		c.Icon = req.Icon
		c.Type = core.CategoryType(req.Type)
		c.Color = req.Color
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, _ *http.Request) {
	accounts := s.store.Accounts()
	out := make([]accountJSON, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountToJSON(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = sanitizeInput(req.Name)

	created, err := s.store.AddAccount(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, accountToJSON(created))
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateAccount(r.Context(), r.PathValue("id"), func(a *core.Account) {
		a.Name = sanitizeInput(req.Name)
		a.Bank = req.Bank
		a.LastDigits = req.LastDigits
		a.HolderID = req.HolderID
		a.Balance = req.Balance
		a.CreditLimit = req.CreditLimit
		a.CurrentBill = req.CurrentBill
		a.ClosingDay = req.ClosingDay
		a.DueDay = req.DueDay
		a.Color = req.Color
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	goals := s.store.Goals()
	out := make([]goalJSON, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalToJSON(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Title = sanitizeInput(req.Title)

	created, err := s.store.AddGoal(r.Context(), req.toDomain())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, goalToJSON(created))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalJSON
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := s.store.UpdateGoal(r.Context(), r.PathValue("id"), func(g *core.Goal) {
		g.Title = sanitizeInput(req.Title)
		g.Description = req.Description
		g.TargetAmount = req.TargetAmount
		g.CurrentAmount = req.CurrentAmount
		if req.Deadline != nil {
			g.Deadline = *req.Deadline
		}
		g.Category = req.Category
		g.MemberID = req.MemberID
		g.Completed = req.Completed
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteGoal(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

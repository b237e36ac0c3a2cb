package http

import (
	"net/http"
)

// --- budgets ---

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.ledger.ListBudgets(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = toBudgetResponse(b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req budgetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	budget, err := req.toDomain(owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	saved, err := s.ledger.SetBudget(r.Context(), budget)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toBudgetResponse(saved))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteBudget(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

// --- savings goals ---

func (s *Server) handleListSavingsGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.ledger.ListSavingsGoals(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]savingsGoalResponse, len(goals))
	for i, g := range goals {
		out[i] = toSavingsGoalResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req savingsGoalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	goal, err := req.toDomain(owner, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.ledger.CreateSavingsGoal(r.Context(), goal)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toSavingsGoalResponse(created))
}

func (s *Server) handleUpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req savingsGoalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	goal, err := req.toDomain(owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.ledger.UpdateSavingsGoal(r.Context(), goal); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusOK, toSavingsGoalResponse(goal))
}

func (s *Server) handleDeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteSavingsGoal(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

// --- debts ---

func (s *Server) handleListDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := s.ledger.ListDebts(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]debtResponse, len(debts))
	for i, d := range debts {
		out[i] = toDebtResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req debtRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	debt, err := req.toDomain(owner, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.ledger.CreateDebt(r.Context(), debt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toDebtResponse(created))
}

func (s *Server) handleUpdateDebt(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req debtRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	debt, err := req.toDomain(owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.ledger.UpdateDebt(r.Context(), debt); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusOK, toDebtResponse(debt))
}

func (s *Server) handleDeleteDebt(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteDebt(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

package http

import (
	"net/http"
	"strings"

	"aurum/internal/storage"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	from, err := queryDate(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := storage.TransactionFilter{
		From:     from,
		To:       to,
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}

	transactions, err := s.ledger.ListTransactions(r.Context(), owner, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponses(transactions))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req transactionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tx, err := req.toDomain(owner)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.ledger.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteTransaction(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

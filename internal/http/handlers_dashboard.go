package http

import (
	"net/http"
	"time"

	"aurum/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if cached, ok := s.overviewCache.Get(owner); ok {
		writeJSON(w, http.StatusOK, toOverviewResponse(cached))
		return
	}

	overview, err := s.dashboard.Overview(r.Context(), owner, core.DateOf(time.Now()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Set(owner, overview)
	writeJSON(w, http.StatusOK, toOverviewResponse(overview))
}

func (s *Server) handleSpendingReport(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	// Defaults to the current calendar month.
	now := core.DateOf(time.Now())
	start := core.NewDate(now.Year(), now.Month(), 1)
	end := core.NewDate(now.Year(), now.Month()+1, 0)

	if from, err := queryDate(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if from != nil {
		start = *from
	}
	if to, err := queryDate(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	} else if to != nil {
		end = *to
	}

	report, err := s.dashboard.SpendingReport(r.Context(), owner, start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSpendingReportResponse(report))
}

func (s *Server) handleCashflowTrend(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	months := queryInt(r, "months", s.trendMonths)
	if months < 1 || months > 60 {
		writeError(w, http.StatusBadRequest, "months must be between 1 and 60")
		return
	}

	trend, err := s.dashboard.CashflowTrend(r.Context(), owner, core.DateOf(time.Now()), months)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCashflowResponses(trend))
}

func (s *Server) handleNetWorthHistory(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	snapshots, err := s.dashboard.NetWorthHistory(r.Context(), owner, queryInt(r, "limit", 30))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSnapshotResponses(snapshots))
}

package http

import (
	"net/http"
)

// --- assets ---

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.ledger.ListAssets(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]assetResponse, len(assets))
	for i, a := range assets {
		out[i] = toAssetResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req assetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	asset, err := req.toDomain(owner, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.ledger.CreateAsset(r.Context(), asset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toAssetResponse(created))
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req assetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	asset, err := req.toDomain(owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.ledger.UpdateAsset(r.Context(), asset); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusOK, toAssetResponse(asset))
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteAsset(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

// --- liabilities ---

func (s *Server) handleListLiabilities(w http.ResponseWriter, r *http.Request) {
	liabilities, err := s.ledger.ListLiabilities(r.Context(), ownerFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]liabilityResponse, len(liabilities))
	for i, l := range liabilities {
		out[i] = toLiabilityResponse(l)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateLiability(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req liabilityRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	liability, err := req.toDomain(owner, "")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	created, err := s.ledger.CreateLiability(r.Context(), liability)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusCreated, toLiabilityResponse(created))
}

func (s *Server) handleUpdateLiability(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	var req liabilityRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	liability, err := req.toDomain(owner, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := s.ledger.UpdateLiability(r.Context(), liability); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusOK, toLiabilityResponse(liability))
}

func (s *Server) handleDeleteLiability(w http.ResponseWriter, r *http.Request) {
	owner := ownerFrom(r)

	if err := s.ledger.DeleteLiability(r.Context(), owner, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.overviewCache.Delete(owner)
	writeJSON(w, http.StatusNoContent, nil)
}

package api

import (
	"errors"
	"net/http"

	"atelier/internal/database"
	"atelier/internal/models"
)

func (s *Server) handleListDresses(w http.ResponseWriter, r *http.Request) {
	dresses, err := s.dresses.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dresses)
}

func (s *Server) handleGetDress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	dress, err := s.dresses.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dress)
}

func (s *Server) handleCreateDress(w http.ResponseWriter, r *http.Request) {
	var dress models.Dress
	if err := decodeJSON(r, &dress); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if dress.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.dresses.Create(r.Context(), &dress); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dress)
}

func (s *Server) handleUpdateDress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var dress models.Dress
	if err := decodeJSON(r, &dress); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	dress.ID = id
	if err := s.dresses.Update(r.Context(), &dress); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dress)
}

func (s *Server) handleDeleteDress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.dresses.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrHasRentals) {
			writeError(w, http.StatusBadRequest, msgDressHasRentals)
			return
		}
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDressAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if startDate == "" || endDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	result, err := s.rentals.CheckAvailability(r.Context(), id, startDate, endDate)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

package api

import (
	"net/http"
	"strconv"

	"atelier/internal/models"
)

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := s.rentals.ListRentals(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rental, err := s.rentals.GetRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	var rental models.Rental
	if err := decodeJSON(r, &rental); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if rental.DressID == 0 || rental.CustomerID == 0 {
		writeError(w, http.StatusBadRequest, "dress_id and customer_id are required")
		return
	}

	created, err := s.rentals.CreateRental(r.Context(), &rental)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var rental models.Rental
	if err := decodeJSON(r, &rental); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rental.ID = id

	updated, err := s.rentals.UpdateRental(r.Context(), &rental)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.rentals.DeleteRental(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleActiveRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := s.rentals.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleUpcomingReturns(w http.ResponseWriter, r *http.Request) {
	days := models.UpcomingReturnsWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
		days = parsed
	}

	rentals, err := s.rentals.ListUpcomingReturns(r.Context(), days)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleRentalPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	payments, err := s.payments.ListForRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

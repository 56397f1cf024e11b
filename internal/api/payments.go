package api

import (
	"net/http"

	"atelier/internal/models"
)

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.payments.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var payment models.Payment
	if err := decodeJSON(r, &payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payment.RentalID == 0 {
		writeError(w, http.StatusBadRequest, "rental_id is required")
		return
	}
	if payment.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := s.payments.Record(r.Context(), &payment); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &payment)
}

func (s *Server) handleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var payment models.Payment
	if err := decodeJSON(r, &payment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	payment.ID = id

	if err := s.payments.Update(r.Context(), &payment); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &payment)
}

func (s *Server) handleDeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.payments.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

package api

import (
	"errors"
	"net/http"

	"atelier/internal/database"
	"atelier/internal/models"
)

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	customer, err := s.customers.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleCustomerRentals(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	rentals, err := s.customers.ListRentals(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentals)
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if customer.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.customers.Create(r.Context(), &customer); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var customer models.Customer
	if err := decodeJSON(r, &customer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	customer.ID = id
	if err := s.customers.Update(r.Context(), &customer); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.customers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrHasRentals) {
			writeError(w, http.StatusBadRequest, msgCustomerHasRental)
			return
		}
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

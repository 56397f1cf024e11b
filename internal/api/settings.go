package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	values, err := s.settings.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	value, err := s.settings.Get(r.Context(), key)
	if err != nil {
		respondError(w, err)
		return
	}
	if value == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	if err := s.settings.Update(r.Context(), values); err != nil {
		respondError(w, err)
		return
	}

	updated, err := s.settings.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

package api

import (
	"net/http"

	"atelier/internal/models"
)

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	var (
		appointments []models.Appointment
		err          error
	)
	if from != "" && to != "" {
		appointments, err = s.appointments.ListBetween(r.Context(), from, to)
	} else {
		appointments, err = s.appointments.List(r.Context())
	}
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.appointments.Upcoming(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleTodayAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.appointments.Today(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleDueReminders(w http.ResponseWriter, r *http.Request) {
	appointments, err := s.appointments.DueReminders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	appointment, err := s.appointments.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var appointment models.Appointment
	if err := decodeJSON(r, &appointment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if appointment.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	if err := s.appointments.Create(r.Context(), &appointment); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, &appointment)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var appointment models.Appointment
	if err := decodeJSON(r, &appointment); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	appointment.ID = id

	if err := s.appointments.Update(r.Context(), &appointment); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &appointment)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.appointments.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleMarkReminderSent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.appointments.MarkReminderSent(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reminder sent"})
}

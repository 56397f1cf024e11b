package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"atelier/internal/models"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Dashboard(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("dashboard query failed")
		writeJSON(w, http.StatusOK, &models.DashboardSummary{})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	revenue, err := s.reports.MonthlyRevenue(r.Context(), startDate, endDate)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revenue)
}

func (s *Server) handlePopularDresses(w http.ResponseWriter, r *http.Request) {
	limit := models.PopularDressesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	dresses, err := s.reports.PopularDresses(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dresses)
}

func (s *Server) handleReturningCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.reports.ReturningCustomers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := s.reports.Calendar(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["type"]

	filename, data, err := s.reports.ExportCSV(r.Context(), kind)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type scheduleExportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleExportSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleExportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.StartDate == "" || req.EndDate == "" {
		writeError(w, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	path, err := s.exporter.ExportSchedule(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

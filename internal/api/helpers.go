package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"atelier/internal/database"
	"atelier/internal/service"

	"github.com/gorilla/mux"
)

// Hebrew user-facing messages, matching what the management UI shows.
const (
	msgConflict          = "השמלה לא פנויה בתאריכים שנבחרו"
	msgDressHasRentals   = "לא ניתן למחוק שמלה עם השכרות פעילות"
	msgCustomerHasRental = "לא ניתן למחוק לקוחה עם היסטוריית השכרות"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// respondError maps domain errors onto the HTTP error taxonomy.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, database.ErrConflict):
		writeError(w, http.StatusBadRequest, msgConflict)
	case errors.Is(err, database.ErrDressUnavailable):
		writeError(w, http.StatusBadRequest, msgConflict)
	case errors.Is(err, database.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "rental is already closed")
	case errors.Is(err, database.ErrInvalidExportType):
		writeError(w, http.StatusBadRequest, "invalid export type")
	case errors.Is(err, database.ErrNoData):
		writeError(w, http.StatusNotFound, "no data to export")
	case errors.Is(err, service.ErrInvalidDates):
		writeError(w, http.StatusBadRequest, "invalid date range")
	case errors.Is(err, service.ErrInvalidAppointmentType):
		writeError(w, http.StatusBadRequest, "invalid appointment type")
	case errors.Is(err, service.ErrInvalidAppointmentStatus):
		writeError(w, http.StatusBadRequest, "invalid appointment status")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}

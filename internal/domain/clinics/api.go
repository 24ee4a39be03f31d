package clinics

import (
	"encoding/json"
	"net/http"
	"time"

	"petcare-web/internal/domain/appointments"
	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
)

// RegisterAPI monta la superficie JSON (documentada en /swagger).
func RegisterAPI(r chi.Router, svc *Service, appts *appointments.Service) {
	r.Route("/api/clinics", func(ar chi.Router) {
		ar.Get("/", apiSearchHandler(svc))
		ar.Get("/{clinicID}/slots", apiSlotsHandler(appts))
	})
}

type apiError struct {
	Error string `json:"error"`
}

// apiSearchHandler godoc
// @Summary      Search clinics
// @Description  Proxies the clinic directory search (limit 50).
// @Tags         clinics
// @Produce      json
// @Param        name  query     string  false  "Clinic name filter"
// @Success      200   {array}   clinics.Clinic
// @Failure      502   {object}  clinics.apiError
// @Router       /api/clinics [get]
func apiSearchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Search(r.Context(), r.URL.Query().Get("name"))
		if err != nil {
			writeError(w, err, "Failed to load clinics.")
			return
		}
		if items == nil {
			items = []Clinic{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

// apiSlotsHandler godoc
// @Summary      Available slots
// @Description  Slots of a clinic for a date (YYYY-MM-DD, default today).
// @Tags         clinics
// @Produce      json
// @Param        clinicID  path      int     true   "Clinic ID"
// @Param        date      query     string  false  "Date"
// @Success      200       {array}   appointments.AvailableSlot
// @Failure      502       {object}  clinics.apiError
// @Router       /api/clinics/{clinicID}/slots [get]
func apiSlotsHandler(appts *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := appointments.ParseDate(r.URL.Query().Get("date"), time.Now())
		slots, err := appts.Available(r.Context(), middleware.Token(r.Context()), chi.URLParam(r, "clinicID"), date)
		if err != nil {
			writeError(w, err, "Failed to load slots.")
			return
		}
		if slots == nil {
			slots = []appointments.AvailableSlot{}
		}
		writeJSON(w, http.StatusOK, slots)
	}
}

// writeError conserva el status del backend si lo hubo; sin respuesta => 502.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := httpclient.StatusCode(err)
	if status < 400 {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, apiError{Error: mutation.Message(err, fallback)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

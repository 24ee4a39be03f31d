package appointments

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"petcare-web/internal/middleware"
	"petcare-web/internal/mutation"
	"petcare-web/internal/render"
	"petcare-web/internal/validate"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Todas las rutas de este paquete requieren sesión.
func RegisterRoutes(r chi.Router, svc *Service, rd *render.Renderer, guard func(http.Handler) http.Handler, log *zap.Logger) {
	r.Group(func(pr chi.Router) {
		pr.Use(guard)

		pr.Post("/clinics/{clinicID}/bookings", bookHandler(svc, log))

		pr.Get("/my-appointments", myAppointmentsHandler(svc, rd, log))
		pr.Post("/my-appointments/{bookingID}/cancel", cancelBookingHandler(svc, log, "/my-appointments"))
		pr.Get("/my-appointments/{bookingID}/reschedule", reschedulePageHandler(svc, rd, ownerScope))
		pr.Post("/my-appointments/{bookingID}/reschedule", rescheduleHandler(svc, log, ownerScope))

		pr.Get("/my-clinics/{clinicID}/slots", clinicSlotsHandler(svc, rd, log))
		pr.Post("/my-clinics/{clinicID}/slots", createSlotHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/slots/{slotID}/toggle", toggleSlotHandler(svc, log))
		pr.Post("/my-clinics/{clinicID}/bookings/{bookingID}/cancel", cancelBookingHandler(svc, log, "/my-clinics/{id}/slots"))
		pr.Get("/my-clinics/{clinicID}/bookings/{bookingID}/reschedule", reschedulePageHandler(svc, rd, clinicScope))
		pr.Post("/my-clinics/{clinicID}/bookings/{bookingID}/reschedule", rescheduleHandler(svc, log, clinicScope))
	})
}

type reschedulePage struct {
	Booking Booking
	Date    string
	Slots   render.List[SlotView]
	Chosen  *AvailableSlot
	// Action es el path del picker (GET con ?date, POST para confirmar).
	Action string
	Back   string
}

type clinicSlotsPage struct {
	ClinicID string
	Stats    render.Region[ClinicStats]
	Slots    render.List[Slot]
	Bookings render.List[Booking]
	Today    string
}

// clinicPageURL vuelve al detalle público manteniendo la fecha elegida.
func clinicPageURL(clinicID, date string) string {
	u := "/clinics/" + url.PathEscape(clinicID)
	if date != "" {
		u += "?" + url.Values{"date": {date}}.Encode()
	}
	return u
}

func bookHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := chi.URLParam(r, "clinicID")
		start := strings.TrimSpace(r.FormValue("start_time"))
		end := strings.TrimSpace(r.FormValue("end_time"))
		date := strings.TrimSpace(r.FormValue("date"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "appointment.book",
			Validate: func() error {
				if _, ok := clinicIDNumber(clinicID); !ok {
					return validate.Errorf("Invalid clinic.")
				}
				if start == "" || end == "" {
					return validate.Errorf("Please select a slot.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				cid, _ := clinicIDNumber(clinicID)
				return svc.Book(ctx, middleware.Token(ctx), cid, start, end)
			},
			Success: "/my-appointments",
			// el rechazo (slot tomado) vuelve a la misma fecha sin selección
			Failure:  clinicPageURL(clinicID, date),
			Notice:   "Appointment booked successfully.",
			Fallback: "Booking failed.",
		})
	}
}

func myAppointmentsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Mine(r.Context(), middleware.Token(r.Context()))
		if err != nil {
			log.Warn("list my appointments failed", zap.Error(err))
		}
		rd.Page(w, http.StatusOK, "my_appointments", render.NewView(r, "My Appointments",
			render.NewList(items, err, "Failed to load appointments.")))
	}
}

func cancelBookingHandler(svc *Service, log *zap.Logger, back string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookingID := chi.URLParam(r, "bookingID")
		to := strings.ReplaceAll(back, "{id}", chi.URLParam(r, "clinicID"))

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "appointment.cancel",
			Call: func(ctx context.Context) error {
				return svc.Cancel(ctx, middleware.Token(ctx), bookingID)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Appointment cancelled.",
			Fallback: "Failed to cancel appointment.",
		})
	}
}

// rescheduleScope distingue quién reprograma: el dueño de la mascota desde
// sus turnos o la clínica desde su agenda. El backend decide si puede.
type rescheduleScope struct {
	// done es la lista a la que se vuelve (éxito o reserva no reprogramable).
	done func(r *http.Request) string
	// bookings son las reservas visibles para ese actor.
	bookings func(ctx context.Context, svc *Service, r *http.Request, token string) ([]Booking, error)
}

var ownerScope = rescheduleScope{
	done: func(*http.Request) string { return "/my-appointments" },
	bookings: func(ctx context.Context, svc *Service, _ *http.Request, token string) ([]Booking, error) {
		return svc.Mine(ctx, token)
	},
}

var clinicScope = rescheduleScope{
	done: func(r *http.Request) string {
		return "/my-clinics/" + url.PathEscape(chi.URLParam(r, "clinicID")) + "/slots"
	},
	bookings: func(ctx context.Context, svc *Service, r *http.Request, token string) ([]Booking, error) {
		return svc.ClinicBookings(ctx, token, chi.URLParam(r, "clinicID"))
	},
}

// findBooking: no hay GET de una reserva suelta, se busca en la lista.
func findBooking(items []Booking, id string) (Booking, bool) {
	for _, b := range items {
		if idString(b.BookingID) == id {
			return b, true
		}
	}
	return Booking{}, false
}

func reschedulePageHandler(svc *Service, rd *render.Renderer, scope rescheduleScope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bookingID")
		token := middleware.Token(r.Context())
		q := r.URL.Query()
		date := ParseDate(q.Get("date"), time.Now())

		items, err := scope.bookings(r.Context(), svc, r, token)
		b, ok := findBooking(items, id)
		if err != nil || !ok || !b.Actionable() {
			http.Redirect(w, r, mutation.WithParam(scope.done(r), "error", "Appointment cannot be rescheduled."), http.StatusSeeOther)
			return
		}

		var sel *Selection
		if s, ok := ParseSelection(q); ok {
			sel = &s
		}
		clinicID := idString(b.ClinicID)
		if b.ClinicID == 0 {
			// la agenda de la clínica no siempre trae clinic_id
			clinicID = chi.URLParam(r, "clinicID")
		}
		slots, slotsErr := svc.Available(r.Context(), token, clinicID, date)
		views := SlotViews(slots, sel)

		page := reschedulePage{
			Booking: b,
			Date:    date,
			Slots:   render.NewList(views, slotsErr, "Failed to load slots."),
			Action:  r.URL.Path,
			Back:    scope.done(r),
		}
		if chosen, ok := Selected(views); ok {
			page.Chosen = &chosen
		}
		rd.Page(w, http.StatusOK, "reschedule", render.NewView(r, "Reschedule Appointment", page))
	}
}

// rescheduleHandler es UNA llamada combinada; no se asume atomicidad.
func rescheduleHandler(svc *Service, log *zap.Logger, scope rescheduleScope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "bookingID")
		start := strings.TrimSpace(r.FormValue("start_time"))
		end := strings.TrimSpace(r.FormValue("end_time"))
		back := r.URL.Path
		if d := strings.TrimSpace(r.FormValue("date")); d != "" {
			back += "?" + url.Values{"date": {d}}.Encode()
		}

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "appointment.reschedule",
			Validate: func() error {
				if start == "" || end == "" {
					return validate.Errorf("Please select a slot.")
				}
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.Reschedule(ctx, middleware.Token(ctx), id, start, end)
			},
			Success:  scope.done(r),
			Failure:  back,
			Notice:   "Appointment rescheduled.",
			Fallback: "Failed to reschedule appointment.",
		})
	}
}

func clinicSlotsHandler(svc *Service, rd *render.Renderer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := chi.URLParam(r, "clinicID")
		token := middleware.Token(r.Context())

		var (
			stats       ClinicStats
			statsErr    error
			slots       []Slot
			slotsErr    error
			bookings    []Booking
			bookingsErr error
			g           errgroup.Group
		)
		g.Go(func() error { stats, statsErr = svc.ClinicStats(r.Context(), token); return nil })
		g.Go(func() error { slots, slotsErr = svc.ClinicSlots(r.Context(), token, clinicID); return nil })
		g.Go(func() error { bookings, bookingsErr = svc.ClinicBookings(r.Context(), token, clinicID); return nil })
		_ = g.Wait()

		if slotsErr != nil {
			log.Warn("list clinic slots failed", zap.String("clinic_id", clinicID), zap.Error(slotsErr))
		}

		rd.Page(w, http.StatusOK, "clinic_slots", render.NewView(r, "Manage Slots", clinicSlotsPage{
			ClinicID: clinicID,
			Stats:    render.NewRegion(stats, statsErr, "Failed to load statistics."),
			Slots:    render.NewList(slots, slotsErr, "Failed to load slots."),
			Bookings: render.NewList(bookings, bookingsErr, "Failed to load bookings."),
			Today:    time.Now().Format(dateLayout),
		}))
	}
}

func createSlotHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := chi.URLParam(r, "clinicID")
		to := "/my-clinics/" + url.PathEscape(clinicID) + "/slots"
		date := strings.TrimSpace(r.FormValue("date"))
		in := NewSlot{
			StartTime: strings.TrimSpace(r.FormValue("start_time")),
			EndTime:   strings.TrimSpace(r.FormValue("end_time")),
		}

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "slot.create",
			Validate: func() error {
				if date == "" || in.StartTime == "" || in.EndTime == "" {
					return validate.Errorf("Date, start time and end time are required")
				}
				cid, ok := clinicIDNumber(clinicID)
				if !ok {
					return validate.Errorf("Invalid clinic.")
				}
				day, err := DayOfWeek(date)
				if err != nil {
					return err
				}
				in.ClinicID, in.DayOfWeek = cid, day
				return nil
			},
			Call: func(ctx context.Context) error {
				return svc.CreateSlot(ctx, middleware.Token(ctx), in)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Slot created.",
			Fallback: "Failed to create slot",
		})
	}
}

func toggleSlotHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slotID := chi.URLParam(r, "slotID")
		to := "/my-clinics/" + url.PathEscape(chi.URLParam(r, "clinicID")) + "/slots"
		// el form manda el estado deseado
		active := r.FormValue("is_active") == "true"

		mutation.Handle(w, r, log, mutation.Mutation{
			Name: "slot.toggle",
			Call: func(ctx context.Context) error {
				return svc.SetSlotActive(ctx, middleware.Token(ctx), slotID, active)
			},
			Success:  to,
			Failure:  to,
			Notice:   "Slot updated.",
			Fallback: "Cannot update slot",
		})
	}
}

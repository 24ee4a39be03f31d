package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"petcare-web/internal/platform/httpclient"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, r chi.Router) *Service {
	t.Helper()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	c, err := httpclient.New(httpclient.Options{BaseURL: ts.URL})
	require.NoError(t, err)
	return NewService(c)
}

func TestService_AvailableSendsDate(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/appointments/slots/{clinicID}/available", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", chi.URLParam(r, "clinicID"))
		assert.Equal(t, "2025-01-06", r.URL.Query().Get("date"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"slot_id":1,"start_time":"09:00","end_time":"09:30","is_booked":false}]`))
	})

	slots, err := newTestService(t, r).Available(context.Background(), "", "7", "2025-01-06")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
}

func TestService_BookRejectedKeepsBackendMessage(t *testing.T) {
	var hits atomic.Int32
	r := chi.NewRouter()
	r.Post("/appointments/bookings", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var body bookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7, body.ClinicID)
		assert.Equal(t, "09:00", body.StartTime)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Slot already booked"}`))
	})

	err := newTestService(t, r).Book(context.Background(), "tok", 7, "09:00", "09:30")
	he, ok := httpclient.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.StatusCode)
	assert.Equal(t, "Slot already booked", he.Message)
	assert.EqualValues(t, 1, hits.Load())
}

func TestService_RescheduleIsSingleCall(t *testing.T) {
	var hits atomic.Int32
	r := chi.NewRouter()
	r.Post("/appointments/bookings/{id}/reschedule", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "12", chi.URLParam(r, "id"))
		var body rescheduleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, rescheduleRequest{StartTime: "11:00", EndTime: "11:30"}, body)
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, newTestService(t, r).Reschedule(context.Background(), "tok", "12", "11:00", "11:30"))
	assert.EqualValues(t, 1, hits.Load())
}

func TestService_CreateSlotAndToggle(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/appointments/slots", func(w http.ResponseWriter, r *http.Request) {
		var body NewSlot
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, NewSlot{ClinicID: 3, DayOfWeek: "MONDAY", StartTime: "16:30", EndTime: "16:40"}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	r.Patch("/appointments/slots/{id}", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]bool
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]bool{"is_active": false}, body)
		_, _ = w.Write([]byte(`{"id":5,"is_active":false}`))
	})
	svc := newTestService(t, r)

	require.NoError(t, svc.CreateSlot(context.Background(), "tok", NewSlot{ClinicID: 3, DayOfWeek: "MONDAY", StartTime: "16:30", EndTime: "16:40"}))
	require.NoError(t, svc.SetSlotActive(context.Background(), "tok", "5", false))
}

func TestService_ClinicStatsHasNoQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/appointments/stats/clinic", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"total_bookings":4,"confirmed":3,"cancelled":1,"upcoming":2}`))
	})

	st, err := newTestService(t, r).ClinicStats(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, ClinicStats{TotalBookings: 4, Confirmed: 3, Cancelled: 1, Upcoming: 2}, st)
}
